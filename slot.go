// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

import "code.hybscloud.com/atomix"

// slot is a single ring cell: a turn counter plus storage for one element.
//
// The turn counter encodes occupancy out-of-band via its parity. For lap k
// (the k-th traversal of the ring):
//
//	turn == 2k   → cell empty, producer holding ticket lap k may write
//	turn == 2k+1 → cell full, consumer holding ticket lap k may read
//
// The storage itself carries no validity information. Whoever owns the
// current turn performs the matching half of the put/take pair and then
// publishes the next turn with a release store; the acquire load in the
// peer's poll loop establishes the happens-before edge that makes the
// element transfer safe without any further synchronization.
type slot[T any] struct {
	turn atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// construct initializes the cell's storage in place via fn.
// Caller must own the producer turn for the current lap; the storage fn
// receives has already been cleared by the previous take.
func (s *slot[T]) construct(fn func(*T)) {
	fn(&s.data)
}

// take moves the element out and clears the storage.
//
// Clearing releases anything the element referenced so consumed cells never
// pin objects until the ring laps around again. This is the whole teardown
// story as well: elements still resident when the queue becomes unreachable
// are reclaimed by the garbage collector.
//
// Caller must own the consumer turn for the current lap.
func (s *slot[T]) take() T {
	elem := s.data
	var zero T
	s.data = zero
	return elem
}
