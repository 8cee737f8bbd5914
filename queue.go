// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

import "code.hybscloud.com/atomix"

// Queue is a bounded multi-producer multi-consumer FIFO queue.
//
// Uses a ticket protocol over per-slot turn counters: head and tail hand out
// monotonically increasing tickets via Fetch-And-Add (blocking operations) or
// Compare-And-Swap (Try* operations). A ticket t maps to slot t%capacity on
// lap t/capacity, and the slot's turn parity says whose move it is. The k-th
// producer ticket and the k-th consumer ticket always meet at the same slot
// and lap, which is what makes delivery order strictly FIFO.
//
// Capacity is exact, not rounded: the ring has as many logical cells as
// requested, so the queue holds at most capacity elements at any time.
//
// Memory: capacity+1 slots (the trailing cell is an addressing guard and
// never holds an element).
type Queue[T any] struct {
	_        pad
	head     atomix.Uint64 // Producer ticket counter
	_        pad
	tail     atomix.Uint64 // Consumer ticket counter
	_        pad
	slots    []slot[T]
	capacity uint64
	wait     waitStrategy
}

// NewQueue creates a new turn-ticket MPMC queue holding up to capacity
// elements. Blocking operations busy-wait (spin strategy); use the Builder
// to pick a different wait strategy.
//
// Panics if capacity < 1.
func NewQueue[T any](capacity int) *Queue[T] {
	return newQueue[T](capacity, waitSpin)
}

func newQueue[T any](capacity int, wait waitStrategy) *Queue[T] {
	if capacity < 1 {
		panic("turnq: capacity must be >= 1")
	}
	return &Queue[T]{
		// One guard cell past the logical ring; index arithmetic never
		// reaches it.
		slots:    make([]slot[T], capacity+1),
		capacity: uint64(capacity),
		wait:     wait,
	}
}

// idx maps a ticket to its slot.
func (q *Queue[T]) idx(ticket uint64) uint64 {
	return ticket % q.capacity
}

// lap is the number of full ring traversals before this ticket.
func (q *Queue[T]) lap(ticket uint64) uint64 {
	return ticket / q.capacity
}

// Emplace constructs an element in place and enqueues it (blocking).
//
// The ticket is taken unconditionally, so Emplace spins until a consumer
// frees the target slot. fn receives a pointer to the slot's storage and
// must fully initialize it; the previous occupant has already been cleared.
// Never call Emplace unless a matching dequeue is guaranteed to occur:
// an unmatched ticket spins forever.
func (q *Queue[T]) Emplace(fn func(*T)) {
	ticket := q.head.AddAcqRel(1) - 1
	s := &q.slots[q.idx(ticket)]
	turn := q.lap(ticket) * 2

	w := newWaiter(q.wait)
	for s.turn.LoadAcquire() != turn {
		w.once()
	}

	s.construct(fn)
	s.turn.StoreRelease(turn + 1)
}

// TryEmplace constructs an element in place and enqueues it (non-blocking).
// Returns ErrWouldBlock if the queue is full.
//
// Unlike Emplace, the ticket is only claimed after the target slot has been
// observed empty, so a full queue never consumes a ticket. Fullness is
// detected by re-reading head after a turn mismatch: if no other producer
// advanced it in the meantime, no slot can have been freed either.
func (q *Queue[T]) TryEmplace(fn func(*T)) error {
	ticket := q.head.LoadAcquire()
	for {
		s := &q.slots[q.idx(ticket)]
		turn := q.lap(ticket) * 2

		if s.turn.LoadAcquire() == turn {
			if q.head.CompareAndSwapAcqRel(ticket, ticket+1) {
				s.construct(fn)
				s.turn.StoreRelease(turn + 1)
				return nil
			}
			// Lost the claim race; retry with a fresh ticket.
			ticket = q.head.LoadAcquire()
		} else {
			prev := ticket
			ticket = q.head.LoadAcquire()
			if ticket == prev {
				return ErrWouldBlock
			}
		}
	}
}

// Push enqueues a copy of *elem (blocking).
// Thin wrapper over Emplace; the same unmatched-ticket caveat applies.
func (q *Queue[T]) Push(elem *T) {
	q.Emplace(func(p *T) { *p = *elem })
}

// TryPush enqueues a copy of *elem (non-blocking).
// Returns ErrWouldBlock if the queue is full.
func (q *Queue[T]) TryPush(elem *T) error {
	return q.TryEmplace(func(p *T) { *p = *elem })
}

// Pop dequeues and returns the front element (blocking).
//
// The ticket is taken unconditionally, so Pop spins until a producer fills
// the target slot. Never call Pop unless a matching enqueue is guaranteed
// to occur: an unmatched ticket spins forever.
func (q *Queue[T]) Pop() T {
	ticket := q.tail.AddAcqRel(1) - 1
	s := &q.slots[q.idx(ticket)]
	turn := q.lap(ticket)*2 + 1

	w := newWaiter(q.wait)
	for s.turn.LoadAcquire() != turn {
		w.once()
	}

	elem := s.take()
	s.turn.StoreRelease(turn + 1)
	return elem
}

// TryPop dequeues and returns the front element (non-blocking).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// Mirrors TryEmplace: the ticket is only claimed after the slot has been
// observed full, and emptiness is detected by a stable re-read of tail.
func (q *Queue[T]) TryPop() (T, error) {
	ticket := q.tail.LoadAcquire()
	for {
		s := &q.slots[q.idx(ticket)]
		turn := q.lap(ticket)*2 + 1

		if s.turn.LoadAcquire() == turn {
			if q.tail.CompareAndSwapAcqRel(ticket, ticket+1) {
				elem := s.take()
				s.turn.StoreRelease(turn + 1)
				return elem, nil
			}
			ticket = q.tail.LoadAcquire()
		} else {
			prev := ticket
			ticket = q.tail.LoadAcquire()
			if ticket == prev {
				var zero T
				return zero, ErrWouldBlock
			}
		}
	}
}

// Len returns the approximate number of queued elements.
//
// The counters are read with relaxed ordering and tickets are reserved
// before the element transfer completes, so under concurrency the result is
// an estimate only and may be negative (a consumer holds a ticket for an
// element that has not arrived yet). Quiescent single-threaded reads are
// exact.
func (q *Queue[T]) Len() int {
	return int(int64(q.head.LoadRelaxed() - q.tail.LoadRelaxed()))
}

// Empty reports whether the queue appears empty. Equivalent to Len() <= 0
// and approximate under concurrency for the same reason.
func (q *Queue[T]) Empty() bool {
	return q.Len() <= 0
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return int(q.capacity)
}
