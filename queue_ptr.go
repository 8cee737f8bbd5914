// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// QueuePtr is the unsafe.Pointer flavor of the turn-ticket MPMC queue.
//
// Same protocol as Queue, specialized for zero-copy pointer handoff: the
// producer enqueues a pointer and the consumer receives that same pointer.
// Ownership transfers with it: the producer must not touch the object
// after a successful enqueue.
//
// Dequeued slots are cleared so the queue never pins a consumed object
// until the ring laps around again.
type QueuePtr struct {
	_        pad
	head     atomix.Uint64 // Producer ticket counter
	_        pad
	tail     atomix.Uint64 // Consumer ticket counter
	_        pad
	slots    []slotPtr
	capacity uint64
	wait     waitStrategy
}

type slotPtr struct {
	turn atomix.Uint64
	data unsafe.Pointer
	_    [64 - 8 - ptrSize]byte // Pad to cache line
}

// NewQueuePtr creates a new turn-ticket MPMC queue for unsafe.Pointer
// values holding up to capacity elements.
//
// Panics if capacity < 1.
func NewQueuePtr(capacity int) *QueuePtr {
	return newQueuePtr(capacity, waitSpin)
}

func newQueuePtr(capacity int, wait waitStrategy) *QueuePtr {
	if capacity < 1 {
		panic("turnq: capacity must be >= 1")
	}
	return &QueuePtr{
		slots:    make([]slotPtr, capacity+1),
		capacity: uint64(capacity),
		wait:     wait,
	}
}

// Push enqueues a pointer (blocking). Spins until a slot frees up; never
// call unless a matching dequeue is guaranteed to occur.
func (q *QueuePtr) Push(elem unsafe.Pointer) {
	ticket := q.head.AddAcqRel(1) - 1
	s := &q.slots[ticket%q.capacity]
	turn := ticket / q.capacity * 2

	w := newWaiter(q.wait)
	for s.turn.LoadAcquire() != turn {
		w.once()
	}

	s.data = elem
	s.turn.StoreRelease(turn + 1)
}

// TryPush enqueues a pointer (non-blocking).
// Returns ErrWouldBlock if the queue is full.
func (q *QueuePtr) TryPush(elem unsafe.Pointer) error {
	ticket := q.head.LoadAcquire()
	for {
		s := &q.slots[ticket%q.capacity]
		turn := ticket / q.capacity * 2

		if s.turn.LoadAcquire() == turn {
			if q.head.CompareAndSwapAcqRel(ticket, ticket+1) {
				s.data = elem
				s.turn.StoreRelease(turn + 1)
				return nil
			}
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

// Pop dequeues a pointer (blocking). Spins until an element arrives; never
// call unless a matching enqueue is guaranteed to occur.
func (q *QueuePtr) Pop() unsafe.Pointer {
	ticket := q.tail.AddAcqRel(1) - 1
	s := &q.slots[ticket%q.capacity]
	turn := ticket/q.capacity*2 + 1

	w := newWaiter(q.wait)
	for s.turn.LoadAcquire() != turn {
		w.once()
	}

	elem := s.data
	s.data = nil
	s.turn.StoreRelease(turn + 1)
	return elem
}

// TryPop dequeues a pointer (non-blocking).
// Returns (nil, ErrWouldBlock) if the queue is empty.
func (q *QueuePtr) TryPop() (unsafe.Pointer, error) {
	ticket := q.tail.LoadAcquire()
	for {
		s := &q.slots[ticket%q.capacity]
		turn := ticket/q.capacity*2 + 1

		if s.turn.LoadAcquire() == turn {
			if q.tail.CompareAndSwapAcqRel(ticket, ticket+1) {
				elem := s.data
				s.data = nil
				s.turn.StoreRelease(turn + 1)
				return elem, nil
			}
			ticket = q.tail.LoadAcquire()
		} else {
			prev := ticket
			ticket = q.tail.LoadAcquire()
			if ticket == prev {
				return nil, ErrWouldBlock
			}
		}
	}
}

// Len returns the approximate number of queued elements. May be negative
// under concurrency; see Queue.Len.
func (q *QueuePtr) Len() int {
	return int(int64(q.head.LoadRelaxed() - q.tail.LoadRelaxed()))
}

// Empty reports whether the queue appears empty. Equivalent to Len() <= 0.
func (q *QueuePtr) Empty() bool {
	return q.Len() <= 0
}

// Cap returns the queue capacity.
func (q *QueuePtr) Cap() int {
	return int(q.capacity)
}
