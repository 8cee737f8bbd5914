// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

// Producer is the enqueue side of a queue.
//
// The element is passed by pointer to avoid copying large structs at the
// call boundary; the queue stores a copy of the pointed-to value, so the
// original can be modified after the call returns. Emplace variants skip
// even that copy by constructing directly in the slot's storage.
type Producer[T any] interface {
	// Push enqueues a copy of *elem, waiting for space if the queue
	// is full. Callers must guarantee a matching dequeue will occur.
	Push(elem *T)

	// TryPush enqueues a copy of *elem without waiting.
	// Returns nil on success, ErrWouldBlock if the queue is full.
	TryPush(elem *T) error

	// Emplace constructs an element in place via fn, waiting for space
	// if the queue is full.
	Emplace(fn func(*T))

	// TryEmplace constructs an element in place via fn without waiting.
	// Returns nil on success, ErrWouldBlock if the queue is full.
	// fn is not called on failure.
	TryEmplace(fn func(*T)) error
}

// Consumer is the dequeue side of a queue.
//
// Elements are returned by value; the originating slot is cleared so the
// queue does not pin referenced objects after handoff.
type Consumer[T any] interface {
	// Pop dequeues and returns the front element, waiting for data if
	// the queue is empty. Callers must guarantee a matching enqueue
	// will occur.
	Pop() T

	// TryPop dequeues and returns the front element without waiting.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	TryPop() (T, error)
}

// Interface is the combined producer-consumer surface of the queue.
//
// Len is approximate by construction: tickets are reserved before the
// element transfer completes, so the head−tail difference can lag, lead,
// or go negative under concurrency. Treat it as a hint, never as a
// synchronization primitive.
type Interface[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns the approximate number of queued elements.
	Len() int
	// Empty reports whether the queue appears empty (Len() <= 0).
	Empty() bool
	// Cap returns the fixed queue capacity.
	Cap() int
}

// Queue implements Interface.
var _ Interface[int] = (*Queue[int])(nil)
