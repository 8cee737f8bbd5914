// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

import "unsafe"

// Options configures queue creation.
type Options struct {
	// Wait strategy for the blocking operations
	wait waitStrategy

	// Capacity (exact, no rounding)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder configures the wait strategy the blocking operations use
// between turn polls. The turn protocol itself is fixed; only the idle
// behavior changes.
//
// Example:
//
//	// Default busy-wait queue
//	q := turnq.Build[Event](turnq.New(1024))
//
//	// Yield to the scheduler while waiting
//	q := turnq.Build[Event](turnq.New(1024).WaitYield())
//
//	// Adaptive backoff, pointer flavor
//	q := turnq.New(4096).WaitBackoff().BuildPtr()
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity is exact: the queue holds at most capacity elements and the
// (capacity+1)-th TryPush fails. Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("turnq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// WaitSpin selects pure busy-waiting with CPU pause instructions for the
// blocking operations. Lowest handoff latency; burns a core while waiting.
// This is the default.
func (b *Builder) WaitSpin() *Builder {
	b.opts.wait = waitSpin
	return b
}

// WaitYield selects spinning with periodic scheduler yields. Use when the
// queue shares cores with other goroutines and sustained spinning would
// starve them.
func (b *Builder) WaitYield() *Builder {
	b.opts.wait = waitYield
	return b
}

// WaitBackoff selects adaptive backoff between turn polls. Use when the
// matching operation may be far away and wasted cycles matter more than
// handoff latency.
func (b *Builder) WaitBackoff() *Builder {
	b.opts.wait = waitBackoff
	return b
}

// Build creates a Queue[T] with the configured capacity and wait strategy.
func Build[T any](b *Builder) *Queue[T] {
	return newQueue[T](b.opts.capacity, b.opts.wait)
}

// BuildPtr creates a QueuePtr with the configured capacity and wait
// strategy.
func (b *Builder) BuildPtr() *QueuePtr {
	return newQueuePtr(b.opts.capacity, b.opts.wait)
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
