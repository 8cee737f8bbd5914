// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package turnq provides a bounded, lock-free multi-producer multi-consumer
// FIFO queue for in-process handoff between goroutines.
//
// The queue is a ring of slots, each guarded by an atomic "turn" counter
// whose parity says whether the cell is empty or full for the current lap
// around the ring. Two global counters, head and tail, hand out tickets to
// producers and consumers; ticket t targets slot t%capacity on lap
// t/capacity. Acquire loads paired with release stores on the turn counters
// are the only synchronization; there are no locks anywhere.
//
// # Quick Start
//
//	q := turnq.NewQueue[Event](1024)
//
//	// Producer
//	ev := Event{ID: 1}
//	q.Push(&ev)            // blocking
//	err := q.TryPush(&ev)  // non-blocking; ErrWouldBlock when full
//
//	// Consumer
//	ev = q.Pop()           // blocking
//	ev, err = q.TryPop()   // non-blocking; ErrWouldBlock when empty
//
// # Blocking vs Non-Blocking
//
// Push, Emplace and Pop take a ticket unconditionally and busy-wait until
// the matching counterpart arrives. They are defined never to fail, which
// means a caller waiting on a ticket that will never be matched waits
// forever: never call a blocking operation unless the matching operation is
// guaranteed to occur. There is no cancellation and no timeout; callers
// needing bounded waiting use the Try variants and poll externally:
//
//	backoff := iox.Backoff{}
//	for {
//	    elem, err := q.TryPop()
//	    if err == nil {
//	        backoff.Reset()
//	        process(elem)
//	        continue
//	    }
//	    backoff.Wait()
//	}
//
// TryPush, TryEmplace and TryPop never wait. A full or empty queue is an
// expected outcome reported as [ErrWouldBlock], not a failure.
//
// # In-Place Construction
//
// Emplace hands the producer a pointer to the claimed slot's storage, so an
// element can be built directly in the ring without an intermediate copy:
//
//	q.Emplace(func(ev *Event) {
//	    ev.ID = next()
//	    ev.Payload = payload
//	})
//
// # Wait Strategies
//
// The blocking operations busy-wait by default (lowest latency, burns a
// core). The builder can swap the idle behavior without touching the turn
// protocol:
//
//	q := turnq.Build[Event](turnq.New(1024))               // spin (default)
//	q := turnq.Build[Event](turnq.New(1024).WaitYield())   // spin + Gosched
//	q := turnq.Build[Event](turnq.New(1024).WaitBackoff()) // adaptive backoff
//
// # Capacity and Length
//
// Capacity is exact and immutable: NewQueue(10) holds at most 10 elements
// and the 11th TryPush fails. There is no rounding and no resizing.
//
// Len is approximate by construction. Tickets are reserved before the
// element transfer completes, so under concurrency head−tail may lag, lead
// or go negative (a consumer holds a ticket for an element that has not
// arrived yet). Use it as a hint only.
//
// # Ordering
//
// Tickets strictly total-order producers among themselves and consumers
// among themselves, and the k-th producer ticket always meets the k-th
// consumer ticket at the same slot and lap. Delivery is therefore strictly
// FIFO. The release store publishing a full slot happens-before the acquire
// load of the consumer that observes it, so handoff is safe for arbitrary
// non-atomic element state.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but cannot
// observe happens-before edges established through atomic memory orderings
// on separate variables. The turn protocol is exactly such an edge, so
// concurrent tests trigger false positives under -race. Tests incompatible
// with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions, and [code.hybscloud.com/iox] for semantic errors and
// backoff.
package turnq
