// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/turnq"
)

// =============================================================================
// Blocking Behavior
// =============================================================================

// TestPopBlocksUntilPush verifies that Pop on an empty queue waits for a
// matching push and then returns that value.
func TestPopBlocksUntilPush(t *testing.T) {
	if turnq.RaceEnabled {
		t.Skip("skip: turn protocol uses cross-variable memory ordering")
	}

	q := turnq.NewQueue[int](4)
	done := make(chan int, 1)

	go func() {
		done <- q.Pop()
	}()

	// The consumer must still be waiting with nothing enqueued
	select {
	case v := <-done:
		t.Fatalf("Pop returned %d on empty queue", v)
	case <-time.After(50 * time.Millisecond):
	}

	v := 77
	q.Push(&v)

	select {
	case got := <-done:
		if got != 77 {
			t.Fatalf("Pop: got %d, want 77", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pop did not return after matching Push")
	}
}

// TestPushBlocksUntilPop verifies that Push on a full queue waits for a
// matching pop before publishing.
func TestPushBlocksUntilPop(t *testing.T) {
	if turnq.RaceEnabled {
		t.Skip("skip: turn protocol uses cross-variable memory ordering")
	}

	const capacity = 4
	q := turnq.NewQueue[int](capacity)
	for i := range capacity {
		q.Push(&i)
	}

	done := make(chan struct{})
	go func() {
		v := capacity
		q.Push(&v)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Push returned on full queue")
	case <-time.After(50 * time.Millisecond):
	}

	if got := q.Pop(); got != 0 {
		t.Fatalf("Pop: got %d, want 0", got)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Push did not return after matching Pop")
	}

	// FIFO preserved across the blocked push
	for i := 1; i <= capacity; i++ {
		if got := q.Pop(); got != i {
			t.Fatalf("Pop: got %d, want %d", got, i)
		}
	}
}

// TestTryPopDoesNotBlock verifies TryPop returns immediately on an empty
// queue even while a producer exists but has not published yet.
func TestTryPopDoesNotBlock(t *testing.T) {
	q := turnq.NewQueue[int](4)

	start := time.Now()
	_, err := q.TryPop()
	if !errors.Is(err, turnq.ErrWouldBlock) {
		t.Fatalf("TryPop on empty: got %v, want ErrWouldBlock", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("TryPop took %v, expected immediate return", elapsed)
	}
}

// =============================================================================
// No Loss / No Duplication
// =============================================================================

// TestQueueNoLossNoDup runs P producers enqueueing uniquely tagged values
// against C consumers draining P*M items and verifies every tag is seen
// exactly once.
func TestQueueNoLossNoDup(t *testing.T) {
	if turnq.RaceEnabled {
		t.Skip("skip: turn protocol uses cross-variable memory ordering")
	}

	const (
		numProducers = 8
		numConsumers = 8
		itemsPerProd = 10000
	)

	q := turnq.NewQueue[int](64)
	expectedTotal := numProducers * itemsPerProd
	seen := make([]atomix.Int32, expectedTotal)

	var wg sync.WaitGroup
	var consumed atomix.Int64

	// Producers: each produces unique values (id*itemsPerProd + seq)
	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			backoff := iox.Backoff{}
			for i := range itemsPerProd {
				v := id*itemsPerProd + i
				for q.TryPush(&v) != nil {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}

	// Consumers: drain until the collective total is reached
	for range numConsumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for consumed.Load() < int64(expectedTotal) {
				v, err := q.TryPop()
				if err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
				if v < 0 || v >= expectedTotal {
					t.Errorf("dequeued out-of-range value %d", v)
					return
				}
				seen[v].Add(1)
				consumed.Add(1)
			}
		}()
	}

	wg.Wait()

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Fatalf("value %d seen %d times, want exactly 1", i, n)
		}
	}
	if _, err := q.TryPop(); !errors.Is(err, turnq.ErrWouldBlock) {
		t.Fatalf("queue not empty after full drain: %v", err)
	}
}

// TestQueueBlockingNoLossNoDup is the blocking-operation counterpart: the
// consumer count matches the producer count exactly, so every ticket is
// guaranteed a counterpart and Push/Pop may be used directly.
func TestQueueBlockingNoLossNoDup(t *testing.T) {
	if turnq.RaceEnabled {
		t.Skip("skip: turn protocol uses cross-variable memory ordering")
	}

	const (
		numProducers = 4
		numConsumers = 4
		itemsPerProd = 5000
	)

	q := turnq.NewQueue[int](32)
	expectedTotal := numProducers * itemsPerProd
	seen := make([]atomix.Int32, expectedTotal)

	var wg sync.WaitGroup

	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProd {
				v := id*itemsPerProd + i
				q.Push(&v)
			}
		}(p)
	}

	// itemsPerProd*numProducers pops spread evenly over the consumers
	for range numConsumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range expectedTotal / numConsumers {
				v := q.Pop()
				seen[v].Add(1)
			}
		}()
	}

	wg.Wait()

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Fatalf("value %d seen %d times, want exactly 1", i, n)
		}
	}
}

// TestQueuePerProducerOrder verifies that each producer's values arrive in
// that producer's send order even when interleaved with other producers.
func TestQueuePerProducerOrder(t *testing.T) {
	if turnq.RaceEnabled {
		t.Skip("skip: turn protocol uses cross-variable memory ordering")
	}

	const (
		numProducers = 4
		itemsPerProd = 20000
	)

	type tagged struct {
		producer int
		seq      int
	}

	q := turnq.NewQueue[tagged](128)

	var wg sync.WaitGroup
	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProd {
				v := tagged{producer: id, seq: i}
				q.Push(&v)
			}
		}(p)
	}

	// Single consumer checks per-producer monotonicity
	lastSeq := make([]int, numProducers)
	for i := range lastSeq {
		lastSeq[i] = -1
	}
	for range numProducers * itemsPerProd {
		v := q.Pop()
		if v.seq <= lastSeq[v.producer] {
			t.Fatalf("producer %d: seq %d arrived after %d", v.producer, v.seq, lastSeq[v.producer])
		}
		lastSeq[v.producer] = v.seq
	}
	wg.Wait()
}
