// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turnq

import (
	"runtime"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// waitStrategy selects what a blocking operation does between turn polls.
// It only changes the wait, never the turn protocol.
type waitStrategy uint8

const (
	// waitSpin busy-waits with CPU pause instructions. Lowest latency,
	// burns a core while waiting. The default.
	waitSpin waitStrategy = iota

	// waitYield spins but hands the P back to the scheduler every
	// yieldEvery polls. For queues sharing cores with other goroutines.
	waitYield

	// waitBackoff waits with adaptive backoff, trading latency for CPU
	// when the matching operation may be far away.
	waitBackoff
)

// yieldEvery bounds Gosched frequency in hot poll loops.
const yieldEvery = 64

// waiter is the per-call wait state of one blocking operation.
type waiter struct {
	sw       spin.Wait
	bo       iox.Backoff
	spins    uint32
	strategy waitStrategy
}

func newWaiter(strategy waitStrategy) waiter {
	return waiter{strategy: strategy}
}

// once performs one wait step.
func (w *waiter) once() {
	switch w.strategy {
	case waitYield:
		w.spins++
		if w.spins%yieldEvery == 0 {
			runtime.Gosched()
			return
		}
		w.sw.Once()
	case waitBackoff:
		w.bo.Wait()
	default:
		w.sw.Once()
	}
}
