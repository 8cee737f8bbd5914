// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package turnq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent scenarios, which trigger false positives
// due to cross-variable memory ordering on the turn counters.
const RaceEnabled = true
