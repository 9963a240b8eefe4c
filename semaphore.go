// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "time"

// Forever means "block indefinitely" wherever a timeout parameter is
// accepted. A timeout of 0 always means "non-blocking try".
const Forever time.Duration = -1

// Semaphore is a counting semaphore with ISR-safe release and timed
// acquire: `{max_count, current_count}` with `0 ≤ current ≤ max`.
// Binary semaphores are the max=1 specialisation.
//
// The available-permit pool is a buffered channel holding one token
// per available permit: Acquire receives a token (blocks when empty),
// Release sends one back (dropped, not blocked, when the channel is
// already full at max — this is the saturating behaviour the data
// model requires). Blocking, non-blocking, and timed variants all fall
// out of Go's select statement rather than a hand-rolled wait queue.
type Semaphore struct {
	permits chan struct{}
	max     int
}

// NewSemaphore creates a semaphore with the given maximum and initial
// count. Panics if max <= 0, init < 0, or init > max.
func NewSemaphore(max, init int) *Semaphore {
	if max <= 0 || init < 0 || init > max {
		panic("osi: invalid semaphore bounds")
	}
	s := &Semaphore{permits: make(chan struct{}, max), max: max}
	for i := 0; i < init; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// NewBinarySemaphore creates a max=1 semaphore with the given initial
// state (true = available).
func NewBinarySemaphore(available bool) *Semaphore {
	init := 0
	if available {
		init = 1
	}
	return NewSemaphore(1, init)
}

// Acquire blocks forever until a permit is available.
func (s *Semaphore) Acquire() {
	<-s.permits
}

// TryAcquire attempts to acquire within timeout. timeout == 0 is a
// non-blocking try; timeout == [Forever] blocks indefinitely. Returns
// true on success, false on timeout.
func (s *Semaphore) TryAcquire(timeout time.Duration) bool {
	if timeout == Forever {
		s.Acquire()
		return true
	}
	if timeout <= 0 {
		select {
		case <-s.permits:
			return true
		default:
			return false
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.permits:
		return true
	case <-timer.C:
		return false
	}
}

// Release increments the count, saturating at max. Releasing a
// semaphore already at max is a no-op, not an error. ISR-safe: Release
// never blocks.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
	default:
	}
}

// ReleaseISR is an alias for Release, documenting call sites that run
// from interrupt context. It never blocks, matching the ISR-safe
// release contract.
func (s *Semaphore) ReleaseISR() {
	s.Release()
}

// Current returns the current permit count. Intended for diagnostics;
// the value may be stale immediately after it is read.
func (s *Semaphore) Current() int {
	return len(s.permits)
}
