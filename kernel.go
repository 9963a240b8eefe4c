// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "time"

// Kernel is the out-of-scope preemptive scheduler port: thread
// creation, the tick/timer source, and blocking sleep. The core never
// reaches into a concrete scheduler directly; it only calls through
// this interface, so tests can run against a deterministic fake while
// production embeds a real RTOS-backed implementation.
type Kernel interface {
	// Now returns the kernel's notion of current time.
	Now() time.Time
	// Sleep blocks the calling goroutine for d, using the kernel tick.
	Sleep(d time.Duration)
	// AfterFunc schedules fn to run once after d elapses and returns a
	// handle that can cancel the pending timer.
	AfterFunc(d time.Duration, fn func()) KernelTimer
	// Spawn starts entry as a new thread of execution.
	Spawn(entry func())
}

// KernelTimer is a handle to a pending one-shot timer.
type KernelTimer interface {
	// Stop cancels the timer. Reports whether the cancellation
	// happened before fn ran.
	Stop() bool
}

// goKernel is the default [Kernel], backing threads with goroutines
// and the standard time package. It is what [DefaultKernel] returns.
type goKernel struct{}

// DefaultKernel returns a [Kernel] backed by real goroutines and the
// standard library's time package — the production binding used when
// no RTOS-specific port is supplied.
func DefaultKernel() Kernel { return goKernel{} }

func (goKernel) Now() time.Time { return time.Now() }

func (goKernel) Sleep(d time.Duration) { time.Sleep(d) }

func (goKernel) AfterFunc(d time.Duration, fn func()) KernelTimer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

func (goKernel) Spawn(entry func()) { go entry() }

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }
