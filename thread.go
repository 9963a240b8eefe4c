// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"time"

	"code.hybscloud.com/atomix"
)

var nextThreadID atomix.Uint64

// ThreadOptions configures [CreateThread]. StackBytes is accepted for
// API fidelity with the original kernel's thread-creation call but is
// advisory only: goroutines manage their own growable stacks.
type ThreadOptions struct {
	Name       string
	Priority   int
	StackBytes int
	// EventCount is the mailbox capacity. 0 means the thread has no
	// mailbox; event APIs then fail on it with [ErrInvalidArgument].
	EventCount int
}

// Thread is an opaque handle owning at most one optional event
// mailbox (a bounded [MessageQueue] of [Event] records). The mailbox
// is fixed at creation — the struct is fully built, mailbox included,
// before [CreateThread]'s entry function ever runs, so there is no publish race
// to guard with a suspended-scheduler window the way the original
// kernel needs one.
type Thread struct {
	ID       uint64
	Name     string
	Priority int
	kernel   Kernel
	mailbox  *MessageQueue[Event]
}

// CreateThread creates a thread and spawns entry(self, arg) on it via
// k. Returns [ErrInvalidArgument] if opts.EventCount is negative.
func CreateThread(k Kernel, opts ThreadOptions, entry func(self *Thread, arg any), arg any) (*Thread, error) {
	if opts.EventCount < 0 {
		return nil, ErrInvalidArgument
	}
	if k == nil {
		k = DefaultKernel()
	}
	t := &Thread{
		ID:       nextThreadID.Add(1),
		Name:     opts.Name,
		Priority: opts.Priority,
		kernel:   k,
	}
	if opts.EventCount > 0 {
		t.mailbox = NewMessageQueue[Event](opts.EventCount)
	}
	k.Spawn(func() { entry(t, arg) })
	return t, nil
}

// HasMailbox reports whether t owns an event mailbox.
func (t *Thread) HasMailbox() bool { return t.mailbox != nil }

// Sleep blocks the calling goroutine for d, using the kernel tick.
func (t *Thread) Sleep(d time.Duration) {
	t.kernel.Sleep(d)
}

// SleepUs sleeps for d by scheduling a one-shot timer that signals a
// temporary binary semaphore, then acquiring it — the same mechanism
// the data model describes for microsecond-granularity sleeps that
// bypass the coarser tick scheduler.
func (t *Thread) SleepUs(d time.Duration) {
	sem := NewBinarySemaphore(false)
	t.kernel.AfterFunc(d, sem.Release)
	sem.Acquire()
}

// SleepRelaxed sleeps for approximately d, allowing the kernel to
// coalesce the wakeup with other pending timers within slack. The
// goroutine-backed default kernel has no coalescing scheduler to hint,
// so it sleeps for exactly d; an RTOS-backed [Kernel] may do better.
func (t *Thread) SleepRelaxed(d, slack time.Duration) {
	_ = slack
	t.kernel.Sleep(d)
}

// Exit destroys the thread's mailbox. Kept for API symmetry with the
// data model's "destroying the thread destroys the mailbox" invariant;
// in Go the mailbox is simply garbage collected once unreachable.
func (t *Thread) Exit() {
	t.mailbox = nil
}
