// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "time"

// defaultSendTimeout bounds Send's blocking wait on a full mailbox.
// The data model calls this an implementation-defined upper bound.
const defaultSendTimeout = 1000 * time.Millisecond

// TimerHook receives EventTimer events forwarded by [Wait]/[TryWait].
// Only its invocation contract is consumed here; the timer subsystem
// itself is out of scope.
type TimerHook func(ev Event)

// Send delivers ev to to's mailbox, blocking up to an
// implementation-defined bound (1000ms) if the mailbox is full.
// Returns [ErrInvalidArgument] if to has no mailbox, [ErrTimeout] if
// the bound elapses first.
//
// If from == to and the mailbox is already full, Send panics: a
// thread sending to its own full mailbox is a guaranteed deadlock
// (nothing else will ever drain it), which the data model calls out
// as a fatal, unrecoverable condition.
func Send(from, to *Thread, ev Event) error {
	if to == nil || to.mailbox == nil {
		return ErrInvalidArgument
	}
	if from == to {
		if !to.mailbox.TryPutISR(ev) {
			panic("osi: send to current thread with full mailbox would deadlock")
		}
		return nil
	}
	if !to.mailbox.TryPut(ev, defaultSendTimeout) {
		return ErrTimeout
	}
	return nil
}

// TrySend delivers ev within timeout, with the usual 0/[Forever]
// convention. Returns [ErrInvalidArgument] if to has no mailbox,
// [ErrTimeout] on expiry.
func TrySend(to *Thread, ev Event, timeout time.Duration) error {
	if to == nil || to.mailbox == nil {
		return ErrInvalidArgument
	}
	if !to.mailbox.TryPut(ev, timeout) {
		return ErrTimeout
	}
	return nil
}

// TrySendISR delivers ev without blocking, for interrupt context.
// Returns [ErrResourceExhausted] if the mailbox is full.
func TrySendISR(to *Thread, ev Event) error {
	if to == nil || to.mailbox == nil {
		return ErrInvalidArgument
	}
	if !to.mailbox.TryPutISR(ev) {
		return ErrResourceExhausted
	}
	return nil
}

// Wait dequeues and dispatches exactly one event from t's mailbox,
// blocking forever until one arrives. hook, if non-nil, receives
// EventTimer events. Returns [ErrStopped] when the dispatched event
// was EventQuit, signalling the caller's run loop to exit.
func Wait(t *Thread, hook TimerHook) (Event, error) {
	if t == nil || t.mailbox == nil {
		return Event{}, ErrInvalidArgument
	}
	ev := t.mailbox.Get()
	return ev, dispatch(t, ev, hook)
}

// TryWait is [Wait] bounded by timeout (0/[Forever] convention).
// Returns [ErrTimeout] if no event arrives in time.
func TryWait(t *Thread, timeout time.Duration, hook TimerHook) (Event, error) {
	if t == nil || t.mailbox == nil {
		return Event{}, ErrInvalidArgument
	}
	ev, ok := t.mailbox.TryGet(timeout)
	if !ok {
		return Event{}, ErrTimeout
	}
	return ev, dispatch(t, ev, hook)
}

// dispatch decodes ev by kind, per the event dispatcher component.
func dispatch(t *Thread, ev Event, hook TimerHook) error {
	switch ev.ID {
	case EventNone:
		return nil
	case EventTimer:
		if hook != nil {
			hook(ev)
		}
		return nil
	case EventCallback:
		fn := lookupCallback(ev.Param1)
		freeHandle(ev.Param1)
		if fn != nil {
			fn(ev.Param2)
		}
		return nil
	case EventNotify:
		n := lookupNotification(ev.Param1)
		if n != nil {
			n.dispatch()
		}
		return nil
	case EventQuit:
		if ev.Param1 != 0 {
			if sem := lookupSemaphore(ev.Param1); sem != nil {
				freeHandle(ev.Param1)
				sem.Release()
			}
		}
		return ErrStopped
	default:
		return nil
	}
}
