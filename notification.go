// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

// NotificationStatus is the coalescing state machine status of a
// [Notification]: `status ∈ {Idle, QueuedActive, QueuedCancel,
// QueuedDelete}`.
type NotificationStatus int

const (
	// Idle: no event currently in flight for this notification.
	Idle NotificationStatus = iota
	// QueuedActive: an event is in flight and will invoke cb on dispatch.
	QueuedActive
	// QueuedCancel: an event is in flight but will be discarded
	// without invoking cb.
	QueuedCancel
	// QueuedDelete: an event is in flight; the dispatcher frees the
	// notification instead of invoking cb.
	QueuedDelete
)

func (s NotificationStatus) String() string {
	switch s {
	case Idle:
		return "idle"
	case QueuedActive:
		return "queued-active"
	case QueuedCancel:
		return "queued-cancel"
	case QueuedDelete:
		return "queued-delete"
	default:
		return "unknown"
	}
}

// Notification is a coalescing one-shot trigger targeting a thread:
// `{thread, cb, ctx, status}`. Multiple [Notification.Trigger] calls
// before the thread dispatches the pending event collapse into a
// single callback invocation — the invariant is exactly one in-flight
// event per notification at any time.
type Notification struct {
	cs     CriticalSection
	status NotificationStatus
	thread *Thread
	cb     func(ctx uintptr)
	ctx    uintptr
	handle uintptr // stable handle for this notification's lifetime
}

// NewNotification creates a notification targeting thread; cb(ctx) is
// invoked on thread when the notification fires.
func NewNotification(thread *Thread, cb func(ctx uintptr), ctx uintptr) *Notification {
	n := &Notification{thread: thread, cb: cb, ctx: ctx}
	n.handle = notificationHandle(n)
	return n
}

// Trigger arms the notification. If Idle, it transitions to
// QueuedActive and sends a Notify event to the target thread. If
// already queued (anything but QueuedDelete), it re-arms to
// QueuedActive without enqueueing a second event — this is the
// coalescing behaviour.
func (n *Notification) Trigger() error {
	t := n.cs.Enter()
	status := n.status
	shouldSend := status == Idle
	if status != QueuedDelete {
		n.status = QueuedActive
	}
	t.Exit()

	if shouldSend {
		return TrySendISR(n.thread, NotifyEvent(n))
	}
	return nil
}

// Cancel discards a pending dispatch without invoking cb. A no-op
// unless the notification is currently QueuedActive.
func (n *Notification) Cancel() {
	t := n.cs.Enter()
	if n.status == QueuedActive {
		n.status = QueuedCancel
	}
	t.Exit()
}

// Delete releases the notification. If Idle, it is freed immediately;
// otherwise it is marked QueuedDelete and the pending dispatch frees
// it instead of invoking cb.
func (n *Notification) Delete() {
	t := n.cs.Enter()
	idle := n.status == Idle
	if !idle {
		n.status = QueuedDelete
	}
	t.Exit()

	if idle {
		freeHandle(n.handle)
	}
}

// dispatch runs the Notify-event handling rules from the event
// dispatcher component: the status toggle happens inside the critical
// section to preserve coalescing, cb runs outside it.
func (n *Notification) dispatch() {
	t := n.cs.Enter()
	status := n.status
	var cb func(ctx uintptr)
	var ctx uintptr
	switch status {
	case QueuedDelete:
		n.status = Idle
	case QueuedActive:
		cb, ctx = n.cb, n.ctx
		n.status = Idle
	case QueuedCancel:
		n.status = Idle
	}
	t.Exit()

	if status == QueuedDelete {
		freeHandle(n.handle)
		return
	}
	if cb != nil {
		cb(ctx)
	}
}

// Status returns the current coalescing state. Intended for
// diagnostics and tests; may be stale immediately after it is read.
func (n *Notification) Status() NotificationStatus {
	t := n.cs.Enter()
	s := n.status
	t.Exit()
	return s
}
