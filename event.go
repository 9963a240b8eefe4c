// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

// EventKind identifies what an [Event] carries.
type EventKind int

const (
	// EventNone is the zero value; never dispatched.
	EventNone EventKind = iota
	// EventTimer marks an event forwarded to the timer subsystem's
	// invocation hook.
	EventTimer
	// EventCallback carries a handle to a callback function in Param1
	// and its context in Param2; the dispatcher invokes the function
	// with Param2.
	EventCallback
	// EventNotify carries a handle to a *Notification in Param1.
	EventNotify
	// EventQuit requests the receiving thread to exit. Param1, if
	// non-zero, holds a handle to a *Semaphore the sender is waiting
	// on for acknowledgement.
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventTimer:
		return "timer"
	case EventCallback:
		return "callback"
	case EventNotify:
		return "notify"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is the fixed-size record moved across mailboxes and work
// dispatch. It is copied by value across every queue boundary.
type Event struct {
	ID     EventKind
	Param1 uintptr
	Param2 uintptr
	Param3 uintptr
}

// IsZero reports whether e is the zero Event (EventNone, all params 0).
func (e Event) IsZero() bool {
	return e == Event{}
}

// CallbackEvent builds an EventCallback event invoking fn(ctx) when
// dispatched. fn and ctx are smuggled through uintptr params via the
// callback registry so they survive the copy-by-value queue boundary.
func CallbackEvent(fn func(ctx uintptr), ctx uintptr) Event {
	return Event{ID: EventCallback, Param1: registerCallback(fn), Param2: ctx}
}

// NotifyEvent builds an EventNotify event targeting n. n carries its
// own stable handle (assigned once at creation), so triggering the
// same notification repeatedly does not leak handle-table entries.
func NotifyEvent(n *Notification) Event {
	return Event{ID: EventNotify, Param1: n.handle}
}

// QuitEvent builds an EventQuit event. If ack is non-nil, the
// dispatcher releases it once the receiving thread processes the
// event, acknowledging the quit request to the sender.
func QuitEvent(ack *Semaphore) Event {
	if ack == nil {
		return Event{ID: EventQuit}
	}
	return Event{ID: EventQuit, Param1: uintptr(semaphoreHandle(ack))}
}
