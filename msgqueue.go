// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "time"

// MessageQueue is a bounded fixed-size element queue with ISR-safe
// send/recv. Unlike [Pipe] and [FIFO], it carries whole typed elements
// rather than a byte stream; [Thread] mailboxes and ISR-to-thread
// notification posting are both built on it.
//
// The element size is fixed at creation, as in the data model (a Go
// generic type parameter stands in for the original's declared
// element size).
type MessageQueue[T any] struct {
	ch chan T
}

// NewMessageQueue creates a queue holding up to capacity elements.
// Panics if capacity <= 0.
func NewMessageQueue[T any](capacity int) *MessageQueue[T] {
	if capacity <= 0 {
		panic("osi: message queue capacity must be > 0")
	}
	return &MessageQueue[T]{ch: make(chan T, capacity)}
}

// Put blocks forever until there is room for v.
func (q *MessageQueue[T]) Put(v T) {
	q.ch <- v
}

// TryPut attempts to enqueue v within timeout (0 = non-blocking,
// [Forever] = indefinite). Returns false on timeout.
func (q *MessageQueue[T]) TryPut(v T, timeout time.Duration) bool {
	if timeout == Forever {
		q.Put(v)
		return true
	}
	if timeout <= 0 {
		select {
		case q.ch <- v:
			return true
		default:
			return false
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case q.ch <- v:
		return true
	case <-timer.C:
		return false
	}
}

// TryPutISR enqueues v without blocking, for use from interrupt
// context. Returns false if the queue is full.
func (q *MessageQueue[T]) TryPutISR(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Get blocks forever until an element is available.
func (q *MessageQueue[T]) Get() T {
	return <-q.ch
}

// TryGet attempts to dequeue within timeout, with the usual
// convention. ok is false on timeout, in which case the returned
// value is the zero value.
func (q *MessageQueue[T]) TryGet(timeout time.Duration) (v T, ok bool) {
	if timeout == Forever {
		return q.Get(), true
	}
	if timeout <= 0 {
		select {
		case v = <-q.ch:
			return v, true
		default:
			return v, false
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case v = <-q.ch:
		return v, true
	case <-timer.C:
		return v, false
	}
}

// TryGetISR dequeues without blocking, for use from interrupt context.
func (q *MessageQueue[T]) TryGetISR() (v T, ok bool) {
	select {
	case v = <-q.ch:
		return v, true
	default:
		return v, false
	}
}

// Len returns the number of elements currently queued. Intended for
// diagnostics; may be stale immediately after it is read.
func (q *MessageQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the queue's fixed capacity.
func (q *MessageQueue[T]) Cap() int {
	return cap(q.ch)
}
