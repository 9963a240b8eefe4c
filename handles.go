// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "sync"

// Event params are opaque machine words (uintptr) per the data model,
// mirroring how the original kernel smuggles pointers through event
// queues. Go's garbage collector cannot trace a raw uintptr back to
// its pointee, so a pointer must not be round-tripped through a plain
// uintptr(unsafe.Pointer(p)) conversion and stored for later use. A
// small handle table keeps the referenced values alive and reachable
// while they sit inside an Event in a mailbox.
var handles = struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]any
}{m: make(map[uintptr]any)}

func newHandle(v any) uintptr {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	handles.next++
	h := handles.next
	handles.m[h] = v
	return h
}

func lookupHandle(h uintptr) any {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return handles.m[h]
}

func freeHandle(h uintptr) {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	delete(handles.m, h)
}

func registerCallback(fn func(ctx uintptr)) uintptr {
	return newHandle(fn)
}

func lookupCallback(h uintptr) func(ctx uintptr) {
	v := lookupHandle(h)
	if v == nil {
		return nil
	}
	return v.(func(ctx uintptr))
}

func notificationHandle(n *Notification) uintptr {
	return newHandle(n)
}

func lookupNotification(h uintptr) *Notification {
	v := lookupHandle(h)
	if v == nil {
		return nil
	}
	return v.(*Notification)
}

func semaphoreHandle(s *Semaphore) uintptr {
	return newHandle(s)
}

func lookupSemaphore(h uintptr) *Semaphore {
	v := lookupHandle(h)
	if v == nil {
		return nil
	}
	return v.(*Semaphore)
}
