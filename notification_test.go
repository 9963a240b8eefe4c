// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"testing"
	"time"
)

func TestNotificationCoalesces(t *testing.T) {
	target, err := CreateThread(DefaultKernel(), ThreadOptions{Name: "notif-target", EventCount: 4}, func(self *Thread, arg any) {}, nil)
	if err != nil {
		t.Fatalf("CreateThread: %v", err)
	}

	calls := 0
	n := NewNotification(target, func(ctx uintptr) { calls++ }, 0)

	if err := n.Trigger(); err != nil {
		t.Fatalf("first Trigger: %v", err)
	}
	if err := n.Trigger(); err != nil {
		t.Fatalf("second Trigger: %v", err)
	}
	if err := n.Trigger(); err != nil {
		t.Fatalf("third Trigger: %v", err)
	}

	ev, err := TryWait(target, time.Second, nil)
	if err != nil {
		t.Fatalf("TryWait: %v", err)
	}
	if ev.ID != EventNotify {
		t.Fatalf("event kind: got %v, want EventNotify", ev.ID)
	}

	if _, err := TryWait(target, 20*time.Millisecond, nil); err != ErrTimeout {
		t.Fatalf("second TryWait: got %v, want ErrTimeout (coalesced triggers should enqueue only one event)", err)
	}

	if calls != 1 {
		t.Fatalf("callback invocations: got %d, want 1", calls)
	}
}

func TestNotificationCancelSuppressesCallback(t *testing.T) {
	target, err := CreateThread(DefaultKernel(), ThreadOptions{Name: "notif-cancel", EventCount: 4}, func(self *Thread, arg any) {}, nil)
	if err != nil {
		t.Fatalf("CreateThread: %v", err)
	}

	calls := 0
	n := NewNotification(target, func(ctx uintptr) { calls++ }, 0)
	n.Trigger()
	n.Cancel()

	if _, err := TryWait(target, time.Second, nil); err != nil {
		t.Fatalf("TryWait: %v", err)
	}
	if calls != 0 {
		t.Fatalf("callback invocations after Cancel: got %d, want 0", calls)
	}
}
