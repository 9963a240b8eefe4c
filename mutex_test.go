// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"testing"
	"time"
)

func TestRecursiveMutexReentrant(t *testing.T) {
	m := NewRecursiveMutex()
	const owner Owner = 1

	m.Lock(owner)
	m.Lock(owner) // reentrant, must not deadlock
	m.Unlock(owner)
	m.Unlock(owner)

	if !m.TryLock(owner, 0) {
		t.Fatalf("TryLock: want success after full unlock")
	}
	m.Unlock(owner)
}

func TestRecursiveMutexExcludesOtherOwner(t *testing.T) {
	m := NewRecursiveMutex()
	const a, b Owner = 1, 2

	m.Lock(a)
	if m.TryLock(b, 20*time.Millisecond) {
		t.Fatalf("TryLock(b): want failure while a holds the mutex")
	}
	m.Unlock(a)

	if !m.TryLock(b, 0) {
		t.Fatalf("TryLock(b): want success once a releases")
	}
	m.Unlock(b)
}
