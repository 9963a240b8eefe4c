// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"sync"
	"time"
)

// RecursiveMutex is an owner-tracked recursive lock: `{owner, depth}`.
// A non-owner acquire blocks; the owner may reacquire, incrementing
// depth; release decrements depth and, at zero, releases ownership.
//
// Calls from ISR context are no-ops: Lock/Unlock from
// [RecursiveMutex.LockISR]/[RecursiveMutex.UnlockISR] never block and
// TryLockISR always reports failure, matching the data model's "ISR
// calls are no-ops" rule — an ISR cannot own a mutex a thread is
// waiting on without risking deadlock.
type RecursiveMutex struct {
	mu    sync.Mutex
	owner uint64 // goroutine-independent owner token; 0 = unowned
	depth int
	gate  *Semaphore // binary semaphore backing the blocking wait
}

// NewRecursiveMutex creates an unlocked recursive mutex.
func NewRecursiveMutex() *RecursiveMutex {
	return &RecursiveMutex{gate: NewBinarySemaphore(true)}
}

// Owner is an opaque caller-supplied identity used to recognise
// reentrant acquisition. Go has no portable goroutine identity, so
// the caller supplies one (e.g. a per-goroutine token stored in a
// context value or a worker-local variable) exactly as the original
// kernel's thread handle would serve this role.
type Owner uint64

// Lock blocks forever until m is acquired by owner, or immediately
// increments depth if owner already holds m.
func (m *RecursiveMutex) Lock(owner Owner) {
	m.mu.Lock()
	if m.owner == uint64(owner) && m.depth > 0 {
		m.depth++
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.gate.Acquire()

	m.mu.Lock()
	m.owner = uint64(owner)
	m.depth = 1
	m.mu.Unlock()
}

// TryLock attempts to lock within timeout, with the same timeout
// convention as [Semaphore.TryAcquire] (0 = non-blocking,
// [Forever] = indefinite).
func (m *RecursiveMutex) TryLock(owner Owner, timeout time.Duration) bool {
	m.mu.Lock()
	if m.owner == uint64(owner) && m.depth > 0 {
		m.depth++
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()

	if !m.gate.TryAcquire(timeout) {
		return false
	}

	m.mu.Lock()
	m.owner = uint64(owner)
	m.depth = 1
	m.mu.Unlock()
	return true
}

// Unlock decrements depth; at zero, releases ownership. Behaviour is
// undefined (not required to panic) if called by a non-owner, per the
// data model.
func (m *RecursiveMutex) Unlock(owner Owner) {
	m.mu.Lock()
	if m.owner != uint64(owner) || m.depth == 0 {
		m.mu.Unlock()
		return
	}
	m.depth--
	last := m.depth == 0
	if last {
		m.owner = 0
	}
	m.mu.Unlock()

	if last {
		m.gate.Release()
	}
}

// LockISR is a no-op: mutex operations from ISR context never block.
func (m *RecursiveMutex) LockISR(Owner) {}

// UnlockISR is a no-op, matching LockISR.
func (m *RecursiveMutex) UnlockISR(Owner) {}

// TryLockISR always returns false: an ISR never owns a recursive mutex.
func (m *RecursiveMutex) TryLockISR(Owner) bool { return false }
