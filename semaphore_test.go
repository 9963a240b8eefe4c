// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"testing"
	"time"
)

func TestSemaphoreSaturatesAtMax(t *testing.T) {
	s := NewSemaphore(2, 0)
	s.Release()
	s.Release()
	s.Release() // over max, must be dropped, not block or panic

	if got := s.Current(); got != 2 {
		t.Fatalf("Current: got %d, want 2", got)
	}
}

func TestSemaphoreTryAcquireTimeout(t *testing.T) {
	s := NewSemaphore(1, 0)
	if s.TryAcquire(0) {
		t.Fatalf("TryAcquire(0) on empty semaphore: want false")
	}

	start := time.Now()
	if s.TryAcquire(30 * time.Millisecond) {
		t.Fatalf("TryAcquire(30ms) on empty semaphore: want false")
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("TryAcquire returned too early: %v", elapsed)
	}
}

func TestCriticalSectionExclusion(t *testing.T) {
	var cs CriticalSection
	counter := 0
	const n = 200
	done := make(chan struct{})

	for i := 0; i < n; i++ {
		go func() {
			tok := cs.Enter()
			counter++
			tok.Exit()
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}

	if counter != n {
		t.Fatalf("counter: got %d, want %d", counter, n)
	}
}

func TestCriticalSectionDoubleExitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("double Exit: want panic")
		}
	}()
	var cs CriticalSection
	tok := cs.Enter()
	tok.Exit()
	tok.Exit()
}
