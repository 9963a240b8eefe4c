// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// CriticalSection briefly excludes concurrent access to a small piece
// of state, standing in for the original's preemption/interrupt
// disable. Unlike a general-purpose mutex, a CriticalSection is meant
// to be held for a handful of memory accesses only — never across a
// blocking call.
//
// Entry is not reentrant: no call site in this module re-enters a
// CriticalSection it is already holding on the same goroutine. Exit
// without a held token panics, which is the one misuse this type can
// detect without goroutine-identity tracking.
type CriticalSection struct {
	held atomix.Bool
}

// Token is the opaque handle returned by [CriticalSection.Enter];
// call Exit to leave the section.
type Token struct {
	cs *CriticalSection
}

// Enter acquires the critical section, spinning briefly against
// contention. Sections are held for only a handful of instructions,
// so a short CPU-pause spin loop outperforms parking a goroutine.
func (cs *CriticalSection) Enter() Token {
	sw := spin.Wait{}
	for !cs.held.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
	return Token{cs: cs}
}

// Exit releases the critical section. Exit panics if called twice on
// the same token or on a zero Token.
func (t Token) Exit() {
	if t.cs == nil {
		panic("osi: Exit called on zero Token")
	}
	if !t.cs.held.CompareAndSwapAcqRel(true, false) {
		panic("osi: Exit called on a critical section that is not held")
	}
}
