// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package osi provides an embedded operating-system abstraction layer:
// threads with event mailboxes, synchronization primitives, async work
// dispatch, and byte-stream plumbing, over a pluggable [Kernel] port.
//
// The package is organized around three layers:
//
//   - Primitives: [CriticalSection], [Semaphore], [RecursiveMutex],
//     [MessageQueue].
//   - Thread + dispatch: [Thread], [Event], [Send]/[Wait], [Notification],
//     [Post].
//   - Async plumbing: [FIFO], [Pipe], [WorkQueue].
//
// The SPI-NOR flash HAL in the osi/flash subpackage uses this
// package's error values and timeout convention. Its operations are
// synchronous calls; it does not create [WorkItem]s or wait on
// [Semaphore]s itself, and callers typically serialise flash traffic
// by issuing those calls from the standard file-system [WorkQueue].
//
// # Quick Start
//
//	k := osi.DefaultKernel()
//	osi.InitWorkQueues(k)
//
//	t, _ := osi.CreateThread(k, osi.ThreadOptions{Name: "worker", EventCount: 8}, func(self *osi.Thread, _ any) {
//	    for {
//	        ev, err := osi.Wait(self, nil)
//	        if err == osi.ErrStopped {
//	            return
//	        }
//	        _ = ev
//	    }
//	}, nil)
//
// # Blocking conventions
//
// Every operation with a timeout parameter accepts 0 (non-blocking
// try) and [Forever] (block indefinitely), exactly as the data model
// requires. Partial completion is returned on timeout rather than
// discarded — [Pipe.ReadAll] and [Pipe.WriteAll] both return bytes
// moved so far alongside the timeout error.
//
// # ISR-safe operations
//
// Only the operations explicitly marked ISR-safe may be called from
// interrupt context: [Semaphore.ReleaseISR], [MessageQueue.TryPutISR] /
// [MessageQueue.TryGetISR], [TrySendISR], [Notification.Trigger],
// [PostISR]. None of them block. [RecursiveMutex] operations are
// no-ops from ISR context (LockISR, UnlockISR, TryLockISR), since an
// ISR can never safely own a lock a thread might be waiting on.
//
// # Error handling
//
// [ErrWouldBlock] and friends ([ErrTimeout], [ErrEndOfStream]) are
// control-flow signals, not failures — use [IsSemantic] to tell them
// apart from genuine errors. Fatal misconfiguration (capacity <= 0, a
// thread sending to its own full mailbox) panics; there is no
// recovery path for those, by design.
//
// # Dependencies
//
// Built on code.hybscloud.com/atomix for ordered atomics,
// code.hybscloud.com/iox for the error taxonomy, and
// code.hybscloud.com/spin for short contention spins.
package osi
