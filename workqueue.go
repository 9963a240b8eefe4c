// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"math"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// WorkItem is a run+complete callback pair with context, schedulable
// on a [WorkQueue]: `{run, complete, ctx, owning_queue}`. At most one
// queue membership at a time; `owning_queue == none` iff not enqueued.
//
// Membership (queue, prev, next) is guarded by the item's own
// [CriticalSection] rather than shared-ownership references, per the
// data model's "avoid shared-ownership references" guidance — the
// intrusive TAILQ's per-node lock in Go form.
type WorkItem struct {
	cs   CriticalSection
	Run  func(ctx uintptr)
	Complete func(ctx uintptr)
	Ctx  uintptr

	queue      *WorkQueue
	prev, next *WorkItem
}

// NewWorkItem creates a detached work item. run and/or complete may
// be nil.
func NewWorkItem(run, complete func(ctx uintptr), ctx uintptr) *WorkItem {
	return &WorkItem{Run: run, Complete: complete, Ctx: ctx}
}

// IsQueued reports whether the item currently belongs to a queue.
func (w *WorkItem) IsQueued() bool {
	t := w.cs.Enter()
	q := w.queue
	t.Exit()
	return q != nil
}

// WaitFinish blocks until the item is no longer queued (it has run
// to completion, or was cancelled), bounded by timeout. Returns true
// if the item finished, false on timeout.
//
// finish_sema is shared across every item in the owning queue, so
// each wakeup only means "something finished" — the waiter must
// recheck its own item's membership, which is exactly what this loop
// does. This is carried over unchanged from the data model.
func (w *WorkItem) WaitFinish(timeout time.Duration) bool {
	deadline, unbounded := deadlineFor(timeout)
	for {
		t := w.cs.Enter()
		q := w.queue
		t.Exit()
		if q == nil {
			return true
		}
		remaining, expired := remainingTimeout(deadline, unbounded)
		if expired {
			return false
		}
		if !q.finishSema.TryAcquire(remaining) {
			return false
		}
	}
}

// WorkQueue is a worker-thread-backed task list:
// `{running, worker_thread, work_sema, finish_sema, list}`. A single
// owned worker thread drains the list in strict insertion order.
type WorkQueue struct {
	name         string
	running      atomix.Bool
	workerThread *Thread
	workSema     *Semaphore // counting; one permit per queued item
	finishSema   *Semaphore // posted once per completed item

	cs         CriticalSection // guards head/tail
	head, tail *WorkItem
}

// NewWorkQueue creates a work queue and spawns its single worker
// thread on k.
func NewWorkQueue(k Kernel, name string, priority int) *WorkQueue {
	wq := &WorkQueue{
		name:       name,
		workSema:   NewSemaphore(math.MaxInt32, 0),
		finishSema: NewBinarySemaphore(false),
	}
	wq.running.Store(true)
	thread, _ := CreateThread(k, ThreadOptions{Name: name, Priority: priority}, func(self *Thread, _ any) {
		wq.loop()
	}, nil)
	wq.workerThread = thread
	return wq
}

func (wq *WorkQueue) loop() {
	for wq.running.Load() {
		wq.workSema.Acquire()
		for {
			w := wq.popFront()
			if w == nil {
				break
			}
			if w.Run != nil {
				w.Run(w.Ctx)
			}
			if w.Complete != nil {
				w.Complete(w.Ctx)
			}
			wq.finishSema.Release()
		}
	}
	// Shutdown: drain remaining items, detaching each without running it.
	for wq.popFront() != nil {
	}
}

// Enqueue appends w to the tail of wq. If w is already enqueued on a
// different queue, it is detached first. If w is already enqueued on
// wq (at any position), Enqueue is a no-op; use [WorkQueue.EnqueueLast]
// to force a move to the tail.
func (wq *WorkQueue) Enqueue(w *WorkItem) {
	t := w.cs.Enter()
	already := w.queue == wq
	t.Exit()
	if already {
		return
	}
	wq.enqueueInternal(w)
}

// EnqueueLast unconditionally detaches w (even from wq itself) and
// re-appends it to the tail — used to move an already-enqueued item
// to the back of its own queue.
func (wq *WorkQueue) EnqueueLast(w *WorkItem) {
	wq.enqueueInternal(w)
}

func (wq *WorkQueue) enqueueInternal(w *WorkItem) {
	detach(w)

	qt := wq.cs.Enter()
	it := w.cs.Enter()
	w.prev = wq.tail
	w.next = nil
	w.queue = wq
	it.Exit()
	if wq.tail != nil {
		pt := wq.tail.cs.Enter()
		wq.tail.next = w
		pt.Exit()
	} else {
		wq.head = w
	}
	wq.tail = w
	qt.Exit()

	wq.workSema.Release()
}

// Cancel detaches w if it is currently enqueued; a no-op otherwise.
func Cancel(w *WorkItem) {
	detach(w)
}

func (wq *WorkQueue) popFront() *WorkItem {
	qt := wq.cs.Enter()
	w := wq.head
	if w == nil {
		qt.Exit()
		return nil
	}
	next := w.next
	wq.head = next
	if next != nil {
		nt := next.cs.Enter()
		next.prev = nil
		nt.Exit()
	} else {
		wq.tail = nil
	}
	qt.Exit()

	it := w.cs.Enter()
	w.queue, w.prev, w.next = nil, nil, nil
	it.Exit()
	return w
}

func detach(w *WorkItem) {
	it := w.cs.Enter()
	q, prev, next := w.queue, w.prev, w.next
	w.queue, w.prev, w.next = nil, nil, nil
	it.Exit()
	if q == nil {
		return
	}

	qt := q.cs.Enter()
	if prev != nil {
		pt := prev.cs.Enter()
		prev.next = next
		pt.Exit()
	} else {
		q.head = next
	}
	if next != nil {
		nt := next.cs.Enter()
		next.prev = prev
		nt.Exit()
	} else {
		q.tail = prev
	}
	qt.Exit()
}

// Delete stops the queue: running flips false and the worker thread's
// block on work_sema is released so it notices on its next loop
// iteration, drains remaining items, and exits.
func (wq *WorkQueue) Delete() {
	wq.running.Store(false)
	wq.workSema.Release()
}

// The three process-wide singleton work queues, initialised once via
// [InitWorkQueues]. All accept the same [WorkItem] interface.
var (
	workQueuesOnce sync.Once
	highPriorityWQ *WorkQueue
	lowPriorityWQ  *WorkQueue
	fileSystemWQ   *WorkQueue
)

// InitWorkQueues creates the three standard singleton work queues on
// k. Subsequent calls are no-ops — callers get the queues created by
// the first call.
func InitWorkQueues(k Kernel) {
	workQueuesOnce.Do(func() {
		highPriorityWQ = NewWorkQueue(k, "wq-high-priority", 10)
		lowPriorityWQ = NewWorkQueue(k, "wq-low-priority", 1)
		fileSystemWQ = NewWorkQueue(k, "wq-file-system", 5)
	})
}

// HighPriorityQueue returns the standard high-priority work queue.
// Nil until [InitWorkQueues] has run.
func HighPriorityQueue() *WorkQueue { return highPriorityWQ }

// LowPriorityQueue returns the standard low-priority work queue.
// Nil until [InitWorkQueues] has run.
func LowPriorityQueue() *WorkQueue { return lowPriorityWQ }

// FileSystemQueue returns the standard (below-normal) file-system
// work queue, typically used to serialise SPI flash traffic. Nil
// until [InitWorkQueues] has run.
func FileSystemQueue() *WorkQueue { return fileSystemWQ }
