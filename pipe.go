// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import "time"

// PipeEvent identifies which side of a [Pipe] transition a registered
// callback is being invoked for.
type PipeEvent uint32

const (
	// RXArrived fires on the reader's callback when a write deposits
	// bytes a reader can consume.
	RXArrived PipeEvent = 1 << iota
	// TXComplete fires on the writer's callback when a read fully
	// drains everything the writer had deposited.
	TXComplete
)

// PipeCallback is invoked outside the pipe's critical section, on the
// caller thread that triggered the transition. Implementations must
// be short and non-blocking.
type PipeCallback func(ctx uintptr, ev PipeEvent)

// Pipe is a thread-safe bounded byte stream:
// `{size, rd, wr, running, eof, data_done, rd_sema, wr_sema, rd_cb,
// rd_cb_mask, rd_cb_ctx, wr_cb, wr_cb_mask, wr_cb_ctx, buffer[size]}`.
//
// Invariants: `wr - rd ≤ size` at all times (monotonic counters, not
// modular); `running=false` is terminal; `eof=true` forbids further
// writes but permits reads to drain.
type Pipe struct {
	cs       CriticalSection
	size     uint64
	rd, wr   uint64
	running  bool
	eof      bool
	dataDone bool
	rdSema   *Semaphore // posted when bytes become available to read
	wrSema   *Semaphore // posted when space frees up to write
	rdCb     PipeCallback
	rdCbMask PipeEvent
	rdCbCtx  uintptr
	wrCb     PipeCallback
	wrCbMask PipeEvent
	wrCbCtx  uintptr
	buffer   []byte
}

// NewPipe creates a running pipe with the given byte capacity. Panics
// if size <= 0.
func NewPipe(size int) *Pipe {
	if size <= 0 {
		panic("osi: pipe size must be > 0")
	}
	return &Pipe{
		size:    uint64(size),
		running: true,
		rdSema:  NewBinarySemaphore(false),
		wrSema:  NewBinarySemaphore(false),
		buffer:  make([]byte, size),
	}
}

// SetReadCallback registers the reader-side callback, invoked with
// RXArrived (if mask matches) whenever [Pipe.Write] deposits bytes.
func (p *Pipe) SetReadCallback(cb PipeCallback, mask PipeEvent, ctx uintptr) {
	t := p.cs.Enter()
	p.rdCb, p.rdCbMask, p.rdCbCtx = cb, mask, ctx
	t.Exit()
}

// SetWriteCallback registers the writer-side callback, invoked with
// TXComplete (if mask matches) whenever a [Pipe.Read] fully drains
// the bytes available at the time it started.
func (p *Pipe) SetWriteCallback(cb PipeCallback, mask PipeEvent, ctx uintptr) {
	t := p.cs.Enter()
	p.wrCb, p.wrCbMask, p.wrCbCtx = cb, mask, ctx
	t.Exit()
}

// Read copies up to len(buf) available bytes into buf without
// blocking. Returns (0, nil) if running and not yet EOF but no data
// is currently available. Returns [ErrStopped] if the pipe was
// stopped, [ErrEndOfStream] once a producer-done pipe has been fully
// drained.
func (p *Pipe) Read(buf []byte) (int, error) {
	tok := p.cs.Enter()
	if !p.running {
		tok.Exit()
		return 0, ErrStopped
	}
	avail := p.wr - p.rd
	n := uint64(len(buf))
	if n > avail {
		n = avail
	}
	if avail == 0 {
		if p.dataDone {
			p.eof = true
			tok.Exit()
			return 0, ErrEndOfStream
		}
		if p.eof {
			tok.Exit()
			return 0, ErrEndOfStream
		}
		tok.Exit()
		return 0, nil
	}
	if n == 0 {
		tok.Exit()
		return 0, nil
	}

	start := p.rd % p.size
	first := p.size - start
	if first > n {
		first = n
	}
	copy(buf[:first], p.buffer[start:start+first])
	if n > first {
		copy(buf[first:n], p.buffer[0:n-first])
	}
	p.rd += n
	drainedAll := n == avail
	cb, mask, ctx := p.wrCb, p.wrCbMask, p.wrCbCtx
	tok.Exit()

	p.wrSema.Release()
	if drainedAll && cb != nil && mask&TXComplete != 0 {
		cb(ctx, TXComplete)
	}
	return int(n), nil
}

// Write copies up to len(buf) bytes into the pipe without blocking,
// limited by available space. Returns [ErrStopped] if the pipe is
// stopped or at EOF.
//
// rd_sema is released — and the reader callback invoked — only on the
// path that actually moves bytes (n > 0). A write that finds no room
// (n == 0) releases nothing. This is deliberate, carried over
// unchanged: see the design ledger for why it cannot stall a reader
// past a [Pipe.Stop].
func (p *Pipe) Write(buf []byte) (int, error) {
	tok := p.cs.Enter()
	if !p.running || p.eof {
		tok.Exit()
		return 0, ErrStopped
	}
	avail := p.size - (p.wr - p.rd)
	n := uint64(len(buf))
	if n > avail {
		n = avail
	}
	if n == 0 {
		tok.Exit()
		return 0, nil
	}

	start := p.wr % p.size
	first := p.size - start
	if first > n {
		first = n
	}
	copy(p.buffer[start:start+first], buf[:first])
	if n > first {
		copy(p.buffer[0:n-first], buf[first:n])
	}
	p.wr += n
	cb, mask, ctx := p.rdCb, p.rdCbMask, p.rdCbCtx
	tok.Exit()

	p.rdSema.Release()
	if cb != nil && mask&RXArrived != 0 {
		cb(ctx, RXArrived)
	}
	return int(n), nil
}

// WaitReadAvail blocks until data is available to read, the pipe
// stops, or it reaches EOF, bounded by timeout (0/[Forever]
// convention).
func (p *Pipe) WaitReadAvail(timeout time.Duration) error {
	tok := p.cs.Enter()
	avail := p.wr - p.rd
	stopped := !p.running
	eof := p.eof || p.dataDone
	tok.Exit()
	if stopped {
		return ErrStopped
	}
	if avail > 0 {
		return nil
	}
	if eof {
		return ErrEndOfStream
	}
	deadline, unbounded := deadlineFor(timeout)
	if !p.rdSema.TryAcquire(timeout) {
		return ErrTimeout
	}
	// A wake only means the state changed (data, Stop, SetEOF,
	// SetDataDone); re-check it with what is left of the timeout.
	remaining, _ := remainingTimeout(deadline, unbounded)
	return p.WaitReadAvail(remaining)
}

// WaitWriteAvail blocks until space is available to write, bounded by
// timeout. Returns [ErrStopped] if the pipe is stopped or at EOF.
func (p *Pipe) WaitWriteAvail(timeout time.Duration) error {
	tok := p.cs.Enter()
	space := p.size - (p.wr - p.rd)
	stopped := !p.running
	eof := p.eof
	tok.Exit()
	if stopped || eof {
		return ErrStopped
	}
	if space > 0 {
		return nil
	}
	deadline, unbounded := deadlineFor(timeout)
	if !p.wrSema.TryAcquire(timeout) {
		return ErrTimeout
	}
	// Re-check after the wake: Stop and SetEOF also release wrSema.
	remaining, _ := remainingTimeout(deadline, unbounded)
	return p.WaitWriteAvail(remaining)
}

// ReadAll loops single-shot reads until buf is full, an error occurs,
// or timeout (decaying across iterations) expires, returning the
// bytes actually read.
func (p *Pipe) ReadAll(buf []byte, timeout time.Duration) (int, error) {
	total := 0
	deadline, unbounded := deadlineFor(timeout)
	for total < len(buf) {
		n, err := p.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			continue
		}
		remaining, expired := remainingTimeout(deadline, unbounded)
		if expired {
			return total, ErrTimeout
		}
		if err := p.WaitReadAvail(remaining); err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll loops single-shot writes until all of buf is written, an
// error occurs, or timeout expires, returning the bytes actually
// written.
func (p *Pipe) WriteAll(buf []byte, timeout time.Duration) (int, error) {
	total := 0
	deadline, unbounded := deadlineFor(timeout)
	for total < len(buf) {
		n, err := p.Write(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			continue
		}
		remaining, expired := remainingTimeout(deadline, unbounded)
		if expired {
			return total, ErrTimeout
		}
		if err := p.WaitWriteAvail(remaining); err != nil {
			return total, err
		}
	}
	return total, nil
}

// SetDataDone marks the producer as finished: once the pipe empties,
// the next [Pipe.Read] transitions it to EOF. Wakes any blocked
// reader so it can observe the transition.
func (p *Pipe) SetDataDone() {
	tok := p.cs.Enter()
	p.dataDone = true
	tok.Exit()
	p.rdSema.Release()
}

// Stop flips running to false and releases both semaphores,
// unblocking every waiter unconditionally — this is what guarantees a
// blocked reader or writer always wakes on shutdown, regardless of
// the asymmetric release behaviour in Write's success-only path.
func (p *Pipe) Stop() {
	tok := p.cs.Enter()
	p.running = false
	tok.Exit()
	p.rdSema.Release()
	p.wrSema.Release()
}

// SetEOF forces the pipe directly to EOF and releases both
// semaphores.
func (p *Pipe) SetEOF() {
	tok := p.cs.Enter()
	p.eof = true
	tok.Exit()
	p.rdSema.Release()
	p.wrSema.Release()
}

// Reset zeroes rd/wr, clears eof and data_done, and restores running.
func (p *Pipe) Reset() {
	tok := p.cs.Enter()
	p.rd, p.wr = 0, 0
	p.eof = false
	p.dataDone = false
	p.running = true
	tok.Exit()
}

func deadlineFor(timeout time.Duration) (deadline time.Time, unbounded bool) {
	if timeout == Forever {
		return time.Time{}, true
	}
	return time.Now().Add(timeout), false
}

func remainingTimeout(deadline time.Time, unbounded bool) (remaining time.Duration, expired bool) {
	if unbounded {
		return Forever, false
	}
	remaining = time.Until(deadline)
	if remaining <= 0 {
		return 0, true
	}
	return remaining, false
}
