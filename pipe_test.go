// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"testing"
	"time"
)

func TestPipeDrainThenEOF(t *testing.T) {
	p := NewPipe(8)

	if n, err := p.Write([]byte("hello")); err != nil || n != 5 {
		t.Fatalf("Write: got (%d, %v), want (5, nil)", n, err)
	}
	p.SetDataDone()

	buf := make([]byte, 5)
	n, err := p.ReadAll(buf, 100*time.Millisecond)
	if err != nil || n != 5 || string(buf) != "hello" {
		t.Fatalf("ReadAll: got (%q, %d, %v)", buf[:n], n, err)
	}

	if _, err := p.Read(make([]byte, 1)); err != ErrEndOfStream {
		t.Fatalf("Read after drain: got %v, want ErrEndOfStream", err)
	}
}

func TestPipeWrapsAcrossCapacity(t *testing.T) {
	p := NewPipe(4)

	p.Write([]byte("AB"))
	p.Read(make([]byte, 2))
	n, err := p.Write([]byte("CDEF"))
	if err != nil || n != 4 {
		t.Fatalf("Write after drain: got (%d, %v), want (4, nil)", n, err)
	}

	out := make([]byte, 4)
	if n, err := p.Read(out); err != nil || n != 4 || string(out) != "CDEF" {
		t.Fatalf("Read after wrap: got (%q, %d, %v)", out[:n], n, err)
	}
}

func TestPipeStopWakesBlockedReader(t *testing.T) {
	p := NewPipe(4)
	done := make(chan error, 1)
	go func() {
		done <- p.WaitReadAvail(time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	p.Stop()

	select {
	case err := <-done:
		if err != ErrStopped {
			t.Fatalf("WaitReadAvail after Stop: got %v, want ErrStopped", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("WaitReadAvail did not wake up after Stop")
	}
}

func TestPipeWriteFailureReleasesNoCallback(t *testing.T) {
	p := NewPipe(2)
	var fired bool
	p.SetReadCallback(func(ctx uintptr, ev PipeEvent) { fired = true }, RXArrived, 0)

	p.Write([]byte("AB")) // fills the pipe
	fired = false
	if n, err := p.Write([]byte("C")); n != 0 || err != nil {
		t.Fatalf("Write into full pipe: got (%d, %v), want (0, nil)", n, err)
	}
	if fired {
		t.Fatalf("read callback fired on a write that moved 0 bytes")
	}
}
