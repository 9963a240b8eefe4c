// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"testing"
	"time"

	"code.hybscloud.com/osi"
)

func TestWriteSRSingleByteDevice(t *testing.T) {
	ctl := &fakeController{}
	d := &Descriptor{Controller: ctl}

	if err := WriteSR(d, 0x04); err != nil {
		t.Fatalf("WriteSR: %v", err)
	}
	got, err := ReadSR(d)
	if err != nil {
		t.Fatalf("ReadSR: %v", err)
	}
	if got != 0x04 {
		t.Fatalf("ReadSR: got %#x, want %#x", got, 0x04)
	}
}

func TestWriteSRTwoRegisterDevice(t *testing.T) {
	ctl := &fakeController{}
	d := &Descriptor{Controller: ctl, Flags: Flags{HasSR2: true}}

	if err := WriteSR(d, 0x0104); err != nil {
		t.Fatalf("WriteSR: %v", err)
	}
	got, err := ReadSR(d)
	if err != nil {
		t.Fatalf("ReadSR: %v", err)
	}
	if got != 0x0104 {
		t.Fatalf("ReadSR: got %#x, want %#x", got, 0x0104)
	}
}

func TestWaitWipFinishTimesOutWhileBusy(t *testing.T) {
	ctl := &fakeController{sr1: 0x01} // WIP set
	d := &Descriptor{Controller: ctl}

	if err := WaitWipFinish(d, 30*time.Millisecond); err != osi.ErrTimeout {
		t.Fatalf("WaitWipFinish while busy: got %v, want ErrTimeout", err)
	}

	ctl.sr1 = 0
	if err := WaitWipFinish(d, time.Second); err != nil {
		t.Fatalf("WaitWipFinish once idle: %v", err)
	}
}
