// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"fmt"
	"strings"
	"testing"
)

func TestInitFallsBackToSixteenBitMask(t *testing.T) {
	ctl := &fakeController{mid: [3]byte{0xC8, 0x40, 0x18}} // no exact row for this id
	d := &Descriptor{Controller: ctl}

	if err := Init(d); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if d.Family != FamilyGD {
		t.Fatalf("Family: got %s, want gd", d.Family)
	}
	if d.MID != ctl.mid {
		t.Fatalf("MID: got %02X, want %02X", d.MID, ctl.mid)
	}
	if want := uint32(1) << 0x18; d.Capacity != want {
		t.Fatalf("Capacity: got %d, want %d (derived from the observed id, not the matched row)", d.Capacity, want)
	}
}

func TestInitXMCARunsOTPSequenceAndProtectsAll(t *testing.T) {
	ctl := &fakeController{mid: [3]byte{0x20, 0x70, 0x16}}
	d := &Descriptor{Controller: ctl}

	if err := Init(d); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if d.Family != FamilyXMCA {
		t.Fatalf("Family: got %s, want xmca", d.Family)
	}

	var enteredOTP, exitedOTP bool
	otpOp, wrdiOp := fmt.Sprintf("%#02x", uint32(opOTPEnter)), fmt.Sprintf("%#02x", uint32(opWRDI))
	for _, op := range ctl.log {
		if op == otpOp {
			enteredOTP = true
		}
		if op == wrdiOp {
			exitedOTP = true
		}
	}
	if !enteredOTP {
		t.Fatalf("Init: did not enter OTP mode (opcode %s missing from log)", otpOp)
	}
	if !exitedOTP {
		t.Fatalf("Init: did not exit OTP mode (opcode %s missing from log)", wrdiOp)
	}

	sr, err := ReadSR(d)
	if err != nil {
		t.Fatalf("ReadSR: %v", err)
	}
	if sr&bitEBL != 0 || sr&bitSRP != 0 {
		t.Fatalf("SR after Init: EBL/SRP not cleared, got %#x", sr)
	}
	if bp := (sr & xmcaBPMask) >> xmcaBPShift; bp != 8 {
		t.Fatalf("SR block-protect field: got %d, want 8 (maximal protection)", bp)
	}
}

func TestInitPanicsOnUnknownManufacturer(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Init: want panic for an unrecognised manufacturer byte")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "AA0000") {
			t.Fatalf("panic message %v does not name the unrecognised id", r)
		}
	}()

	ctl := &fakeController{mid: [3]byte{0xAA, 0x00, 0x00}}
	d := &Descriptor{Controller: ctl}
	_ = Init(d)
}
