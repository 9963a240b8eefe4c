// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"bytes"
	"testing"
)

func gdTestDescriptor(ctl Controller) *Descriptor {
	return &Descriptor{
		Controller:    ctl,
		Family:        FamilyGD,
		SRegBlockSize: 256,
		SRegMinNum:    1,
		SRegMaxNum:    3,
	}
}

func TestSecurityProgramReadRoundTrip(t *testing.T) {
	d := gdTestDescriptor(&fakeController{})
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	if err := SecurityProgram(d, 1, 0, data); err != nil {
		t.Fatalf("SecurityProgram: %v", err)
	}
	got, err := SecurityRead(d, 1, 0, len(data))
	if err != nil {
		t.Fatalf("SecurityRead: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("SecurityRead: got %x, want %x", got, data)
	}
}

func TestSecurityEraseResetsToFF(t *testing.T) {
	d := gdTestDescriptor(&fakeController{})
	SecurityProgram(d, 2, 0, []byte{0x01, 0x02})

	if err := SecurityErase(d, 2); err != nil {
		t.Fatalf("SecurityErase: %v", err)
	}
	got, err := SecurityRead(d, 2, 0, 2)
	if err != nil {
		t.Fatalf("SecurityRead: %v", err)
	}
	if got[0] != 0xFF || got[1] != 0xFF {
		t.Fatalf("SecurityRead after erase: got %x, want ff ff", got)
	}
}

func TestSecurityAccessRejectsOutOfBlockRange(t *testing.T) {
	d := gdTestDescriptor(&fakeController{})

	if _, err := SecurityRead(d, 1, 250, 10); err == nil {
		t.Fatalf("SecurityRead spanning past SRegBlockSize: want error")
	}
	if _, err := SecurityRead(d, 5, 0, 1); err == nil {
		t.Fatalf("SecurityRead with num outside [SRegMinNum, SRegMaxNum]: want error")
	}
}

func TestSecurityReadRejectsOverfourBytesOnGDPath(t *testing.T) {
	d := gdTestDescriptor(&fakeController{})

	if _, err := SecurityRead(d, 1, 0, 5); err == nil {
		t.Fatalf("SecurityRead length=5 on GD opcode path: want error (readback word is only 4 bytes)")
	}
	if _, err := SecurityRead(d, 1, 0, 4); err != nil {
		t.Fatalf("SecurityRead length=4 on GD opcode path: %v", err)
	}
}

func TestSecurityLockUnlock(t *testing.T) {
	d := gdTestDescriptor(&fakeController{})

	if err := SecurityLock(d, 1); err != nil {
		t.Fatalf("SecurityLock: %v", err)
	}
	sr, err := ReadSR(d)
	if err != nil {
		t.Fatalf("ReadSR: %v", err)
	}
	if sr&securityLockBit(d, 1) == 0 {
		t.Fatalf("SR after SecurityLock: lock bit not set")
	}

	if err := SecurityUnlock(d, 1); err != nil {
		t.Fatalf("SecurityUnlock: %v", err)
	}
	sr, err = ReadSR(d)
	if err != nil {
		t.Fatalf("ReadSR: %v", err)
	}
	if sr&securityLockBit(d, 1) != 0 {
		t.Fatalf("SR after SecurityUnlock: lock bit still set")
	}
}
