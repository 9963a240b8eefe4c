// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"fmt"
	"testing"
)

func logContains(log []string, op uint32) bool {
	want := fmt.Sprintf("%#02x", op)
	for _, got := range log {
		if got == want {
			return true
		}
	}
	return false
}

func TestSuspendResumeRequireSuspendEn(t *testing.T) {
	d := &Descriptor{Controller: &fakeController{}, Flags: Flags{SuspendEn: false}}
	if err := Suspend(d); err == nil {
		t.Fatalf("Suspend without SuspendEn: want error")
	}
	if err := Resume(d); err == nil {
		t.Fatalf("Resume without SuspendEn: want error")
	}
}

func TestSuspendResumeIssueOpcodes(t *testing.T) {
	ctl := &fakeController{}
	d := &Descriptor{Controller: ctl, Flags: Flags{SuspendEn: true}}

	if err := Suspend(d); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if !logContains(ctl.log, opSuspend) {
		t.Fatalf("Suspend: opcode %#x not issued", opSuspend)
	}

	if err := Resume(d); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !logContains(ctl.log, opResume) {
		t.Fatalf("Resume: opcode %#x not issued", opResume)
	}
}

func TestPowerDownReleaseIssuesOpcodes(t *testing.T) {
	ctl := &fakeController{}
	d := &Descriptor{Controller: ctl}

	if err := PowerDown(d); err != nil {
		t.Fatalf("PowerDown: %v", err)
	}
	if !logContains(ctl.log, opPD) {
		t.Fatalf("PowerDown: opcode %#x not issued", opPD)
	}

	if err := ReleasePowerDown(d); err != nil {
		t.Fatalf("ReleasePowerDown: %v", err)
	}
	if !logContains(ctl.log, opRDI) {
		t.Fatalf("ReleasePowerDown: opcode %#x not issued", opRDI)
	}
}
