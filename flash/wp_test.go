// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "testing"

func TestWpMappingGD8MiB(t *testing.T) {
	d := &Descriptor{WpType: WpGD, Capacity: 8 * 1024 * 1024}

	bitsAll, err := WpRange(d, 0, d.Capacity)
	if err != nil {
		t.Fatalf("WpRange(whole device): %v", err)
	}
	if bitsAll != 7 {
		t.Fatalf("WpRange(whole device): got bits %d, want 7 (maximal protection)", bitsAll)
	}

	bitsNone, err := WpBits(d, d.Capacity)
	if err != nil {
		t.Fatalf("WpBits(capacity): %v", err)
	}
	if bitsNone != 0 {
		t.Fatalf("WpBits(capacity): got bits %d, want 0 (nothing protected)", bitsNone)
	}

	half := d.Capacity / 2
	bitsHalf, err := WpRange(d, half, half)
	if err != nil {
		t.Fatalf("WpRange(upper half): %v", err)
	}
	if bitsHalf != 6 {
		t.Fatalf("WpRange(upper half): got bits %d, want 6", bitsHalf)
	}

	roundTrip, err := WpBits(d, half)
	if err != nil {
		t.Fatalf("WpBits(half): %v", err)
	}
	if roundTrip != bitsHalf {
		t.Fatalf("WpBits/WpRange mismatch at the same offset: %d vs %d", roundTrip, bitsHalf)
	}
}

func TestWpRangeRejectsOutOfBounds(t *testing.T) {
	d := &Descriptor{WpType: WpGD, Capacity: 1024 * 1024, SRegMinNum: 1, SRegMaxNum: 3}

	if _, _, err := d.SecurityRegisterRange(0); err == nil {
		t.Fatalf("SecurityRegisterRange(0): want error, 0 is below SRegMinNum")
	}

	if _, err := WpRange(d, d.Capacity-1, 2); err == nil {
		t.Fatalf("WpRange spanning past capacity: want error")
	}
}
