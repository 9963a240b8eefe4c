// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "code.hybscloud.com/osi"

const (
	bitWIP  = uint16(1) << 0
	bitWEL  = uint16(1) << 1
	bitQE   = uint16(1) << 9  // SR2 bit 1
	bitSUS2 = uint16(1) << 14 // SR2 bit 6
	bitSUS1 = uint16(1) << 15 // SR2 bit 7
	bitTB   = uint16(1) << 10 // SR2 bit 2, XMCA top-block-protect
	bitEBL  = uint16(1) << 6  // SR1 bit 6, XMCA erase/program byte-locking enable
	bitSRP  = uint16(1) << 7  // SR1 bit 7, XMCA status-register-protect

	// bitOTPTB is OTP_TB, read/written via RDSR1/WRSR while the device
	// is addressing its OTP configuration byte (see [otpEnter]) rather
	// than its normal SR1 — a different register that shares SR1's
	// opcodes, with OTP_TB at bit 2, the position [bitTB] occupies
	// within SR2.
	bitOTPTB = byte(1) << 2
)

func resetIfBusy(d *Descriptor) (uint16, error) {
	sr, err := ReadSR(d)
	if err != nil {
		return 0, err
	}
	busy := sr&bitWEL != 0 || sr&bitWIP != 0
	if d.Flags.HasSUS1 {
		busy = busy || sr&bitSUS1 != 0
	}
	if d.Flags.HasSUS2 {
		busy = busy || sr&bitSUS2 != 0
	}
	if !busy {
		return sr, nil
	}
	if err := resetEnable(d.Controller); err != nil {
		return 0, err
	}
	if err := resetDevice(d.Controller); err != nil {
		return 0, err
	}
	if err := WaitWipFinish(d, osi.Forever); err != nil {
		return 0, err
	}
	return ReadSR(d)
}

// checkStatusGD resets the device if it booted with WEL/WIP/suspend
// bits already set, enables quad mode, and applies maximal write
// protection if the device uses the GD write-protect table (WpGD).
func checkStatusGD(d *Descriptor) error {
	sr, err := resetIfBusy(d)
	if err != nil {
		return err
	}
	newSR := sr
	if d.Flags.HasSR2 {
		newSR |= bitQE
	}
	if d.WpType == WpGD {
		bits, err := WpRange(d, 0, d.Capacity)
		if err != nil {
			return err
		}
		newSR = setWpBits(d, newSR, bits)
	}
	if newSR == sr {
		return nil
	}
	return writeSRPreferVolatile(d, newSR)
}

// checkStatusXMCA resets the device if busy, enters OTP mode to set
// OTP_TB (so the block-protect field counts up from the bottom of the
// device rather than down from the top) if it isn't already set, exits
// OTP mode, then applies maximal write protection and clears the
// byte-locking/status-register-protect bits in SR1.
func checkStatusXMCA(d *Descriptor) error {
	if _, err := resetIfBusy(d); err != nil {
		return err
	}

	if err := otpEnter(d.Controller); err != nil {
		return err
	}
	otpSR, err := rdsr1(d.Controller)
	if err != nil {
		return err
	}
	if otpSR&bitOTPTB == 0 {
		if err := wren(d.Controller); err != nil {
			return err
		}
		if err := wrsr(d.Controller, []byte{otpSR | bitOTPTB}); err != nil {
			return err
		}
		if err := WaitWipFinish(d, osi.Forever); err != nil {
			return err
		}
	}
	if err := wrdi(d.Controller); err != nil {
		return err
	}

	sr, err := ReadSR(d)
	if err != nil {
		return err
	}
	newSR := sr &^ (bitEBL | bitSRP)
	if d.WpType == WpXMCA {
		bits, err := WpRange(d, 0, d.Capacity)
		if err != nil {
			return err
		}
		newSR = setWpBits(d, newSR, bits)
	}
	if newSR == sr {
		return nil
	}
	return writeSRPreferVolatile(d, newSR)
}

// checkStatusXMCB resets the device if busy, then ensures SR reads as
// exactly quad-enable-set-and-nothing-else.
func checkStatusXMCB(d *Descriptor) error {
	sr, err := resetIfBusy(d)
	if err != nil {
		return err
	}
	if sr == bitQE {
		return nil
	}
	return writeSRPreferVolatile(d, bitQE)
}

// Init identifies the device attached to d.Controller via RDID, binds
// the property-table row matched against the observed id (exact, then
// 16-bit, then 8-bit fallback — see [findProp]), and runs the
// family-appropriate status-register sanity check. Capacity is
// derived from the observed id's third byte (1 << byte), not the
// property table's, since the same row can match several capacities
// under the 8-bit fallback.
func Init(d *Descriptor) error {
	mid, err := rdid(d.Controller)
	if err != nil {
		return err
	}
	p := findProp(mid)

	d.MID = mid
	d.Capacity = 1 << mid[2]
	d.Family = p.family
	d.WpType = p.wpType
	d.UidType = p.uidType
	d.CpidType = p.cpidType
	d.SRegBlockSize = p.sregBlockSize
	d.SRegMinNum = p.sregMinNum
	d.SRegMaxNum = p.sregMaxNum
	d.Flags = p.flags

	switch d.Family {
	case FamilyXMCA:
		return checkStatusXMCA(d)
	case FamilyXMCB:
		return checkStatusXMCB(d)
	default:
		return checkStatusGD(d)
	}
}
