// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "code.hybscloud.com/osi"

func validateSecurityAccess(d *Descriptor, num int, offset uint32, length int) error {
	_, end, err := d.SecurityRegisterRange(num)
	if err != nil {
		return err
	}
	if length < 0 || uint32(length) > end || offset > end-uint32(length) {
		return osi.ErrInvalidArgument
	}
	return nil
}

// SecurityRead reads length bytes at offset within the num-th security
// register, dispatched on [Descriptor.Family]: the GD opcode set
// (48h) for every family but XMCB, which uses 68h. The GD opcode's
// readback path extracts the response from a 4-byte readback word
// (see [CmdDualTX]), so length is capped at 4 on that path; XMCB reads
// straight from the FIFO and has no such limit.
func SecurityRead(d *Descriptor, num int, offset uint32, length int) ([]byte, error) {
	if err := validateSecurityAccess(d, num, offset, length); err != nil {
		return nil, err
	}
	if d.Family == FamilyXMCB {
		return srReadXMCB(d.Controller, num, offset, length)
	}
	if length > 4 {
		return nil, osi.ErrInvalidArgument
	}
	return srReadGD(d.Controller, num, offset, length)
}

// SecurityProgram programs data at offset within the num-th security
// register. The caller is responsible for the register having been
// erased first.
func SecurityProgram(d *Descriptor, num int, offset uint32, data []byte) error {
	if err := validateSecurityAccess(d, num, offset, len(data)); err != nil {
		return err
	}
	if err := wren(d.Controller); err != nil {
		return err
	}
	if d.Family == FamilyXMCB {
		return srProgramXMCB(d.Controller, num, offset, data)
	}
	return srProgramGD(d.Controller, num, offset, data)
}

// SecurityErase erases the entire num-th security register block.
func SecurityErase(d *Descriptor, num int) error {
	if num < d.SRegMinNum || num > d.SRegMaxNum {
		return osi.ErrInvalidArgument
	}
	if err := wren(d.Controller); err != nil {
		return err
	}
	if d.Family == FamilyXMCB {
		return srEraseXMCB(d.Controller, num)
	}
	return srEraseGD(d.Controller, num)
}

// securityLockBit locates the one-time-programmable lock bit for the
// num-th security register: SR12 LB1+(num-1) for GD, SR12 LB for
// XMCA, and an IRL0+num bit for XMCB. For every family, XMCB
// included, the bit is a position in the 16-bit status register and
// is written through the ordinary SR write path; no separate Function
// Register is read or written. Bit positions are chosen clear of each
// family's block-protect and status bits.
func securityLockBit(d *Descriptor, num int) uint16 {
	switch d.Family {
	case FamilyXMCA:
		return 1 << uint(10+num)
	case FamilyXMCB:
		return 1 << uint(10+num)
	default:
		return 1 << uint(4+num)
	}
}

// SecurityLock permanently locks the num-th security register against
// further program/erase. This is one-time and not reversible on real
// hardware; [SecurityUnlock] exists only so the lock invariant itself
// is testable against a fake controller.
func SecurityLock(d *Descriptor, num int) error {
	if num < d.SRegMinNum || num > d.SRegMaxNum {
		return osi.ErrInvalidArgument
	}
	sr, err := ReadSR(d)
	if err != nil {
		return err
	}
	return writeSRPreferVolatile(d, sr|securityLockBit(d, num))
}

// SecurityUnlock clears the num-th security register's lock bit.
// Debug-only: real devices' lock bits are one-time-programmable and
// cannot actually be cleared.
func SecurityUnlock(d *Descriptor, num int) error {
	if num < d.SRegMinNum || num > d.SRegMaxNum {
		return osi.ErrInvalidArgument
	}
	sr, err := ReadSR(d)
	if err != nil {
		return err
	}
	return writeSRPreferVolatile(d, sr&^securityLockBit(d, num))
}
