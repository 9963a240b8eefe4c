// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "code.hybscloud.com/osi"

// sfdpUIDAddr/sfdpUIDLen are the illustrative SFDP offset and length
// used by the "fall back to SFDP" UID variant — see [proptable.go]'s
// note that the property table rows are illustrative, not a real
// parts list; a real SFDP-UID device would carry its own address.
const (
	sfdpUIDAddr = 0x10
	sfdpUIDLen  = 8
)

// ReadUID returns the device's unique ID, dispatched on d.UidType: the
// 4Bh opcode with an 8- or 16-byte response, or a fallback read of the
// SFDP table for devices with no dedicated UID opcode.
func ReadUID(d *Descriptor) ([]byte, error) {
	switch d.UidType {
	case Uid4B8:
		return readUID(d.Controller, 8)
	case Uid4B16:
		return readUID(d.Controller, 16)
	case UidSFDP:
		return readSFDP(d.Controller, sfdpUIDAddr, sfdpUIDLen)
	default:
		return nil, osi.ErrInvalidArgument
	}
}

// ReadCPID returns the device's 16-byte unique ID together with its
// 2-byte customer product ID, only valid when d.CpidType is [Cpid4B].
func ReadCPID(d *Descriptor) (uid [16]byte, cp [2]byte, err error) {
	if d.CpidType != Cpid4B {
		return uid, cp, osi.ErrInvalidArgument
	}
	return readCPID(d.Controller)
}

// ReadSFDP reads n bytes of Serial Flash Discoverable Parameters data
// starting at addr, only valid on devices that advertise SFDP support.
func ReadSFDP(d *Descriptor, addr uint32, n int) ([]byte, error) {
	if !d.Flags.SFDPEn {
		return nil, osi.ErrInvalidArgument
	}
	return readSFDP(d.Controller, addr, n)
}
