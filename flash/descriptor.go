// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"fmt"

	"code.hybscloud.com/osi"
)

// Family dispatches the vendor-specific status-check routine and
// security-register opcode set. GD, Winbond, XMCC, XTX, and Puya
// share one status-check routine and the 48/42/44h security opcodes;
// XMCA and XMCB each have their own.
type Family int

const (
	FamilyGD Family = iota // covers GD, Winbond, XMCC, XTX, Puya
	FamilyXMCA
	FamilyXMCB
)

func (f Family) String() string {
	switch f {
	case FamilyGD:
		return "gd"
	case FamilyXMCA:
		return "xmca"
	case FamilyXMCB:
		return "xmcb"
	default:
		return "unknown"
	}
}

// WpType selects which write-protect offset table a [Descriptor] uses.
type WpType int

const (
	WpNone WpType = iota
	WpGD          // tables for 1/2/4/8/16 MiB capacities
	WpXMCA        // table normalised to 1/128 units keyed off capacity bits
)

func (t WpType) String() string {
	switch t {
	case WpNone:
		return "none"
	case WpGD:
		return "gd"
	case WpXMCA:
		return "xmca"
	default:
		return "unknown"
	}
}

// UidType selects the opcode sequence used to read a unique ID.
type UidType int

const (
	UidNone UidType = iota
	Uid4B8          // 4Bh, 8-byte UID
	Uid4B16         // 4Bh, 16-byte UID
	UidSFDP         // fall back to reading SFDP at an SFDP address
)

func (t UidType) String() string {
	switch t {
	case UidNone:
		return "none"
	case Uid4B8:
		return "4b-8"
	case Uid4B16:
		return "4b-16"
	case UidSFDP:
		return "sfdp"
	default:
		return "unknown"
	}
}

// CpidType selects whether a device exposes a customer product ID
// alongside its UID (4Bh, CP at bytes 16-17, little-endian).
type CpidType int

const (
	CpidNone CpidType = iota
	Cpid4B
)

func (t CpidType) String() string {
	switch t {
	case CpidNone:
		return "none"
	case Cpid4B:
		return "4b"
	default:
		return "unknown"
	}
}

// Flags holds the per-device boolean capability bits the original
// packs into a bitfield struct.
type Flags struct {
	VolatileSREn bool // device supports the 50h volatile-SR-enable prelude
	SuspendEn    bool // device supports program/erase suspend (75h/7Ah)
	SFDPEn       bool // device supports SFDP (5Ah)
	WriteSR12    bool // WRSR 01h takes a 16-bit SR1|SR2 payload in one shot
	HasSR2       bool // device has a second status register (SR2)
	HasSUS1      bool // SR2 has a SUS1 (suspend) bit
	HasSUS2      bool // SR2 has a SUS2 bit
}

// Descriptor is a bound SPI-NOR flash device:
// `{hwp, mid, capacity, sreg_block_size, type, wp_type, uid_type,
// cpid_type, sreg_min_num, sreg_max_num, flags}`. Populated from the
// property table keyed by manufacturer/memory-type ID via [Init].
type Descriptor struct {
	Controller Controller

	MID           [3]byte // manufacturer, memory type, capacity-code bytes from RDID
	Capacity      uint32  // bytes
	SRegBlockSize uint32  // bytes per security register block

	Family  Family
	WpType  WpType
	UidType UidType
	CpidType CpidType

	SRegMinNum int
	SRegMaxNum int

	Flags Flags
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("flash.Descriptor{mid=%02X%02X%02X family=%s capacity=%d}",
		d.MID[0], d.MID[1], d.MID[2], d.Family, d.Capacity)
}

// SecurityRegisterRange returns the [start, end) byte-offset range
// (within the num-th security register block) spanning the whole
// block, used by callers to validate a read/program/erase request
// before issuing it. Returns [osi.ErrInvalidArgument] if num is
// outside [SRegMinNum, SRegMaxNum].
func (d *Descriptor) SecurityRegisterRange(num int) (start, end uint32, err error) {
	if num < d.SRegMinNum || num > d.SRegMaxNum {
		return 0, 0, osi.ErrInvalidArgument
	}
	return 0, d.SRegBlockSize, nil
}
