// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "fmt"

// propEntry is one row of the manufacturer/memory-type property
// table, keyed by the 3-byte RDID response.
type propEntry struct {
	mid [3]byte

	family   Family
	wpType   WpType
	uidType  UidType
	cpidType CpidType

	sregBlockSize uint32
	sregMinNum    int
	sregMaxNum    int

	flags Flags
}

// propTable is deliberately small: enough rows to exercise every
// dispatch path this package implements, not a production parts list.
var propTable = []propEntry{
	{
		mid:           [3]byte{0xC8, 0x40, 0x17}, // GD, 8 MiB (1<<0x17 bytes)
		family:        FamilyGD,
		wpType:        WpGD,
		uidType:       Uid4B16,
		cpidType:      CpidNone,
		sregBlockSize: 256,
		sregMinNum:    1,
		sregMaxNum:    3,
		flags: Flags{
			VolatileSREn: true,
			SuspendEn:    true,
			SFDPEn:       true,
			HasSR2:       true,
			HasSUS1:      true,
			HasSUS2:      true,
		},
	},
	{
		mid:           [3]byte{0x20, 0x40, 0x18}, // XMCB, 16 MiB
		family:        FamilyXMCB,
		wpType:        WpXMCA,
		uidType:       UidSFDP,
		cpidType:      Cpid4B,
		sregBlockSize: 512,
		sregMinNum:    1,
		sregMaxNum:    4,
		flags: Flags{
			VolatileSREn: true,
			SFDPEn:       true,
			HasSR2:       true,
		},
	},
	{
		mid:           [3]byte{0x20, 0x70, 0x16}, // XMCA, 4 MiB
		family:        FamilyXMCA,
		wpType:        WpXMCA,
		uidType:       Uid4B8,
		cpidType:      CpidNone,
		sregBlockSize: 256,
		sregMinNum:    1,
		sregMaxNum:    3,
		flags: Flags{
			VolatileSREn: true,
			WriteSR12:    true,
			HasSR2:       true,
		},
	},
}

// findProp resolves a queried RDID triplet against [propTable] by
// exact match first, then falling back to a 16-bit (manufacturer +
// memory type) mask, then an 8-bit (manufacturer only) mask. Panics
// if no row matches at any level — an unrecognised manufacturer byte
// means the device is simply not supported.
func findProp(mid [3]byte) *propEntry {
	for i := range propTable {
		if propTable[i].mid == mid {
			return &propTable[i]
		}
	}
	for i := range propTable {
		if propTable[i].mid[0] == mid[0] && propTable[i].mid[1] == mid[1] {
			return &propTable[i]
		}
	}
	for i := range propTable {
		if propTable[i].mid[0] == mid[0] {
			return &propTable[i]
		}
	}
	panic(fmt.Sprintf("flash: unrecognised manufacturer/memory-type id %02X%02X%02X", mid[0], mid[1], mid[2]))
}
