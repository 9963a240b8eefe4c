// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "code.hybscloud.com/osi"

// wpEntry is one row of a write-protect offset table: bits is the
// block-protect field value that protects [offset, capacity) — every
// device in this package only protects a suffix of its address space.
type wpEntry struct {
	offset uint32
	bits   uint16
}

// buildWpTable generates a table from a fraction list expressed as
// numerator/divisor of the device capacity, in ascending protected-area
// order (bits 0, 1, 2, ... map to ever more of the chip protected, so
// offset is strictly decreasing as bits increases).
func buildWpTable(capacity uint32, fractions []uint32, divisor uint32) []wpEntry {
	table := make([]wpEntry, len(fractions))
	for i, num := range fractions {
		protected := uint64(capacity) * uint64(num) / uint64(divisor)
		table[i] = wpEntry{offset: capacity - uint32(protected), bits: uint16(i)}
	}
	return table
}

// gdWpFractions are the 64ths-of-capacity steps a GD-family
// block-protect field selects between (BP2:BP1:BP0, 8 values).
var gdWpFractions = []uint32{0, 1, 2, 4, 8, 16, 32, 64}

// xmcaWpFractions are the 128ths-of-capacity steps an XMCA
// block-protect field selects between, finer-grained than GD's.
var xmcaWpFractions = []uint32{0, 1, 2, 4, 8, 16, 32, 64, 128}

func wpTable(d *Descriptor) ([]wpEntry, error) {
	switch d.WpType {
	case WpGD:
		return buildWpTable(d.Capacity, gdWpFractions, 64), nil
	case WpXMCA:
		return buildWpTable(d.Capacity, xmcaWpFractions, 128), nil
	default:
		return nil, osi.ErrInvalidArgument
	}
}

// WpBits returns the block-protect field value that protects exactly
// [offset, d.Capacity). Offset must equal one of the table's entries;
// callers that have an arbitrary range should use [WpRange] instead.
func WpBits(d *Descriptor, offset uint32) (uint16, error) {
	table, err := wpTable(d)
	if err != nil {
		return 0, err
	}
	for _, e := range table {
		if e.offset == offset {
			return e.bits, nil
		}
	}
	return 0, osi.ErrInvalidArgument
}

// WpRange returns the smallest block-protect field value whose
// protected suffix [offset', capacity) entirely contains the
// requested [offset, offset+size) — i.e. the least-restrictive
// protection that still covers the request. The table is walked in
// strictly decreasing offset order (increasing bits); the first
// entry whose offset is at or before the request satisfies it.
func WpRange(d *Descriptor, offset, size uint32) (uint16, error) {
	if size == 0 || offset+size > d.Capacity {
		return 0, osi.ErrInvalidArgument
	}
	table, err := wpTable(d)
	if err != nil {
		return 0, err
	}
	for _, e := range table {
		if e.offset <= offset {
			return e.bits, nil
		}
	}
	return 0, osi.ErrInvalidArgument
}
