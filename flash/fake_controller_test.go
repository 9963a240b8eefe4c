// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import "fmt"

// fakeController is an in-memory stand-in for real SPI flash hardware:
// it tracks a byte-wide SR1/SR2 pair and a manufacturer id, and
// interprets just enough of the opcode set to drive [Init] and the
// status-register paths through their real control flow.
type fakeController struct {
	log    []string
	txBuf  []byte
	rxSize int

	sr1, sr2 byte
	mid      [3]byte

	secRegs   map[int][]byte
	pendingRX []byte
}

func (f *fakeController) secRegBuf(num int) []byte {
	if f.secRegs == nil {
		f.secRegs = make(map[int][]byte)
	}
	buf, ok := f.secRegs[num]
	if !ok {
		buf = make([]byte, 4096)
		for i := range buf {
			buf[i] = 0xFF
		}
		f.secRegs[num] = buf
	}
	return buf
}

func decodeAddr(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func (f *fakeController) WaitNotBusy() error { return nil }
func (f *fakeController) ClearFIFO()         { f.txBuf = nil }
func (f *fakeController) SetRXSize(n int)    { f.rxSize = n }
func (f *fakeController) SetFIFOWidth(int)   {}

func (f *fakeController) WriteFIFO(tx []byte, quad bool) {
	f.txBuf = append(f.txBuf, tx...)
}

func (f *fakeController) ReadFIFO(rx []byte) {
	copy(rx, f.pendingRX)
	f.pendingRX = nil
}

func (f *fakeController) WriteCmd(cmdWord uint32) (uint32, error) {
	f.log = append(f.log, fmt.Sprintf("%#02x", cmdWord))
	switch cmdWord {
	case opWREN:
		f.sr1 |= 0x02
	case opWRDI:
		f.sr1 &^= 0x02
	case opRDSR1:
		return packReadback([]byte{f.sr1}), nil
	case opRDSR2:
		return packReadback([]byte{f.sr2}), nil
	case opWRSR:
		// WIP is hardware-controlled, not part of the writable payload;
		// preserve it rather than taking it from the caller's byte.
		if len(f.txBuf) >= 1 {
			f.sr1 = (f.txBuf[0] &^ wipBit) | (f.sr1 & wipBit)
		}
		if len(f.txBuf) >= 2 {
			f.sr2 = f.txBuf[1]
		}
		f.sr1 &^= 0x02
	case opWRSR2:
		if len(f.txBuf) >= 1 {
			f.sr2 = f.txBuf[0]
		}
		f.sr1 &^= 0x02
	case opRDID:
		return packReadback(f.mid[:]), nil
	case opResetEnable, opReset, opVolatileSREnable, opOTPEnter:
		// no-op: state transition already modeled by the surrounding ops
	case opSRReadGD:
		addr := decodeAddr(f.txBuf[:3])
		num, offset := int(addr>>12), addr&0xFFF
		buf := f.secRegBuf(num)
		return packReadback(buf[offset : offset+uint32(f.rxSize)]), nil
	case opSRProgramGD:
		addr := decodeAddr(f.txBuf[:3])
		num, offset := int(addr>>12), addr&0xFFF
		copy(f.secRegBuf(num)[offset:], f.txBuf[3:])
		f.sr1 &^= 0x02
	case opSREraseGD:
		addr := decodeAddr(f.txBuf[:3])
		buf := f.secRegBuf(int(addr >> 12))
		for i := range buf {
			buf[i] = 0xFF
		}
		f.sr1 &^= 0x02
	case opSRReadXMCB:
		addr := decodeAddr(f.txBuf[:3])
		num, offset := int(addr>>12), addr&0xFFF
		buf := f.secRegBuf(num)
		f.pendingRX = append([]byte(nil), buf[offset:offset+uint32(f.rxSize)]...)
	case opSRProgramXMCB:
		addr := decodeAddr(f.txBuf[:3])
		num, offset := int(addr>>12), addr&0xFFF
		copy(f.secRegBuf(num)[offset:], f.txBuf[3:])
		f.sr1 &^= 0x02
	case opSREraseXMCB:
		addr := decodeAddr(f.txBuf[:3])
		buf := f.secRegBuf(int(addr >> 12))
		for i := range buf {
			buf[i] = 0xFF
		}
		f.sr1 &^= 0x02
	}
	return 0, nil
}

// packReadback encodes b (LSB-first) into the controller readback
// word the way [CmdDualTX] expects to unpack it for RXReadback
// commands: result>>((4-len(b))*8) must equal the little-endian word
// formed from b.
func packReadback(b []byte) uint32 {
	rxLen := len(b)
	shift := uint(4-rxLen) * 8
	var word uint32
	for i, v := range b {
		word |= uint32(v) << (8 * uint(i))
	}
	return word << shift
}
