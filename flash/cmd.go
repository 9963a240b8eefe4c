// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

// JEDEC opcodes, bit-exact per the external interface table.
const (
	opWREN            = 0x06
	opWRDI            = 0x04
	opRDSR1           = 0x05
	opRDSR2           = 0x35
	opWRSR            = 0x01
	opWRSR2           = 0x31
	opPP              = 0x02
	opSE4K            = 0x20
	opBE32K           = 0x52
	opBE64K           = 0xD8
	opCE              = 0xC7
	opPD              = 0xB9
	opRDI             = 0xAB
	opResetEnable     = 0x66
	opReset           = 0x99
	opRDID            = 0x9F
	opSuspend         = 0x75
	opResume          = 0x7A
	opSFDP            = 0x5A
	opVolatileSREnable = 0x50
	opUID             = 0x4B
	opOTPEnter        = 0x3A

	opSRReadGD      = 0x48
	opSRProgramGD   = 0x42
	opSREraseGD     = 0x44
	opSRReadXMCB    = 0x68
	opSRProgramXMCB = 0x62
	opSREraseXMCB   = 0x64
)

// CmdFlags selects the data-phase shape of a [Cmd] invocation.
type CmdFlags uint8

const (
	// RXReadback means the response is extracted from the controller's
	// readback register instead of the RX FIFO.
	RXReadback CmdFlags = 1 << iota
	// TXQuad clocks the (first) TX segment out 4 lines wide.
	TXQuad
	// TXQuad2 clocks the second TX segment (dual-TX variant) out 4
	// lines wide, independent of TXQuad.
	TXQuad2
)

func addrBytes(addr uint32) [3]byte {
	return [3]byte{byte(addr >> 16), byte(addr >> 8), byte(addr)}
}

// Cmd is the generic command primitive every named opcode wrapper is
// a thin layer over: `cmd(hwp, cmd_word, tx, tx_len, rx, rx_len,
// flags)`. Sequence:
//
//  1. Wait-not-busy on controller.
//  2. Clear FIFO, set RX size.
//  3. Configure FIFO width: RX readback uses rx_len for FIFO width,
//     else 1.
//  4. Write the TX FIFO segment, stamping the quad mask.
//  5. Write the command register (triggers the hardware transaction).
//  6. If NOT readback mode, read RX from FIFO.
//  7. Wait-not-busy.
//  8. If readback mode, extract RX bytes LSB-first from the readback
//     word shifted by (4-rx_len)*8.
//  9. Restore RX size to 0.
func Cmd(ctl Controller, cmdWord uint32, tx []byte, rxLen int, flags CmdFlags) ([]byte, error) {
	return CmdDualTX(ctl, cmdWord, tx, flags&TXQuad != 0, nil, false, rxLen, flags)
}

// CmdDualTX is [Cmd] for commands needing two TX segments with
// independent line widths (tx1Quad/tx2Quad).
func CmdDualTX(ctl Controller, cmdWord uint32, tx1 []byte, tx1Quad bool, tx2 []byte, tx2Quad bool, rxLen int, flags CmdFlags) ([]byte, error) {
	if err := ctl.WaitNotBusy(); err != nil {
		return nil, err
	}
	ctl.ClearFIFO()
	ctl.SetRXSize(rxLen)

	width := 1
	if flags&RXReadback != 0 {
		width = rxLen
	}
	ctl.SetFIFOWidth(width)

	if len(tx1) > 0 {
		ctl.WriteFIFO(tx1, tx1Quad)
	}
	if len(tx2) > 0 {
		ctl.WriteFIFO(tx2, tx2Quad)
	}

	result, err := ctl.WriteCmd(cmdWord)
	if err != nil {
		return nil, err
	}

	var rx []byte
	if flags&RXReadback == 0 {
		if rxLen > 0 {
			rx = make([]byte, rxLen)
			ctl.ReadFIFO(rx)
		}
	}

	if err := ctl.WaitNotBusy(); err != nil {
		return nil, err
	}

	if flags&RXReadback != 0 && rxLen > 0 {
		shift := uint((4 - rxLen) * 8)
		word := result >> shift
		rx = make([]byte, rxLen)
		for i := 0; i < rxLen; i++ {
			rx[i] = byte(word >> (8 * uint(i)))
		}
	}

	ctl.SetRXSize(0)
	return rx, nil
}

func wren(ctl Controller) error {
	_, err := Cmd(ctl, opWREN, nil, 0, 0)
	return err
}

func wrdi(ctl Controller) error {
	_, err := Cmd(ctl, opWRDI, nil, 0, 0)
	return err
}

func rdsr1(ctl Controller) (byte, error) {
	rx, err := Cmd(ctl, opRDSR1, nil, 1, RXReadback)
	if err != nil {
		return 0, err
	}
	return rx[0], nil
}

func rdsr2(ctl Controller) (byte, error) {
	rx, err := Cmd(ctl, opRDSR2, nil, 1, RXReadback)
	if err != nil {
		return 0, err
	}
	return rx[0], nil
}

// wrsr writes SR1 (1-byte payload) or SR1|SR2 (2-byte payload,
// write_sr12 devices) via the 01h opcode.
func wrsr(ctl Controller, data []byte) error {
	_, err := Cmd(ctl, opWRSR, data, 0, 0)
	return err
}

func wrsr2(ctl Controller, sr2 byte) error {
	_, err := Cmd(ctl, opWRSR2, []byte{sr2}, 0, 0)
	return err
}

func volatileSREnable(ctl Controller) error {
	_, err := Cmd(ctl, opVolatileSREnable, nil, 0, 0)
	return err
}

func pageProgram(ctl Controller, addr uint32, data []byte) error {
	a := addrBytes(addr)
	tx := append(a[:], data...)
	_, err := Cmd(ctl, opPP, tx, 0, 0)
	return err
}

func erase4K(ctl Controller, addr uint32) error {
	a := addrBytes(addr)
	_, err := Cmd(ctl, opSE4K, a[:], 0, 0)
	return err
}

func erase32K(ctl Controller, addr uint32) error {
	a := addrBytes(addr)
	_, err := Cmd(ctl, opBE32K, a[:], 0, 0)
	return err
}

func erase64K(ctl Controller, addr uint32) error {
	a := addrBytes(addr)
	_, err := Cmd(ctl, opBE64K, a[:], 0, 0)
	return err
}

func chipErase(ctl Controller) error {
	_, err := Cmd(ctl, opCE, nil, 0, 0)
	return err
}

func powerDown(ctl Controller) error {
	_, err := Cmd(ctl, opPD, nil, 0, 0)
	return err
}

func releasePowerDown(ctl Controller) error {
	_, err := Cmd(ctl, opRDI, nil, 0, 0)
	return err
}

func resetEnable(ctl Controller) error {
	_, err := Cmd(ctl, opResetEnable, nil, 0, 0)
	return err
}

func resetDevice(ctl Controller) error {
	_, err := Cmd(ctl, opReset, nil, 0, 0)
	return err
}

// otpEnter switches an XMCA device into its OTP address space, where
// RDSR1/WRSR address a one-time-programmable configuration byte
// (holding OTP_TB) instead of the normal SR1. [wrdi] exits OTP mode.
func otpEnter(ctl Controller) error {
	_, err := Cmd(ctl, opOTPEnter, nil, 0, 0)
	return err
}

func rdid(ctl Controller) ([3]byte, error) {
	rx, err := Cmd(ctl, opRDID, nil, 3, RXReadback)
	if err != nil {
		return [3]byte{}, err
	}
	return [3]byte{rx[0], rx[1], rx[2]}, nil
}

func suspend(ctl Controller) error {
	_, err := Cmd(ctl, opSuspend, nil, 0, 0)
	return err
}

func resume(ctl Controller) error {
	_, err := Cmd(ctl, opResume, nil, 0, 0)
	return err
}

func readSFDP(ctl Controller, addr uint32, n int) ([]byte, error) {
	a := addrBytes(addr)
	tx := append(a[:], 0x00) // dummy byte
	return Cmd(ctl, opSFDP, tx, n, 0)
}

func readUID(ctl Controller, n int) ([]byte, error) {
	tx := []byte{0, 0, 0, 0} // 4 dummy bytes
	return Cmd(ctl, opUID, tx, n, 0)
}

func readCPID(ctl Controller) (uid [16]byte, cp [2]byte, err error) {
	tx := []byte{0, 0, 0, 0}
	rx, err := Cmd(ctl, opUID, tx, 18, 0)
	if err != nil {
		return uid, cp, err
	}
	copy(uid[:], rx[:16])
	cp[0], cp[1] = rx[16], rx[17]
	return uid, cp, nil
}

func securityAddr(num int, offset uint32) uint32 {
	return uint32(num)<<12 | offset
}

func srReadGD(ctl Controller, num int, offset uint32, n int) ([]byte, error) {
	a := addrBytes(securityAddr(num, offset))
	tx := append(a[:], 0x00)
	return Cmd(ctl, opSRReadGD, tx, n, RXReadback)
}

func srProgramGD(ctl Controller, num int, offset uint32, data []byte) error {
	a := addrBytes(securityAddr(num, offset))
	tx := append(a[:], data...)
	_, err := Cmd(ctl, opSRProgramGD, tx, 0, 0)
	return err
}

func srEraseGD(ctl Controller, num int) error {
	a := addrBytes(securityAddr(num, 0))
	_, err := Cmd(ctl, opSREraseGD, a[:], 0, 0)
	return err
}

func srReadXMCB(ctl Controller, num int, offset uint32, n int) ([]byte, error) {
	a := addrBytes(securityAddr(num, offset))
	tx := append(a[:], 0x00)
	return Cmd(ctl, opSRReadXMCB, tx, n, 0)
}

func srProgramXMCB(ctl Controller, num int, offset uint32, data []byte) error {
	a := addrBytes(securityAddr(num, offset))
	tx := append(a[:], data...)
	_, err := Cmd(ctl, opSRProgramXMCB, tx, 0, 0)
	return err
}

func srEraseXMCB(ctl Controller, num int) error {
	a := addrBytes(securityAddr(num, 0))
	_, err := Cmd(ctl, opSREraseXMCB, a[:], 0, 0)
	return err
}
