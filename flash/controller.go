// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flash implements a SPI-NOR flash HAL: vendor-dispatched
// status-register protocol, write-protection range mapping,
// security-register access, and identification-based property
// binding, sequenced against in-progress erase/program operations.
//
// Flash operations are synchronous per call. They are designed to be
// invoked from a single dedicated worker thread — typically
// [code.hybscloud.com/osi.FileSystemQueue] — which serialises all
// traffic onto the one shared [Controller]; the package does not lock
// the controller internally.
package flash

// Controller is the SPI flash controller port: the raw register
// pointers the original core manipulates directly, abstracted behind
// an interface so tests can substitute an in-memory fake that records
// the command sequence instead of driving real hardware.
type Controller interface {
	// WaitNotBusy blocks until the underlying SPI engine is idle.
	WaitNotBusy() error
	// ClearFIFO empties the controller's TX/RX FIFOs.
	ClearFIFO()
	// SetRXSize programs the number of bytes the next command expects
	// to receive.
	SetRXSize(n int)
	// SetFIFOWidth programs the bus width (in bytes per beat) used for
	// the next command's data phase.
	SetFIFOWidth(width int)
	// WriteFIFO pushes tx into the controller's TX FIFO. quad
	// indicates the segment should be clocked out 4 lines wide.
	WriteFIFO(tx []byte, quad bool)
	// ReadFIFO drains len(rx) bytes from the controller's RX FIFO.
	ReadFIFO(rx []byte)
	// WriteCmd writes the command register, triggering the
	// transaction, and returns the controller's result/readback
	// register.
	WriteCmd(cmdWord uint32) (result uint32, err error)
}
