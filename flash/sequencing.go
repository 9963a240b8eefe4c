// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"time"

	"code.hybscloud.com/osi"
)

// delayAfterReleaseDeepPowerDown is the settle time datasheets require
// between releasing deep power-down and issuing the next command.
const delayAfterReleaseDeepPowerDown = 30 * time.Microsecond

const (
	gdBPShift   = 2
	gdBPMask    = uint16(0x7) << gdBPShift
	xmcaBPShift = 2
	xmcaBPMask  = uint16(0xF) << xmcaBPShift
)

func setWpBits(d *Descriptor, sr, bits uint16) uint16 {
	switch d.WpType {
	case WpGD:
		return (sr &^ gdBPMask) | ((bits << gdBPShift) & gdBPMask)
	case WpXMCA:
		return (sr &^ xmcaBPMask) | ((bits << xmcaBPShift) & xmcaBPMask)
	default:
		return sr
	}
}

func writeSRPreferVolatile(d *Descriptor, sr uint16) error {
	if d.Flags.VolatileSREn {
		return WriteVolatileSR(d, sr)
	}
	return WriteSR(d, sr)
}

// PrepareEraseProgram relaxes write protection just enough to cover
// [offset, offset+size), via a volatile SR write when the device
// supports it (so the relaxation does not outlive a power cycle),
// else a non-volatile write. A no-op on devices with no WP table.
func PrepareEraseProgram(d *Descriptor, offset, size uint32) error {
	if d.WpType == WpNone {
		return nil
	}
	bits, err := WpRange(d, offset, size)
	if err != nil {
		return err
	}
	sr, err := ReadSR(d)
	if err != nil {
		return err
	}
	return writeSRPreferVolatile(d, setWpBits(d, sr, bits))
}

// FinishEraseProgram restores maximal write protection (the whole
// device) after an erase/program sequence completes. A no-op on
// devices with no WP table.
func FinishEraseProgram(d *Descriptor) error {
	if d.WpType == WpNone {
		return nil
	}
	bits, err := WpRange(d, 0, d.Capacity)
	if err != nil {
		return err
	}
	sr, err := ReadSR(d)
	if err != nil {
		return err
	}
	return writeSRPreferVolatile(d, setWpBits(d, sr, bits))
}

// PageProgram writes up to a page's worth of data at addr. Callers
// are responsible for the [PrepareEraseProgram]/[FinishEraseProgram]
// envelope and for waiting on [WaitWipFinish] — batched sequences of
// many programs share one prepare/finish pair and one final wait.
func PageProgram(d *Descriptor, addr uint32, data []byte) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	return pageProgram(d.Controller, addr, data)
}

// Erase4K erases the 4 KiB sector containing addr.
func Erase4K(d *Descriptor, addr uint32) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	return erase4K(d.Controller, addr)
}

// Erase32K erases the 32 KiB block containing addr.
func Erase32K(d *Descriptor, addr uint32) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	return erase32K(d.Controller, addr)
}

// Erase64K erases the 64 KiB block containing addr.
func Erase64K(d *Descriptor, addr uint32) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	return erase64K(d.Controller, addr)
}

// ChipErase erases the entire device.
func ChipErase(d *Descriptor) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	return chipErase(d.Controller)
}

// Suspend pauses an in-progress erase or program so the controller can
// service reads, only valid on devices that advertise suspend support.
func Suspend(d *Descriptor) error {
	if !d.Flags.SuspendEn {
		return osi.ErrInvalidArgument
	}
	return suspend(d.Controller)
}

// Resume continues an erase or program previously paused by [Suspend].
func Resume(d *Descriptor) error {
	if !d.Flags.SuspendEn {
		return osi.ErrInvalidArgument
	}
	return resume(d.Controller)
}

// PowerDown puts the device into deep power-down. No other command may
// be issued until [ReleasePowerDown].
func PowerDown(d *Descriptor) error {
	return powerDown(d.Controller)
}

// ReleasePowerDown wakes the device from deep power-down and waits out
// the datasheet-mandated settle delay before returning.
func ReleasePowerDown(d *Descriptor) error {
	if err := releasePowerDown(d.Controller); err != nil {
		return err
	}
	time.Sleep(delayAfterReleaseDeepPowerDown)
	return nil
}
