// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flash

import (
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/osi"
)

// wipBit is the Write-In-Progress bit, bit 0 of SR1.
const wipBit = 1 << 0

// ReadSR reads the 16-bit status register: SR2<<8 | SR1 if the device
// has SR2, else just SR1.
func ReadSR(d *Descriptor) (uint16, error) {
	sr1, err := rdsr1(d.Controller)
	if err != nil {
		return 0, err
	}
	if !d.Flags.HasSR2 {
		return uint16(sr1), nil
	}
	sr2, err := rdsr2(d.Controller)
	if err != nil {
		return 0, err
	}
	return uint16(sr2)<<8 | uint16(sr1), nil
}

// WriteSR drives WREN then the non-volatile write path appropriate to
// the device:
//
//   - No SR2: WRSR 01h (low byte).
//   - write_sr12: WRSR 01h with a 16-bit payload.
//   - Else: WRSR 01h (low), wait WIP, WREN, WRSR 31h (high), wait WIP.
//
// Unlike [WriteVolatileSR], WriteSR does not read back to confirm —
// callers poll completion separately via [WaitWipFinish]. This
// asymmetry is intentional; see the design ledger.
func WriteSR(d *Descriptor, sr uint16) error {
	if err := wren(d.Controller); err != nil {
		return err
	}
	if !d.Flags.HasSR2 {
		return wrsr(d.Controller, []byte{byte(sr)})
	}
	if d.Flags.WriteSR12 {
		return wrsr(d.Controller, []byte{byte(sr), byte(sr >> 8)})
	}
	if err := wrsr(d.Controller, []byte{byte(sr)}); err != nil {
		return err
	}
	if err := WaitWipFinish(d, osi.Forever); err != nil {
		return err
	}
	if err := wren(d.Controller); err != nil {
		return err
	}
	if err := wrsr2(d.Controller, byte(sr>>8)); err != nil {
		return err
	}
	return WaitWipFinish(d, osi.Forever)
}

// WriteVolatileSR wraps each write with the 50h volatile-enable
// prelude and loops until a readback confirms the value landed —
// needed because volatile writes can silently fail on some devices.
// No WIP wait inside the loop: volatile writes have no WIP cycle.
func WriteVolatileSR(d *Descriptor, sr uint16) error {
	backoff := iox.Backoff{}
	for {
		if err := volatileSREnable(d.Controller); err != nil {
			return err
		}
		switch {
		case !d.Flags.HasSR2:
			if err := wrsr(d.Controller, []byte{byte(sr)}); err != nil {
				return err
			}
		case d.Flags.WriteSR12:
			if err := wrsr(d.Controller, []byte{byte(sr), byte(sr >> 8)}); err != nil {
				return err
			}
		default:
			if err := wrsr(d.Controller, []byte{byte(sr)}); err != nil {
				return err
			}
			if err := volatileSREnable(d.Controller); err != nil {
				return err
			}
			if err := wrsr2(d.Controller, byte(sr>>8)); err != nil {
				return err
			}
		}

		got, err := ReadSR(d)
		if err != nil {
			return err
		}
		if got == sr {
			return nil
		}
		backoff.Wait()
	}
}

// IsWipFinished reads SR1 twice with a 1µs gap and reports true only
// if both reads have WIP clear — debouncing a known glitch where a
// single read can observe a stale busy bit.
func IsWipFinished(d *Descriptor) (bool, error) {
	sr1a, err := rdsr1(d.Controller)
	if err != nil {
		return false, err
	}
	time.Sleep(time.Microsecond)
	sr1b, err := rdsr1(d.Controller)
	if err != nil {
		return false, err
	}
	return sr1a&wipBit == 0 && sr1b&wipBit == 0, nil
}

// WaitWipFinish spins on [IsWipFinished], backing off between polls,
// until it reports true or timeout elapses (0/[osi.Forever]
// convention).
func WaitWipFinish(d *Descriptor, timeout time.Duration) error {
	start := time.Now()
	unbounded := timeout == osi.Forever
	backoff := iox.Backoff{}
	for {
		done, err := IsWipFinished(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if !unbounded && time.Since(start) >= timeout {
			return osi.ErrTimeout
		}
		backoff.Wait()
	}
}
