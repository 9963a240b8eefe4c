// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking operation cannot proceed
// immediately. No function in this package returns it: its
// non-blocking calls report "not now" as false ([Semaphore.TryAcquire]),
// (0, nil) ([Pipe.Read], [Pipe.Write]) or a zero count ([FIFO.Get],
// [FIFO.Put]).
//
// ErrWouldBlock is a control flow signal, not a failure. Callers that
// want to block should use the blocking variant of the same call
// instead of retrying on this error; callers that deliberately poll
// should treat it as "try again later".
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidArgument indicates a caller supplied an out-of-range or
// otherwise malformed argument (a nil thread or one with no mailbox, a
// negative event count, an out-of-range flash security register or
// write-protect range, a flash feature the device does not support).
// Invalid capacities are not reported this way: constructors panic.
var ErrInvalidArgument = errors.New("osi: invalid argument")

// ErrResourceExhausted indicates a fixed-size resource has no room
// left: [TrySendISR] returns it when the target mailbox is full.
var ErrResourceExhausted = errors.New("osi: resource exhausted")

// ErrStopped indicates the operation's owning object has been stopped
// and will not accept further work: a [Pipe] after Stop (or a write at
// EOF), or a [Thread] whose [Wait]/[TryWait] dispatched EventQuit.
var ErrStopped = errors.New("osi: stopped")

// ErrEndOfStream indicates a Pipe reader reached EOF: no data remains
// and no more will arrive.
var ErrEndOfStream = errors.New("osi: end of stream")

// ErrTimeout indicates a bounded wait expired before the condition it
// was waiting for became true.
var ErrTimeout = errors.New("osi: timeout")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than
// a failure (ErrWouldBlock, ErrEndOfStream, ErrTimeout).
func IsSemantic(err error) bool {
	if iox.IsSemantic(err) {
		return true
	}
	return errors.Is(err, ErrEndOfStream) || errors.Is(err, ErrTimeout)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure] and additionally recognizes nil.
func IsNonFailure(err error) bool {
	return err == nil || iox.IsNonFailure(err)
}
