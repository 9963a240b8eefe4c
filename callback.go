// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

// Post constructs an EventCallback event and sends it to thread via
// [Send], blocking up to Send's implementation-defined bound; use
// [PostISR] from interrupt context. cb(ctx) runs the next time thread
// calls [Wait] or [TryWait]. Returns false if the send fails (no
// mailbox, or the mailbox stayed full past the bound).
func Post(from, thread *Thread, cb func(ctx uintptr), ctx uintptr) bool {
	return Send(from, thread, CallbackEvent(cb, ctx)) == nil
}

// PostISR is [Post] for interrupt context: it never blocks.
func PostISR(thread *Thread, cb func(ctx uintptr), ctx uintptr) bool {
	return TrySendISR(thread, CallbackEvent(cb, ctx)) == nil
}
