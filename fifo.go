// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osi

// FIFO is a single-producer single-consumer byte ring with peek,
// search, and skip: `{data, size, rd, wr}`. Monotonic counters (wider
// than size) give O(1) fullness (`wr-rd`) and space
// (`size-(wr-rd)`); wraparound only ever appears in indexing
// (`offset = rd % size`).
//
// FIFO carries no synchronization of its own — the data model
// specifies the caller holds a critical section across every
// operation. This mirrors the cached-index idea in a lock-free SPSC
// ring buffer (track monotonic counters, index modulo capacity) but
// without any atomics: the caller-held critical section already
// excludes concurrent access, so there's nothing left for atomics to
// protect.
type FIFO struct {
	data []byte
	size uint64
	rd   uint64
	wr   uint64
}

// NewFIFO creates a FIFO with the given byte capacity. Panics if size
// <= 0.
func NewFIFO(size int) *FIFO {
	if size <= 0 {
		panic("osi: FIFO size must be > 0")
	}
	return &FIFO{data: make([]byte, size), size: uint64(size)}
}

// Len returns the number of bytes currently buffered.
func (f *FIFO) Len() int { return int(f.wr - f.rd) }

// Avail returns the number of bytes of free space.
func (f *FIFO) Avail() int { return int(f.size) - f.Len() }

// Put copies as many bytes of p as fit and returns the count written.
// Crosses the wrap in at most two segments.
func (f *FIFO) Put(p []byte) int {
	avail := f.size - (f.wr - f.rd)
	n := uint64(len(p))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}
	start := f.wr % f.size
	first := f.size - start
	if first > n {
		first = n
	}
	copy(f.data[start:start+first], p[:first])
	if n > first {
		copy(f.data[0:n-first], p[first:n])
	}
	f.wr += n
	return int(n)
}

// Get copies up to len(p) buffered bytes into p, advancing rd, and
// returns the count read.
func (f *FIFO) Get(p []byte) int { return f.read(p, true) }

// Peek is Get without advancing rd.
func (f *FIFO) Peek(p []byte) int { return f.read(p, false) }

func (f *FIFO) read(p []byte, advance bool) int {
	avail := f.wr - f.rd
	n := uint64(len(p))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}
	start := f.rd % f.size
	first := f.size - start
	if first > n {
		first = n
	}
	copy(p[:first], f.data[start:start+first])
	if n > first {
		copy(p[first:n], f.data[0:n-first])
	}
	if advance {
		f.rd += n
	}
	return int(n)
}

// Skip advances rd by min(n, available) and returns the count
// actually skipped.
func (f *FIFO) Skip(n int) int {
	avail := f.wr - f.rd
	m := uint64(n)
	if m > avail {
		m = avail
	}
	f.rd += m
	return int(m)
}

// Search scans from rd up to wr for the first occurrence of b. On a
// match, rd becomes the match position (keep=true) or one past it
// (keep=false), and Search returns true. On no match, rd becomes wr
// (the whole buffered range is consumed) and Search returns false.
func (f *FIFO) Search(b byte, keep bool) bool {
	for i := f.rd; i < f.wr; i++ {
		if f.data[i%f.size] == b {
			if keep {
				f.rd = i
			} else {
				f.rd = i + 1
			}
			return true
		}
	}
	f.rd = f.wr
	return false
}
