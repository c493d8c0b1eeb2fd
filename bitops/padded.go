// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package bitops

// NextPadded consumes up to k bits starting at the cursor, padding the
// result with false once the buffer is exhausted, and advances the
// cursor by however many real bits it actually found (never past the
// end). This is the "pad with zeros" option the spec allows for the
// per-iteration read in the embedding loop that legitimately runs past
// the end of the real payload: once the supplied payload is shorter
// than an iteration's embedding capacity, the remaining pixels at the
// embedding peak simply carry a 0 bit, and later iterations (if any)
// see an exhausted buffer and keep padding.
func (b *Buffer) NextPadded(k int) []bool {
	out := make([]bool, k)
	remaining := len(b.bits) - b.pos
	n := remaining
	if n > k {
		n = k
	}
	if n > 0 {
		copy(out, b.bits[b.pos:b.pos+n])
		b.pos += n
	}
	return out
}
