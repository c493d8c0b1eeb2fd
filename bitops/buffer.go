// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package bitops

import "errors"

// ErrUnderrun is returned by Next when fewer than k bits remain unread.
// The embedding core never lets this escape to a caller uninterpreted: it
// always gets wrapped into a decode-failure error (see the unidirectional
// and scaling packages) before crossing a package boundary.
var ErrUnderrun = errors.New("bitops: buffer underrun")

// Buffer is a FIFO of bits: producers Push onto the end, consumers Next
// off a read cursor. The same buffer plays both roles during extraction
// (§4.5/§4.6 of the spec): bits recovered from the image are Added, then
// immediately consumed to decode the next iteration's overhead.
type Buffer struct {
	bits []bool
	pos  int
}

// New builds a Buffer from zero or more bit sequences, concatenated in
// order.
func New(sources ...[]bool) *Buffer {
	b := &Buffer{}
	for _, s := range sources {
		b.bits = append(b.bits, s...)
	}
	return b
}

// Push appends bits to the end of the buffer.
func (b *Buffer) Push(bits []bool) {
	b.bits = append(b.bits, bits...)
}

// Add is Push under the name used by the overhead-recovery path; it reads
// the same as Push but marks the call site as "this is side-channel
// bookkeeping, not payload".
func (b *Buffer) Add(bits []bool) {
	b.Push(bits)
}

// InsertAtCursor splices bits in at the read cursor, ahead of anything
// not yet consumed. The embedding core uses this to interleave each
// iteration's overhead frame immediately in front of that iteration's
// share of the payload, without having to pre-plan where in the overall
// stream each iteration's frame belongs.
func (b *Buffer) InsertAtCursor(bits []bool) {
	tail := append([]bool(nil), b.bits[b.pos:]...)
	b.bits = append(b.bits[:b.pos:b.pos], bits...)
	b.bits = append(b.bits, tail...)
}

// Next consumes the next k bits and advances the read cursor. k == -1
// drains everything from the cursor to the end. It returns ErrUnderrun if
// k >= 0 and fewer than k bits remain — reads never silently cross the
// written end.
func (b *Buffer) Next(k int) ([]bool, error) {
	if k < 0 {
		out := b.bits[b.pos:]
		b.pos = len(b.bits)
		return out, nil
	}
	if b.pos+k > len(b.bits) {
		return nil, ErrUnderrun
	}
	out := b.bits[b.pos : b.pos+k]
	b.pos += k
	return out, nil
}

// Remaining reports how many unread bits are left.
func (b *Buffer) Remaining() int {
	return len(b.bits) - b.pos
}
