// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package unidirectional implements the histogram-shift embedding core
// (§4.4/§4.5): an iterated peak/zero-pair shift that embeds one payload
// bit per pixel at the current embedding peak, plus the per-iteration
// overhead recording the previous iteration's peaks and location map.
package unidirectional

import (
	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/bitops"
	"github.com/zenajjar/rdh/histogram"
	"github.com/zenajjar/rdh/overhead"
	"github.com/zenajjar/rdh/raster"
)

// Embedder runs the unidirectional core with an injectable peak-selection
// strategy, so the brightness-preserving variant (§4.4.2) is just a
// different histogram.PeakStrategy value, not a different type.
type Embedder struct {
	compression rdh.Compressor
	peaks       histogram.PeakStrategy
}

// NewEmbedder builds an Embedder. peaks defaults to
// histogram.Unidirectional when nil.
func NewEmbedder(compression rdh.Compressor, peaks histogram.PeakStrategy) *Embedder {
	if peaks == nil {
		peaks = histogram.Unidirectional
	}
	return &Embedder{compression: compression, peaks: peaks}
}

// Embed runs the standalone unidirectional core over cover.
func (e *Embedder) Embed(cover *rdh.Image, payload []byte, iterations int) (*rdh.Image, int, int, error) {
	header, body := raster.Split(cover)
	iterationsUsed, pureBits, err := e.embedInto(header, body, nil, payload, iterations)
	marked := raster.Assemble(header, body, cover.Width, cover.Height)
	return marked, iterationsUsed, pureBits, err
}

// EmbedSeeded is the composition hook the scaling package uses: seed is
// inserted between the header LSBs and the payload bits in the buffer,
// so a caller can prepend its own overhead (original min/max, compressed
// residual) ahead of the payload without this core re-deriving or
// duplicating the header LSB capture. header and body are mutated in
// place; body is expected to already hold the range-scaled pixels.
func (e *Embedder) EmbedSeeded(header, body []byte, seed []bool, payload []byte, iterations int) (iterationsUsed, pureBits int, err error) {
	return e.embedInto(header, body, seed, payload, iterations)
}

func (e *Embedder) embedInto(header, body []byte, seed []bool, payload []byte, iterations int) (int, int, error) {
	buf := bitops.New(bitops.LSBs(header), seed, bitops.BytesToBits(payload))

	prevPL, prevPH := 0, 0
	pl, ph, extra, err := e.fillBuffer(body, buf, prevPL, prevPH)
	if err != nil {
		return 0, 0, err
	}

	iteration := 0
	pureBits := 0
	for extra >= 0 && iteration < iterations {
		pureBits += extra
		shiftHistogram(body, pl, ph, buf)

		prevPL, prevPH = pl, ph
		pl, ph, extra, err = e.fillBuffer(body, buf, prevPL, prevPH)
		if err != nil {
			embedHeaderLSBs(header, prevPL, prevPH)
			return iteration, pureBits, err
		}
		iteration++
	}

	embedHeaderLSBs(header, prevPL, prevPH)

	if iteration == 0 {
		return 0, 0, rdh.ErrCapacityExhausted
	}
	return iteration, pureBits, nil
}

// fillBuffer chooses this iteration's peaks, builds and pushes its
// overhead frame (the previous iteration's peaks plus the location map
// for the new pair), and reports the capacity left over for real payload
// once that frame and the header reservation are accounted for (§3's
// capacity check, applied every iteration).
func (e *Embedder) fillBuffer(body []byte, buf *bitops.Buffer, prevPL, prevPH int) (pl, ph, extra int, err error) {
	pl, ph = e.peaks(body)
	locationMap := buildLocationMap(body, pl, ph)

	frame, err := overhead.Build(prevPL, prevPH, locationMap, e.compression)
	if err != nil {
		return 0, 0, 0, err
	}
	buf.InsertAtCursor(frame)

	capacity := countValue(body, ph)
	extra = capacity - len(frame) - rdh.HeaderPixels
	return pl, ph, extra, nil
}

func buildLocationMap(body []byte, pl, ph int) []bool {
	d := histogram.ShiftDirection(pl, ph)
	var out []bool
	for _, v := range body {
		iv := int(v)
		if iv == pl-d || iv == pl {
			out = append(out, iv == pl-d)
		}
	}
	return out
}

// shiftHistogram applies the interior shift and then embeds one bit per
// P_H pixel, drawing bits from buf in raster order. Once buf runs out of
// real content (payload shorter than this iteration's capacity), the
// remaining P_H pixels are padded with 0 bits and simply don't move.
func shiftHistogram(body []byte, pl, ph int, buf *bitops.Buffer) {
	d := histogram.ShiftDirection(pl, ph)
	shiftInBetween(body, pl, ph, d)

	capacity := countValue(body, ph)
	bits := buf.NextPadded(capacity)

	idx := 0
	for i, v := range body {
		if int(v) != ph {
			continue
		}
		if bits[idx] {
			body[i] = byte(int(v) + d)
		}
		idx++
	}
}

func shiftInBetween(body []byte, pl, ph, d int) {
	lo, hi := pl, ph
	if lo > hi {
		lo, hi = hi, lo
	}
	for i, v := range body {
		iv := int(v)
		if iv > lo && iv < hi {
			body[i] = byte(iv + d)
		}
	}
}

func countValue(body []byte, value int) int {
	n := 0
	for _, v := range body {
		if int(v) == value {
			n++
		}
	}
	return n
}

func embedHeaderLSBs(header []byte, pl, ph int) {
	bits := append(bitops.IntToBits(uint64(pl), rdh.PeakBits), bitops.IntToBits(uint64(ph), rdh.PeakBits)...)
	for i := 0; i < len(bits); i++ {
		header[i] = bitops.SetLSB(header[i], bits[i])
	}
	// header[len(bits)] (the 17th pixel) is the reserved, untouched slot.
}
