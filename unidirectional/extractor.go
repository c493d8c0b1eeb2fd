// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package unidirectional

import (
	"fmt"

	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/bitops"
	"github.com/zenajjar/rdh/histogram"
	"github.com/zenajjar/rdh/overhead"
	"github.com/zenajjar/rdh/raster"
)

// Extractor inverts Embedder: it walks the chain of peak pairs backward,
// undoing one iteration's shift per step, until it reaches the all-zero
// peak pair that marks the original cover (§4.5).
type Extractor struct {
	compression rdh.Compressor
}

// NewExtractor builds an Extractor.
func NewExtractor(compression rdh.Compressor) *Extractor {
	return &Extractor{compression: compression}
}

// Extract inverts a standalone unidirectional Embed.
func (x *Extractor) Extract(marked *rdh.Image) (*rdh.Image, int, []byte, error) {
	header, body := raster.Split(marked)
	iterations, hiddenBits, err := x.extractFrom(header, body)
	if err != nil {
		return nil, 0, nil, err
	}
	cover := raster.Assemble(header, body, marked.Width, marked.Height)
	return cover, iterations, bitops.BitsToBytes(hiddenBits), nil
}

// ExtractSeeded is the composition hook the scaling package uses: it
// returns the full remainder bit stream after the header LSBs have been
// restored, so the caller can peel off its own leading fields (original
// min/max, compressed residual) ahead of the payload bits itself.
func (x *Extractor) ExtractSeeded(header, body []byte) (iterations int, remainder []bool, err error) {
	return x.extractFrom(header, body)
}

func (x *Extractor) extractFrom(header, body []byte) (int, []bool, error) {
	pl := int(bitops.BitsToInt(headerLSBs(header, 0, rdh.PeakBits)))
	ph := int(bitops.BitsToInt(headerLSBs(header, rdh.PeakBits, rdh.PeakBits)))

	var hidden []bool
	iterations := 0

	for pl != 0 || ph != 0 {
		d := histogram.ShiftDirection(pl, ph)

		buf := bitops.New()
		for _, v := range body {
			iv := int(v)
			if iv == ph || iv == ph+d {
				buf.Add([]bool{iv == ph + d})
			}
		}

		rawMapBits := countValue(body, pl)
		prevPL, prevPH, locationMap, err := overhead.Parse(buf, rawMapBits, x.compression)
		if err != nil {
			return iterations, nil, err
		}

		// The reverse interior shift also folds embedded P_H+d pixels back
		// to P_H: P_H+d always lies strictly between P_L and P_H (the
		// interval shiftInBetween touches), so no separate peak-unshift
		// step is needed.
		shiftInBetween(body, ph, pl, -d)
		fixPLBin(body, pl, d, locationMap)

		if prevPL == 0 && prevPH == 0 {
			headerBits, err := buf.Next(rdh.HeaderPixels)
			if err != nil {
				return iterations, nil, wrapErr(err)
			}
			restoreHeaderLSBs(header, headerBits)
		}

		rest, err := buf.Next(-1)
		if err != nil {
			return iterations, nil, wrapErr(err)
		}
		// Extraction walks iterations from the last-embedded (outermost) to
		// the first (innermost), so each iteration's payload share is
		// prepended ahead of what's already been recovered to restore true
		// embedding order.
		hidden = append(append([]bool(nil), rest...), hidden...)

		pl, ph = prevPL, prevPH
		iterations++
	}

	return iterations, hidden, nil
}

// fixPLBin restores the interior collision at P_L: the forward shift
// folds original (P_L - d) pixels down into the P_L bin, where they sit
// indistinguishable from genuine P_L pixels (both escape the open
// interval the generic interior-shift reverse touches). The location
// map, recorded in the same raster order over this same pair of original
// values, says which is which: bit 1 means "was P_L - d, move it back".
func fixPLBin(body []byte, pl, d int, locationMap []bool) {
	idx := 0
	for i, v := range body {
		iv := int(v)
		if iv == pl {
			if locationMap[idx] {
				body[i] = byte(pl - d)
			}
			idx++
		}
	}
}

func headerLSBs(header []byte, offset, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = bitops.GetLSB(header[offset+i])
	}
	return out
}

func restoreHeaderLSBs(header []byte, bits []bool) {
	for i := 0; i < len(bits); i++ {
		header[i] = bitops.SetLSB(header[i], bits[i])
	}
}

func wrapErr(err error) error {
	return fmt.Errorf("%w: %v", rdh.ErrInvalidMarkedImage, err)
}
