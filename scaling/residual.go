// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package scaling wraps the unidirectional core with a range-scaling
// preprocess/postprocess step (§4.6): pixels are compressed into a
// smaller range to free headroom for the unidirectional shifts, and the
// rounding error that compression introduces is carried as a separate
// residual side-channel so the transform stays exactly invertible.
package scaling

import (
	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/scale"
)

// ResidualStrategy picks which scaled pixels carry a residual bit (or
// bits) and in what order — a wire-format choice that embed and extract
// must agree on (§9's open question: plain and value-ordered are not
// interchangeable).
type ResidualStrategy interface {
	Name() string
	// Encode serializes residual (one entry per scaledBody pixel, only
	// meaningful where the strategy selects that pixel) into bits.
	Encode(scaledBody []byte, residual []int, mappedValues []int, freqs [256]int) ([]bool, error)
	// Decode is Encode's inverse: it returns one residual entry per
	// scaledBody pixel, zero where the strategy didn't encode a pixel.
	Decode(bits []bool, scaledBody []byte, mappedValues []int, freqs [256]int) ([]int, error)
}

// PlainResidual emits one bit per pixel whose scaled value is a mapped
// value, in raster order (§4.6a).
type PlainResidual struct{}

func (PlainResidual) Name() string { return "plain" }

func (PlainResidual) Encode(scaledBody []byte, residual []int, mappedValues []int, freqs [256]int) ([]bool, error) {
	var bits []bool
	for i, v := range scaledBody {
		if scale.Contains(mappedValues, int(v)) {
			bits = append(bits, residual[i] != 0)
		}
	}
	return bits, nil
}

func (PlainResidual) Decode(bits []bool, scaledBody []byte, mappedValues []int, freqs [256]int) ([]int, error) {
	out := make([]int, len(scaledBody))
	idx := 0
	for i, v := range scaledBody {
		if scale.Contains(mappedValues, int(v)) {
			if idx >= len(bits) {
				return nil, rdh.ErrInvalidMarkedImage
			}
			if bits[idx] {
				out[i] = 1
			}
			idx++
		}
	}
	return out, nil
}

// ValueOrderedResidual emits residual bits grouped by ascending scaled
// bin value rather than by pixel position (§4.6b) — a distinct wire
// format from PlainResidual even though both only ever carry a 0/1 per
// selected pixel.
type ValueOrderedResidual struct{}

func (ValueOrderedResidual) Name() string { return "value-ordered" }

func (ValueOrderedResidual) Encode(scaledBody []byte, residual []int, mappedValues []int, freqs [256]int) ([]bool, error) {
	var bits []bool
	for v := 0; v < 256; v++ {
		if !scale.Contains(mappedValues, v) {
			continue
		}
		for i, sv := range scaledBody {
			if int(sv) == v {
				bits = append(bits, residual[i] != 0)
			}
		}
	}
	return bits, nil
}

func (ValueOrderedResidual) Decode(bits []bool, scaledBody []byte, mappedValues []int, freqs [256]int) ([]int, error) {
	out := make([]int, len(scaledBody))
	idx := 0
	for v := 0; v < 256; v++ {
		if !scale.Contains(mappedValues, v) {
			continue
		}
		for i, sv := range scaledBody {
			if int(sv) == v {
				if idx >= len(bits) {
					return nil, rdh.ErrInvalidMarkedImage
				}
				if bits[idx] {
					out[i] = 1
				}
				idx++
			}
		}
	}
	return out, nil
}

// VariableBitResidual spends a per-bin bit width on every pixel whose
// scaled bin maps from more than one original value (§4.6c): bins with
// freq ≤ 1 need no residual at all, and bins with higher ambiguity get
// more bits, up to MaxBits. This parameterizes what the source's "2-bit
// variant" hard-coded as a bare alias of the 1-bit one (see
// DESIGN.md) — MaxBits is an explicit, checkable configuration value
// rather than a second copy of the same code.
type VariableBitResidual struct {
	MaxBits int
}

// NewVariableBitResidual builds a VariableBitResidual bounded at maxBits
// per pixel.
func NewVariableBitResidual(maxBits int) VariableBitResidual {
	return VariableBitResidual{MaxBits: maxBits}
}

func (r VariableBitResidual) Name() string { return "variable-bit" }

// Encode checks MaxBits only against bins a pixel actually occupies,
// unlike the source's max(map_sizes) > 2 check over every bin whether or
// not it's occupied in this image. Slightly more lenient, harmless to
// reversibility — an occupied bin still gets rejected once its own width
// exceeds MaxBits.
func (r VariableBitResidual) Encode(scaledBody []byte, residual []int, mappedValues []int, freqs [256]int) ([]bool, error) {
	var bits []bool
	for i, v := range scaledBody {
		m := freqs[v]
		if m <= 0 {
			continue
		}
		if m > r.MaxBits {
			return nil, rdh.ErrIterationsLimitExceeded
		}
		bits = append(bits, scale.IntegersToBits([]int{residual[i]}, m)...)
	}
	return bits, nil
}

func (r VariableBitResidual) Decode(bits []bool, scaledBody []byte, mappedValues []int, freqs [256]int) ([]int, error) {
	out := make([]int, len(scaledBody))
	pos := 0
	for i, v := range scaledBody {
		m := freqs[v]
		if m <= 0 {
			continue
		}
		if pos+m > len(bits) {
			return nil, rdh.ErrInvalidMarkedImage
		}
		out[i] = scale.BitsToIntegers(bits[pos:pos+m], m)[0]
		pos += m
	}
	return out, nil
}
