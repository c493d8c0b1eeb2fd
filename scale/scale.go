// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package scale implements the range-scaling transform the scaling
// embedder family uses to free headroom in the pixel range before
// delegating to the unidirectional core (§4.3).
package scale

import "math"

// epsilon breaks ties at .5 rounding boundaries and is load-bearing for
// ScaleTo: preserve it exactly.
const epsilon = 5e-8

// ScaleTo rescales v into [scaledMin, scaledMax]. Values are first
// shifted so their minimum is 0, then scaled by scaledRange/originalRange
// in double precision. Downward scaling (scaledRange <= originalRange)
// subtracts epsilon then takes the ceiling; upward scaling adds epsilon
// then takes the floor — this asymmetric rounding is what gives the
// transform a unique inverse once paired with the per-pixel residual in
// §4.4 of the scaling package.
func ScaleTo(v []byte, scaledMin, scaledMax int) []byte {
	if len(v) == 0 {
		return nil
	}
	vmin := v[0]
	for _, x := range v {
		if x < vmin {
			vmin = x
		}
	}
	shifted := make([]int, len(v))
	vmax := 0
	for i, x := range v {
		s := int(x) - int(vmin)
		shifted[i] = s
		if s > vmax {
			vmax = s
		}
	}

	scaledRange := scaledMax - scaledMin
	var scaleFactor float64
	if vmax != 0 {
		scaleFactor = float64(scaledRange) / float64(vmax)
	}

	out := make([]byte, len(v))
	downward := scaledRange <= vmax
	for i, s := range shifted {
		f := float64(s) * scaleFactor
		var r float64
		if downward {
			r = math.Ceil(f - epsilon)
		} else {
			r = math.Floor(f + epsilon)
		}
		out[i] = byte(int(r) + scaledMin)
	}
	return out
}

// scaleToInts is ScaleTo generalized over plain ints, used internally to
// build the synthetic [0, originalMax] domain MappedValues and ValueFreqs
// scale through — the pixel values involved never actually exceed
// MaxPixelValue, but the helper avoids a byte-narrowing round trip on the
// intermediate arange.
func scaleToInts(v []int, scaledMin, scaledMax int) []int {
	if len(v) == 0 {
		return nil
	}
	vmin := v[0]
	for _, x := range v {
		if x < vmin {
			vmin = x
		}
	}
	shifted := make([]int, len(v))
	vmax := 0
	for i, x := range v {
		s := x - vmin
		shifted[i] = s
		if s > vmax {
			vmax = s
		}
	}

	scaledRange := scaledMax - scaledMin
	var scaleFactor float64
	if vmax != 0 {
		scaleFactor = float64(scaledRange) / float64(vmax)
	}

	out := make([]int, len(v))
	downward := scaledRange <= vmax
	for i, s := range shifted {
		f := float64(s) * scaleFactor
		var r float64
		if downward {
			r = math.Ceil(f - epsilon)
		} else {
			r = math.Floor(f + epsilon)
		}
		out[i] = int(r) + scaledMin
	}
	return out
}

func arange(n int) []int {
	out := make([]int, n+1)
	for i := range out {
		out[i] = i
	}
	return out
}

// MappedValues returns the scaled bin values for which ScaleTo composed
// with its own inverse (scale to scaledMax, then back to originalMax)
// does not reproduce the original value — these are the bins that need a
// residual bit on extraction. If none exist, it returns []int{-1}, a
// distinguishable empty marker.
func MappedValues(originalMax, scaledMax int) []int {
	ogValues := arange(originalMax)
	scaledValues := scaleToInts(ogValues, 0, scaledMax)
	recovered := scaleToInts(scaledValues, 0, originalMax)

	var mapped []int
	for i, og := range ogValues {
		if recovered[i] != og {
			mapped = append(mapped, scaledValues[i])
		}
	}
	if len(mapped) == 0 {
		return []int{-1}
	}
	return mapped
}

// ValueFreqs returns, for each scaled bin value v in [0,255], the number
// of bits needed to store a residual for pixels landing in that bin:
// ceil(log2(count of original values mapping to v)), with zero counts
// treated as 1 (so empty bins cost zero bits).
func ValueFreqs(originalMax, scaledMax int) [256]int {
	ogValues := arange(originalMax)
	scaledValues := scaleToInts(ogValues, 0, scaledMax)

	var counts [256]int
	for _, v := range scaledValues {
		counts[v]++
	}

	var bits [256]int
	for v, c := range counts {
		if c == 0 {
			c = 1
		}
		bits[v] = int(math.Ceil(math.Log2(float64(c))))
	}
	return bits
}

// Contains reports whether value is present in mappedValues.
func Contains(mappedValues []int, value int) bool {
	for _, v := range mappedValues {
		if v == value {
			return true
		}
	}
	return false
}

// IntegersToBits packs each value in r into m little-endian bits (bit i
// of the output group is bit i of the value), matching the variable-bit
// residual wire format used by scaling.VariableBitResidual.
func IntegersToBits(r []int, m int) []bool {
	bits := make([]bool, 0, len(r)*m)
	for _, v := range r {
		for i := 0; i < m; i++ {
			bits = append(bits, (v>>uint(i))&1 == 1)
		}
	}
	return bits
}

// BitsToIntegers is the inverse of IntegersToBits: it reconstructs
// len(bits)/m integers from consecutive little-endian m-bit groups.
func BitsToIntegers(bits []bool, m int) []int {
	if m == 0 {
		return nil
	}
	n := len(bits) / m
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v := 0
		for b := 0; b < m; b++ {
			if bits[i*m+b] {
				v |= 1 << uint(b)
			}
		}
		out[i] = v
	}
	return out
}
