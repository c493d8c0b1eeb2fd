// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package histogram computes pixel histograms over a body region and
// selects the peak/zero pair an embedding iteration will use.
package histogram

// Histogram is a 256-bin count of body pixel values.
type Histogram [256]int

// Of computes the histogram of body.
func Of(body []byte) Histogram {
	var h Histogram
	for _, v := range body {
		h[v]++
	}
	return h
}

func argmax(h Histogram, lo, hi int) int {
	best := lo
	for i := lo + 1; i < hi; i++ {
		if h[i] > h[best] {
			best = i
		}
	}
	return best
}

// ClosestRight returns the minimum-frequency bin at or to the right of
// x+2: among indices i in [x+2, 255], it minimizes h[i]+h[i-1], breaking
// ties by the smaller h[i-1], then by the index nearest to x.
func ClosestRight(h Histogram, x int) int {
	start := x + 2
	if start > 255 {
		start = 255
	}
	minCombined := h[start] + h[start-1]
	for i := start + 1; i <= 255; i++ {
		c := h[i] + h[i-1]
		if c < minCombined {
			minCombined = c
		}
	}
	var candidates []int
	for i := start; i <= 255; i++ {
		if h[i]+h[i-1] == minCombined {
			candidates = append(candidates, i)
		}
	}
	minLeftNeighbor := h[candidates[0]-1]
	for _, i := range candidates {
		if h[i-1] < minLeftNeighbor {
			minLeftNeighbor = h[i-1]
		}
	}
	best := -1
	bestDist := 1 << 30
	for _, i := range candidates {
		if h[i-1] != minLeftNeighbor {
			continue
		}
		d := abs(i - x)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ClosestLeft is the mirror of ClosestRight: among indices i in
// [0, x-2], it minimizes h[i]+h[i+1], breaking ties by the smaller
// h[i+1], then by the index nearest to x.
func ClosestLeft(h Histogram, x int) int {
	end := x - 2
	if end < 0 {
		end = 0
	}
	minCombined := h[0] + h[1]
	for i := 1; i <= end; i++ {
		c := h[i] + h[i+1]
		if c < minCombined {
			minCombined = c
		}
	}
	var candidates []int
	for i := 0; i <= end; i++ {
		if h[i]+h[i+1] == minCombined {
			candidates = append(candidates, i)
		}
	}
	minRightNeighbor := h[candidates[0]+1]
	for _, i := range candidates {
		if h[i+1] < minRightNeighbor {
			minRightNeighbor = h[i+1]
		}
	}
	best := -1
	bestDist := 1 << 30
	for _, i := range candidates {
		if h[i+1] != minRightNeighbor {
			continue
		}
		d := abs(i - x)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Closest picks whichever of ClosestRight/ClosestLeft has the smaller
// combined neighbor frequency; on an exact tie in both frequency and
// distance to x, it prefers the right candidate (see SPEC_FULL.md/§8's
// "closest chooses the right one" testable property — a deliberate
// tie-break fix over the original source, recorded in DESIGN.md).
func Closest(h Histogram, x int) int {
	right := ClosestRight(h, x)
	left := ClosestLeft(h, x)
	rightValue := h[right] + h[right-1]
	leftValue := h[left] + h[left+1]
	switch {
	case rightValue < leftValue:
		return right
	case rightValue > leftValue:
		return left
	default:
		if abs(right-x) <= abs(left-x) {
			return right
		}
		return left
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PeakStrategy chooses the (shift sink, embedding peak) pair for an
// iteration given the current body pixels. The unidirectional core
// treats it as an injectable strategy value so the brightness-preserving
// variant (§4.4.2) needs only supply a different function, not a
// different embedder.
type PeakStrategy func(body []byte) (pl, ph int)

// Unidirectional is the default peak-selection rule (§4.4.1): P_H is the
// histogram's global argmax; P_L is the nearest local minimum, searching
// right when P_H is too close to 0, left when too close to 255, and the
// better of both sides otherwise.
func Unidirectional(body []byte) (pl, ph int) {
	h := Of(body)
	ph = argmax(h, 0, 256)
	switch {
	case ph < 2:
		pl = ClosestRight(h, ph)
	case ph > 253:
		pl = ClosestLeft(h, ph)
	default:
		pl = Closest(h, ph)
	}
	return pl, ph
}

// BrightnessPreserving builds a PeakStrategy that biases the embedding
// peak toward darkening or brightening the image back toward
// originalMean whenever the current body mean has drifted past
// threshold (§4.4.2).
func BrightnessPreserving(originalMean, threshold float64) PeakStrategy {
	return func(body []byte) (pl, ph int) {
		h := Of(body)
		currentMean := mean(body)
		delta := originalMean - currentMean

		switch {
		case delta > threshold:
			ph = argmax(h, 0, 254)
		case delta < -threshold:
			ph = argmax(h, 2, 256)
		default:
			ph = argmax(h, 0, 256)
		}

		switch {
		case delta > threshold || ph < 2:
			pl = ClosestRight(h, ph)
		case delta < -threshold || ph > 253:
			pl = ClosestLeft(h, ph)
		default:
			pl = Closest(h, ph)
		}
		return pl, ph
	}
}

func mean(body []byte) float64 {
	if len(body) == 0 {
		return 0
	}
	var sum int64
	for _, v := range body {
		sum += int64(v)
	}
	return float64(sum) / float64(len(body))
}

// ShiftDirection returns the direction interior pixels move in: -1 when
// pl < ph, +1 otherwise. Equivalently sign(pl - ph).
func ShiftDirection(pl, ph int) int {
	if pl < ph {
		return -1
	}
	return 1
}
