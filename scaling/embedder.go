// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package scaling

import (
	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/bitops"
	"github.com/zenajjar/rdh/histogram"
	"github.com/zenajjar/rdh/raster"
	"github.com/zenajjar/rdh/scale"
	"github.com/zenajjar/rdh/unidirectional"
)

// Embedder range-compresses the body before delegating to the
// unidirectional core, then serializes the rounding residual the
// compression introduced as a leading side-channel (§4.6).
type Embedder struct {
	core        *unidirectional.Embedder
	compression rdh.Compressor
	residual    ResidualStrategy
}

// NewEmbedder builds a scaling Embedder. peaks defaults to
// histogram.Unidirectional when nil.
func NewEmbedder(compression rdh.Compressor, peaks histogram.PeakStrategy, residual ResidualStrategy) *Embedder {
	return &Embedder{
		core:        unidirectional.NewEmbedder(compression, peaks),
		compression: compression,
		residual:    residual,
	}
}

// Embed runs the preprocess → delegate sequence described in §4.6.
func (e *Embedder) Embed(cover *rdh.Image, payload []byte, iterations int) (*rdh.Image, int, int, error) {
	header, body := raster.Split(cover)

	originalMin, originalMax := bounds(body)
	scaledMax := rdh.MaxPixelValue - 2*iterations
	if scaledMax < 0 {
		return nil, 0, 0, rdh.ErrIterationsLimitExceeded
	}

	shiftedOriginal := make([]byte, len(body))
	for i, v := range body {
		shiftedOriginal[i] = v - originalMin
	}

	scaledBody := scale.ScaleTo(shiftedOriginal, 0, scaledMax)
	recovered := scale.ScaleTo(scaledBody, 0, int(originalMax-originalMin))

	residualValues := make([]int, len(body))
	distinct := map[int]bool{}
	for i := range body {
		r := int(recovered[i]) - int(shiftedOriginal[i])
		residualValues[i] = r
		distinct[r] = true
	}
	if len(distinct) > 2 {
		return nil, 0, 0, rdh.ErrIterationsLimitExceeded
	}

	mappedValues := scale.MappedValues(int(originalMax-originalMin), scaledMax)
	freqs := scale.ValueFreqs(int(originalMax-originalMin), scaledMax)

	residualBits, err := e.residual.Encode(scaledBody, residualValues, mappedValues, freqs)
	if err != nil {
		return nil, 0, 0, err
	}
	compressedResidual, err := e.compression.Compress(bitops.BitsToBytes(residualBits))
	if err != nil {
		return nil, 0, 0, rdh.ErrCompressionFailure
	}
	compressedBits := bitops.BytesToBits(compressedResidual)

	seed := make([]bool, 0, rdh.PeakBits*2+rdh.CompressedDataLengthBits+len(compressedBits))
	seed = append(seed, bitops.IntToBits(uint64(originalMin), rdh.PeakBits)...)
	seed = append(seed, bitops.IntToBits(uint64(originalMax), rdh.PeakBits)...)
	seed = append(seed, bitops.IntToBits(uint64(len(compressedBits)), rdh.CompressedDataLengthBits)...)
	seed = append(seed, compressedBits...)

	processedBody := make([]byte, len(scaledBody))
	for i, v := range scaledBody {
		processedBody[i] = v + byte(iterations)
	}

	iterationsUsed, pureBits, err := e.core.EmbedSeeded(header, processedBody, seed, payload, iterations)
	marked := raster.Assemble(header, processedBody, cover.Width, cover.Height)
	return marked, iterationsUsed, pureBits, err
}

func bounds(body []byte) (min, max byte) {
	if len(body) == 0 {
		return 0, 0
	}
	min, max = body[0], body[0]
	for _, v := range body {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
