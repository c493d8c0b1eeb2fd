// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package scaling

import (
	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/bitops"
	"github.com/zenajjar/rdh/raster"
	"github.com/zenajjar/rdh/scale"
	"github.com/zenajjar/rdh/unidirectional"
)

// Extractor inverts Embedder: delegate to the unidirectional core first,
// then undo the range-scaling preprocess using the original-range and
// residual side information the embedder recorded (§4.6 inverse).
type Extractor struct {
	core        *unidirectional.Extractor
	compression rdh.Compressor
	residual    ResidualStrategy
	iterations  int
}

// NewExtractor builds a scaling Extractor. iterations must equal the k
// the image was embedded with — the scaling family needs it to recover
// scaled_max, since the header carries only the final peak pair.
func NewExtractor(compression rdh.Compressor, residual ResidualStrategy, iterations int) *Extractor {
	return &Extractor{
		core:        unidirectional.NewExtractor(compression),
		compression: compression,
		residual:    residual,
		iterations:  iterations,
	}
}

// Extract inverts a scaling Embed.
func (x *Extractor) Extract(marked *rdh.Image) (*rdh.Image, int, []byte, error) {
	header, body := raster.Split(marked)

	iterationsUsed, remainder, err := x.core.ExtractSeeded(header, body)
	if err != nil {
		return nil, 0, nil, err
	}

	if len(remainder) < rdh.PeakBits*2+rdh.CompressedDataLengthBits {
		return nil, 0, nil, rdh.ErrInvalidMarkedImage
	}
	originalMin := byte(bitops.BitsToInt(remainder[0:rdh.PeakBits]))
	originalMax := byte(bitops.BitsToInt(remainder[rdh.PeakBits : 2*rdh.PeakBits]))
	cursor := 2 * rdh.PeakBits
	resLen := int(bitops.BitsToInt(remainder[cursor : cursor+rdh.CompressedDataLengthBits]))
	cursor += rdh.CompressedDataLengthBits

	if len(remainder) < cursor+resLen {
		return nil, 0, nil, rdh.ErrInvalidMarkedImage
	}
	compressedBits := remainder[cursor : cursor+resLen]
	cursor += resLen
	payloadBits := remainder[cursor:]

	compressedResidualBytes := bitops.BitsToBytes(compressedBits)
	residualBytes, err := x.compression.Decompress(compressedResidualBytes)
	if err != nil {
		return nil, 0, nil, rdh.ErrCompressionFailure
	}
	residualBits := bitops.BytesToBits(residualBytes)

	scaledBody := make([]byte, len(body))
	for i, v := range body {
		scaledBody[i] = v - byte(x.iterations)
	}

	scaledMax := rdh.MaxPixelValue - 2*x.iterations
	mappedValues := scale.MappedValues(int(originalMax-originalMin), scaledMax)
	freqs := scale.ValueFreqs(int(originalMax-originalMin), scaledMax)

	residualValues, err := x.residual.Decode(residualBits, scaledBody, mappedValues, freqs)
	if err != nil {
		return nil, 0, nil, err
	}

	recovered := scale.ScaleTo(scaledBody, 0, int(originalMax-originalMin))
	originalBody := make([]byte, len(body))
	for i, v := range recovered {
		originalBody[i] = v - byte(residualValues[i]) + originalMin
	}

	cover := raster.Assemble(header, originalBody, marked.Width, marked.Height)
	return cover, iterationsUsed, bitops.BitsToBytes(payloadBits), nil
}
