// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package rdh provides a simple interface for reversible data hiding (RDH)
// implementations: embedding a secret payload into an 8-bit grayscale
// image such that both the payload and the exact original cover can later
// be recovered from the marked image.
package rdh

import "errors"

// Wire-level constants shared by every embedding core.
const (
	HeaderPixels             = 17
	MaxPixelValue            = 255
	PeakBits                 = 8
	FlagBit                  = 1
	CompressedDataLengthBits = 16
	BrightnessThreshold      = 0.5
)

// Error kinds surfaced to the caller. Reversibility itself is a hard
// invariant, not an error: if extraction appears to succeed but the
// recovered cover differs from the true cover, that is a bug in the
// embedding core, not one of these.
var (
	// ErrIterationsLimitExceeded is returned when the scaling preprocess
	// step finds it cannot represent its rounding residual in the
	// configured bit width (the requested iteration count leaves too
	// little headroom in the compressed pixel range).
	ErrIterationsLimitExceeded = errors.New("rdh: iterations limit exceeded")

	// ErrCapacityExhausted means no iteration was applied: either the
	// first iteration's candidate capacity (pixels at the embedding peak,
	// minus overhead bits, minus the header reservation) is already
	// negative, or the iteration budget is zero.
	ErrCapacityExhausted = errors.New("rdh: capacity exhausted")

	// ErrInvalidMarkedImage means extraction could not parse an overhead
	// frame from the marked image — peaks decoded from the header imply
	// a frame that runs past the end of the recoverable bitstream.
	ErrInvalidMarkedImage = errors.New("rdh: invalid marked image")

	// ErrCompressionFailure wraps a compressor/decompressor protocol
	// violation from the Compressor collaborator.
	ErrCompressionFailure = errors.New("rdh: compression failure")
)

// Compressor is the lossless byte-stream codec collaborator required by
// §4.7: any algorithm satisfying Decompress(Compress(x)) == x works. The
// embedding cores treat it as an opaque strategy value.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Image is a 2-D array of 8-bit grayscale pixel values in raster
// (row-major) order: Pix[y*Width+x] is the pixel at (x, y).
type Image struct {
	Width, Height int
	Pix           []byte
}

// NewImage allocates an Image of the given shape with all pixels zero.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]byte, width*height)}
}

// At returns the pixel value at (x, y).
func (img *Image) At(x, y int) byte {
	return img.Pix[y*img.Width+x]
}

// Set assigns the pixel value at (x, y).
func (img *Image) Set(x, y int, v byte) {
	img.Pix[y*img.Width+x] = v
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Pix: make([]byte, len(img.Pix))}
	copy(out.Pix, img.Pix)
	return out
}

// Embedder hides a payload inside a cover image.
//
// Embed must not retain cover or payload.
type Embedder interface {
	Embed(cover *Image, payload []byte, iterations int) (marked *Image, iterationsUsed int, pureBits int, err error)
}

// Extractor recovers the original cover and the hidden payload from a
// marked image.
type Extractor interface {
	Extract(marked *Image) (cover *Image, iterationsUsed int, payload []byte, err error)
}

// Algorithm names one registered (Embedder, Extractor) pairing together
// with the iteration budget it is normally run with, the way
// original_source/rdh.py's RDH class binds a label, a limit and an
// embed/extract function pair.
type Algorithm struct {
	Name      string
	Embedder  Embedder
	Extractor Extractor
	Limit     int
}

func (a Algorithm) String() string {
	return a.Name
}
