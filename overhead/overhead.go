// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package overhead builds and parses the per-iteration side-channel
// frame the unidirectional core prepends to its payload bits: the
// previous iteration's peaks, a compressed/raw flag, and the location
// map (§4.4 step 4, §4.5 step 4).
package overhead

import (
	"fmt"

	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/bitops"
)

// Build frames plPrev, phPrev and locationMap into the bits emitted at
// the start of an iteration. The location map is compressed and the
// compressed form is used only if it (plus its 16-bit length prefix) is
// actually smaller than the raw map — scenario 6 of the spec's
// end-to-end tests.
func Build(plPrev, phPrev int, locationMap []bool, compression rdh.Compressor) ([]bool, error) {
	compressedBytes, err := compression.Compress(bitops.BitsToBytes(locationMap))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rdh.ErrCompressionFailure, err)
	}
	compressedBits := bitops.BytesToBits(compressedBytes)

	useCompressed := len(locationMap) > len(compressedBits)+rdh.CompressedDataLengthBits

	frame := make([]bool, 0, rdh.PeakBits*2+rdh.FlagBit+len(locationMap))
	frame = append(frame, bitops.IntToBits(uint64(plPrev), rdh.PeakBits)...)
	frame = append(frame, bitops.IntToBits(uint64(phPrev), rdh.PeakBits)...)

	if useCompressed {
		frame = append(frame, true)
		frame = append(frame, bitops.IntToBits(uint64(len(compressedBits)), rdh.CompressedDataLengthBits)...)
		frame = append(frame, compressedBits...)
	} else {
		frame = append(frame, false)
		frame = append(frame, locationMap...)
	}
	return frame, nil
}

// Parse reads one overhead frame from buf. rawMapBits is the number of
// raw location-map bits to consume when the frame isn't compressed (the
// caller supplies it because it depends on the current body state:
// count(body == P_L) at the time of reading).
func Parse(buf *bitops.Buffer, rawMapBits int, compression rdh.Compressor) (plPrev, phPrev int, locationMap []bool, err error) {
	plBits, err := buf.Next(rdh.PeakBits)
	if err != nil {
		return 0, 0, nil, wrapUnderrun(err)
	}
	phBits, err := buf.Next(rdh.PeakBits)
	if err != nil {
		return 0, 0, nil, wrapUnderrun(err)
	}
	flagBits, err := buf.Next(rdh.FlagBit)
	if err != nil {
		return 0, 0, nil, wrapUnderrun(err)
	}

	plPrev = int(bitops.BitsToInt(plBits))
	phPrev = int(bitops.BitsToInt(phBits))

	if flagBits[0] {
		sizeBits, err := buf.Next(rdh.CompressedDataLengthBits)
		if err != nil {
			return 0, 0, nil, wrapUnderrun(err)
		}
		size := int(bitops.BitsToInt(sizeBits))
		compressedBits, err := buf.Next(size)
		if err != nil {
			return 0, 0, nil, wrapUnderrun(err)
		}
		rawBytes, err := compression.Decompress(bitops.BitsToBytes(compressedBits))
		if err != nil {
			return 0, 0, nil, fmt.Errorf("%w: %v", rdh.ErrCompressionFailure, err)
		}
		locationMap = bitops.BytesToBits(rawBytes)
	} else {
		locationMap, err = buf.Next(rawMapBits)
		if err != nil {
			return 0, 0, nil, wrapUnderrun(err)
		}
	}
	return plPrev, phPrev, locationMap, nil
}

func wrapUnderrun(err error) error {
	return fmt.Errorf("%w: %v", rdh.ErrInvalidMarkedImage, err)
}
