// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package compressor provides the lossless byte-stream codec collaborator
// required by §4.7: a default deflate-class implementation over
// compress/zlib, the same primitive the teacher CLI's -z flag wires up.
package compressor

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Zlib implements rdh.Compressor with compress/zlib.
type Zlib struct{}

// Compress returns the zlib-compressed form of data.
func (Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inverts Compress.
func (Zlib) Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	defer zr.Close()

	var out bytes.Buffer
	if _, err := io.Copy(&out, zr); err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return out.Bytes(), nil
}
