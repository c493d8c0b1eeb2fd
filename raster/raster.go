// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package raster splits a cover image into its reserved header region and
// embeddable body region, and reassembles the two after an embedding
// core has finished with them.
package raster

import "github.com/zenajjar/rdh"

// Split returns the first rdh.HeaderPixels pixels of img (in raster
// order) as the header, and the remainder as the body. Both are copies:
// embedding cores mutate them freely without aliasing the caller's image.
func Split(img *rdh.Image) (header, body []byte) {
	header = make([]byte, rdh.HeaderPixels)
	copy(header, img.Pix[:rdh.HeaderPixels])
	body = make([]byte, len(img.Pix)-rdh.HeaderPixels)
	copy(body, img.Pix[rdh.HeaderPixels:])
	return header, body
}

// Assemble reassembles a header and body into a new image of the given
// shape. len(header)+len(body) must equal width*height.
func Assemble(header, body []byte, width, height int) *rdh.Image {
	pix := make([]byte, 0, width*height)
	pix = append(pix, header...)
	pix = append(pix, body...)
	return &rdh.Image{Width: width, Height: height, Pix: pix}
}
