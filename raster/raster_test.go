package raster

import (
	"reflect"
	"testing"

	"github.com/zenajjar/rdh"
)

func TestSplitAssembleRoundTrip(t *testing.T) {
	img := rdh.NewImage(8, 8)
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	header, body := Split(img)
	if len(header) != rdh.HeaderPixels {
		t.Fatalf("len(header) = %d, want %d", len(header), rdh.HeaderPixels)
	}
	if len(body) != 64-rdh.HeaderPixels {
		t.Fatalf("len(body) = %d, want %d", len(body), 64-rdh.HeaderPixels)
	}
	back := Assemble(header, body, img.Width, img.Height)
	if !reflect.DeepEqual(back.Pix, img.Pix) {
		t.Errorf("Assemble(Split(img)) != img")
	}
}

func TestSplitIsACopy(t *testing.T) {
	img := rdh.NewImage(8, 8)
	header, body := Split(img)
	header[0] = 42
	body[0] = 42
	if img.Pix[0] == 42 || img.Pix[rdh.HeaderPixels] == 42 {
		t.Errorf("Split aliased the source image")
	}
}
