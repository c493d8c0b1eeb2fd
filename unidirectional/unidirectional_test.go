package unidirectional

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/histogram"
)

type identityCompressor struct{}

func (identityCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (identityCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

func constantImage(w, h int, v byte) *rdh.Image {
	img := rdh.NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func checkerImage(w, h int) *rdh.Image {
	img := rdh.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, 0)
			} else {
				img.Set(x, y, 255)
			}
		}
	}
	return img
}

func TestRoundTripConstantImageEmptyPayload(t *testing.T) {
	cover := constantImage(32, 32, 128)
	e := NewEmbedder(identityCompressor{}, nil)
	marked, iterations, _, err := e.Embed(cover, nil, 1)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if iterations != 1 {
		t.Fatalf("iterations = %d, want 1", iterations)
	}

	x := NewExtractor(identityCompressor{})
	recovered, iterationsBack, payload, err := x.Extract(marked)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if iterationsBack != iterations {
		t.Fatalf("iterationsBack = %d, want %d", iterationsBack, iterations)
	}
	if !bytes.Equal(recovered.Pix, cover.Pix) {
		t.Errorf("recovered cover does not match original")
	}
	if len(payload) != 0 && !allZero(payload) {
		t.Errorf("expected an empty/zero payload, got %v", payload)
	}
}

func TestRoundTripCheckerImageWithPayload(t *testing.T) {
	cover := checkerImage(16, 16)
	payload := []byte("hi")
	e := NewEmbedder(identityCompressor{}, histogram.Unidirectional)
	marked, iterations, pureBits, err := e.Embed(cover, payload, 1)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if pureBits <= 0 {
		t.Fatalf("pureBits = %d, want > 0", pureBits)
	}

	x := NewExtractor(identityCompressor{})
	recovered, gotIterations, gotPayload, err := x.Extract(marked)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gotIterations != iterations {
		t.Fatalf("iterations = %d, want %d", gotIterations, iterations)
	}
	if !bytes.Equal(recovered.Pix, cover.Pix) {
		t.Errorf("recovered cover does not match original")
	}
	if !bytes.HasPrefix(gotPayload, payload) {
		t.Errorf("payload = %v, want prefix %v", gotPayload, payload)
	}
}

func TestIterationsLimitExceededCapacityExhausted(t *testing.T) {
	// 20 pixels: the 17 header pixels plus a 3-pixel body.
	cover := constantImage(5, 4, 128)
	e := NewEmbedder(identityCompressor{}, nil)
	// A tiny image with a huge payload request at 0 iterations can't embed
	// anything; the embedder reports capacity exhaustion rather than
	// silently truncating.
	_, _, _, err := e.Embed(cover, bytes.Repeat([]byte{0xFF}, 1000), 0)
	if !errors.Is(err, rdh.ErrCapacityExhausted) {
		t.Fatalf("err = %v, want ErrCapacityExhausted", err)
	}
}

func TestHeaderStampChangesHeaderAfterOneIteration(t *testing.T) {
	cover := constantImage(8, 8, 128)
	header, _ := cover.Pix[:rdh.HeaderPixels], cover.Pix[rdh.HeaderPixels:]
	before := append([]byte(nil), header...)

	e := NewEmbedder(identityCompressor{}, nil)
	marked, _, _, err := e.Embed(cover, nil, 1)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if bytes.Equal(marked.Pix[:rdh.HeaderPixels], before) {
		t.Errorf("expected header pixels to carry a non-zero peak stamp after one iteration")
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
