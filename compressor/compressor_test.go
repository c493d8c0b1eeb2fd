package compressor

import (
	"bytes"
	"testing"
)

func TestZlibRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		[]byte("hello, reversible data hiding"),
		bytes.Repeat([]byte{0}, 2000),
		bytes.Repeat([]byte{1, 2, 3, 4}, 500),
	}
	z := Zlib{}
	for _, data := range cases {
		compressed, err := z.Compress(data)
		if err != nil {
			t.Fatalf("Compress(%v): %v", data, err)
		}
		got, err := z.Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("round trip = %v, want %v", got, data)
		}
	}
}

func TestZlibRepetitiveDataCompresses(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 10000)
	z := Zlib{}
	compressed, err := z.Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed) >= len(data) {
		t.Errorf("expected compression to shrink a repetitive buffer: %d >= %d", len(compressed), len(data))
	}
}
