package bitops

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestIntToBitsBitsToInt(t *testing.T) {
	tests := []struct {
		n     uint64
		width int
		want  uint64
	}{
		{0, 8, 0}, {1, 8, 1}, {255, 8, 255}, {128, 8, 128}, {0, 16, 0}, {65535, 16, 65535},
		// BitsToInt pads a short sequence on the right to a whole byte, so
		// widths below 8 read back in the top bits of that byte.
		{3, 2, 192}, {0, 1, 0}, {1, 1, 128},
	}
	for _, tt := range tests {
		bits := IntToBits(tt.n, tt.width)
		if len(bits) != tt.width {
			t.Fatalf("IntToBits(%d,%d) length = %d, want %d", tt.n, tt.width, len(bits), tt.width)
		}
		got := BitsToInt(bits)
		if got != tt.want {
			t.Errorf("BitsToInt(IntToBits(%d,%d)) = %d, want %d", tt.n, tt.width, got, tt.want)
		}
	}
}

func TestBytesToBitsBitsToBytesRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		n := r.Intn(64)
		b := make([]byte, n)
		r.Read(b)
		bits := BytesToBits(b)
		if len(bits) != n*8 {
			t.Fatalf("BytesToBits length = %d, want %d", len(bits), n*8)
		}
		back := BitsToBytes(bits)
		if !reflect.DeepEqual(back, b) {
			t.Fatalf("round trip mismatch: got %v, want %v", back, b)
		}
	}
}

func TestBitsToBytesPadsWithZero(t *testing.T) {
	bits := []bool{true, false, true}
	got := BitsToBytes(bits)
	want := []byte{0b10100000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BitsToBytes(%v) = %08b, want %08b", bits, got[0], want[0])
	}
}

func TestGetSetLSB(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		if GetLSB(b) != (b&1 == 1) {
			t.Fatalf("GetLSB(%d) mismatch", v)
		}
		set1 := SetLSB(b, true)
		if !GetLSB(set1) {
			t.Fatalf("SetLSB(%d,true) didn't set bit", v)
		}
		set0 := SetLSB(b, false)
		if GetLSB(set0) {
			t.Fatalf("SetLSB(%d,false) didn't clear bit", v)
		}
		// every other bit is unchanged
		if set1&^1 != b&^1 {
			t.Fatalf("SetLSB(%d,true) touched other bits: %08b", v, set1)
		}
	}
}

func TestLSBs(t *testing.T) {
	values := []byte{0, 1, 2, 3, 254, 255}
	got := LSBs(values)
	want := []bool{false, true, false, true, false, true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LSBs(%v) = %v, want %v", values, got, want)
	}
}
