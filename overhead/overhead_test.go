package overhead

import (
	"reflect"
	"testing"

	"github.com/zenajjar/rdh/bitops"
)

type identityCompressor struct{}

func (identityCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (identityCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

type constCompressor struct{ out []byte }

func (c constCompressor) Compress(data []byte) ([]byte, error)   { return c.out, nil }
func (c constCompressor) Decompress(data []byte) ([]byte, error) { return c.out, nil }

func TestBuildParseRoundTripUncompressed(t *testing.T) {
	locationMap := []bool{true, false, true, true}
	frame, err := Build(12, 200, locationMap, identityCompressor{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	buf := bitops.New(frame)
	pl, ph, gotMap, err := Parse(buf, len(locationMap), identityCompressor{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pl != 12 || ph != 200 {
		t.Fatalf("peaks = (%d,%d), want (12,200)", pl, ph)
	}
	if !reflect.DeepEqual(gotMap, locationMap) {
		t.Errorf("location map = %v, want %v", gotMap, locationMap)
	}
}

func TestBuildChoosesCompressedWhenSmaller(t *testing.T) {
	locationMap := make([]bool, 1000) // highly compressible: all false
	tiny := constCompressor{out: []byte{1, 2, 3}}
	frame, err := Build(0, 0, locationMap, tiny)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	flag := frame[16]
	if !flag {
		t.Errorf("expected flag=true (compressed) for a highly compressible map")
	}
}

func TestBuildChoosesRawWhenCompressionExpands(t *testing.T) {
	locationMap := []bool{true, false} // 2 bits: compression can only hurt
	expand := constCompressor{out: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	frame, err := Build(0, 0, locationMap, expand)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	flag := frame[16]
	if flag {
		t.Errorf("expected flag=false (raw) when compression expands the map")
	}
}
