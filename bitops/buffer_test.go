package bitops

import (
	"errors"
	"reflect"
	"testing"
)

func bools(s string) []bool {
	out := make([]bool, len(s))
	for i, c := range s {
		out[i] = c == '1'
	}
	return out
}

func TestBufferNextAdvancesCursor(t *testing.T) {
	b := New(bools("1011"), bools("00"))
	got, err := b.Next(3)
	if err != nil {
		t.Fatalf("Next(3) error: %v", err)
	}
	if !reflect.DeepEqual(got, bools("101")) {
		t.Errorf("Next(3) = %v, want 101", got)
	}
	if b.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", b.Remaining())
	}
}

func TestBufferNextDrain(t *testing.T) {
	b := New(bools("101"), bools("00"))
	b.Next(1)
	rest, err := b.Next(-1)
	if err != nil {
		t.Fatalf("Next(-1) error: %v", err)
	}
	if !reflect.DeepEqual(rest, bools("0100")) {
		t.Errorf("Next(-1) = %v, want 0100", rest)
	}
	if b.Remaining() != 0 {
		t.Errorf("Remaining() after drain = %d, want 0", b.Remaining())
	}
}

func TestBufferUnderrun(t *testing.T) {
	b := New(bools("10"))
	if _, err := b.Next(3); !errors.Is(err, ErrUnderrun) {
		t.Fatalf("Next(3) error = %v, want ErrUnderrun", err)
	}
}

func TestBufferPushThenNext(t *testing.T) {
	b := New()
	b.Add(bools("11"))
	b.Push(bools("00"))
	got, err := b.Next(-1)
	if err != nil {
		t.Fatalf("Next(-1) error: %v", err)
	}
	if !reflect.DeepEqual(got, bools("1100")) {
		t.Errorf("got %v, want 1100", got)
	}
}
