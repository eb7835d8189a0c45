package scheme

import "testing"

func TestEncodeEdifactRejectsOutOfRange(t *testing.T) {
	if _, ok := EncodeEdifact([]byte{31}); ok {
		t.Fatalf("byte 31 is below EDIFACT's supported range, want rejection")
	}
	if _, ok := EncodeEdifact([]byte{95}); ok {
		t.Fatalf("byte 95 is above EDIFACT's supported range, want rejection")
	}
}

func TestEncodeDecodeEdifactFullQuadruplet(t *testing.T) {
	in := []byte{'A', 'B', 'C', 'D'}
	packed, ok := EncodeEdifact(in)
	if !ok {
		t.Fatalf("EncodeEdifact rejected valid input")
	}
	if len(packed) != 3 {
		t.Fatalf("4 EDIFACT values should pack into 3 bytes, got %d", len(packed))
	}

	unpacked := UnpackEdifact(packed[0], packed[1], packed[2])
	for i, v := range unpacked {
		got := CharForEdifact(v)
		if got != in[i] {
			t.Fatalf("value %d decoded to %q, want %q", i, got, in[i])
		}
	}
}

func TestEncodeDecodeEdifactPartialTriplet(t *testing.T) {
	in := []byte{'X', 'Y'}
	packed, ok := EncodeEdifact(in)
	if !ok {
		t.Fatalf("EncodeEdifact rejected valid input")
	}
	if len(packed) != 2 {
		t.Fatalf("2 EDIFACT values should pack into 2 bytes, got %d", len(packed))
	}
	// Pad a third byte of zeros to exercise the shared unpack routine; only
	// the first two unpacked values are meaningful here.
	unpacked := UnpackEdifact(packed[0], packed[1], 0)
	if CharForEdifact(unpacked[0]) != 'X' || CharForEdifact(unpacked[1]) != 'Y' {
		t.Fatalf("partial triplet decoded to %q %q, want X Y", CharForEdifact(unpacked[0]), CharForEdifact(unpacked[1]))
	}
}
