package scheme

import "testing"

func TestRandomizeUnrandomize255RoundTrip(t *testing.T) {
	for pos := 1; pos < 300; pos += 7 {
		for v := 0; v < 256; v += 17 {
			r := Randomize255(byte(v), pos)
			back := UnRandomize255(r, pos)
			if back != byte(v) {
				t.Fatalf("position %d value %d: round trip gave %d", pos, v, back)
			}
		}
	}
}

func TestEncodeDecodeBase256Chain(t *testing.T) {
	data := []byte{0, 1, 2, 250, 251, 252, 253, 254, 255}
	const position = 3
	packed := EncodeBase256(data, position)
	back := DecodeBase256(packed, position)
	if len(back) != len(data) {
		t.Fatalf("decoded %d bytes, want %d", len(back), len(data))
	}
	for i := range data {
		if back[i] != data[i] {
			t.Fatalf("byte %d = %d, want %d", i, back[i], data[i])
		}
	}
}

func TestBase256HeaderShortChain(t *testing.T) {
	header := EncodeBase256Header(42, 0, false)
	if len(header) != 1 {
		t.Fatalf("header for length 42 = %d bytes, want 1", len(header))
	}
	dataLen, headerBytes, runsToEnd := DecodeBase256Header(header[0], 1, false, 0)
	if runsToEnd || headerBytes != 1 || dataLen != 42 {
		t.Fatalf("decoded header = (%d, %d, %v), want (42, 1, false)", dataLen, headerBytes, runsToEnd)
	}
}

func TestBase256HeaderLongChain(t *testing.T) {
	const length = 400
	header := EncodeBase256Header(length, 0, false)
	if len(header) != 2 {
		t.Fatalf("header for length %d = %d bytes, want 2", length, len(header))
	}
	dataLen, headerBytes, runsToEnd := DecodeBase256Header(header[0], 1, true, header[1])
	if runsToEnd || headerBytes != 2 || dataLen != length {
		t.Fatalf("decoded header = (%d, %d, %v), want (%d, 2, false)", dataLen, headerBytes, runsToEnd, length)
	}
}

func TestBase256HeaderPerfectFit(t *testing.T) {
	header := EncodeBase256Header(10, 0, true)
	if len(header) != 1 {
		t.Fatalf("perfect-fit header = %d bytes, want 1", len(header))
	}
	_, headerBytes, runsToEnd := DecodeBase256Header(header[0], 1, false, 0)
	if !runsToEnd || headerBytes != 1 {
		t.Fatalf("perfect-fit header did not decode as runs-to-end")
	}
}
