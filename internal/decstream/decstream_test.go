package decstream

import (
	"bytes"
	"testing"

	"github.com/dmtxgo/dmtx/internal/encstream"
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

func roundTrip(t *testing.T, message string, id scheme.ID) {
	t.Helper()
	codewords, sizeIdx, err := encstream.EncodeSingleScheme([]byte(message), symbolsize.SquareAuto, id, encstream.Undefined)
	if err != nil {
		t.Fatalf("EncodeSingleScheme(%v, %q): %v", id, message, err)
	}
	dataWords := symbolsize.Get(sizeIdx).SymbolDataWords
	if len(codewords) < dataWords {
		t.Fatalf("encoded output shorter than symbol data word count")
	}

	got, err := Decode(codewords[:dataWords], Undefined)
	if err != nil {
		t.Fatalf("Decode(%v, %q): %v", id, message, err)
	}
	if !bytes.Equal(got, []byte(message)) {
		t.Fatalf("round trip %v %q -> %v", id, message, got)
	}
}

func TestRoundTripASCII(t *testing.T) {
	roundTrip(t, "Hello, World! 123456", scheme.ASCII)
}

func TestRoundTripC40(t *testing.T) {
	roundTrip(t, "THE QUICK BROWN FOX", scheme.C40)
}

func TestRoundTripText(t *testing.T) {
	roundTrip(t, "the quick brown fox", scheme.Text)
}

func TestRoundTripX12(t *testing.T) {
	roundTrip(t, "ABC 123 DEF 456", scheme.X12)
}

func TestRoundTripEdifact(t *testing.T) {
	roundTrip(t, "ABC DEF 123 !\"#$", scheme.Edifact)
}

func TestRoundTripBase256(t *testing.T) {
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i * 7)
	}
	codewords, sizeIdx, err := encstream.EncodeSingleScheme(data, symbolsize.SquareAuto, scheme.Base256, encstream.Undefined)
	if err != nil {
		t.Fatalf("EncodeSingleScheme(Base256): %v", err)
	}
	dataWords := symbolsize.Get(sizeIdx).SymbolDataWords
	got, err := Decode(codewords[:dataWords], Undefined)
	if err != nil {
		t.Fatalf("Decode(Base256): %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("base256 round trip mismatch: got %v, want %v", got, data)
	}
}

func TestRoundTripBest(t *testing.T) {
	messages := []string{
		"Mixed Content 123 with spaces",
		"ALLCAPSNUMBERS123456",
		"Punctuation! @#$%^&*()",
	}
	for _, msg := range messages {
		codewords, sizeIdx, err := encstream.Best([]byte(msg), symbolsize.SquareAuto, encstream.Undefined)
		if err != nil {
			t.Fatalf("Best(%q): %v", msg, err)
		}
		dataWords := symbolsize.Get(sizeIdx).SymbolDataWords
		got, err := Decode(codewords[:dataWords], Undefined)
		if err != nil {
			t.Fatalf("Decode(%q): %v", msg, err)
		}
		if !bytes.Equal(got, []byte(msg)) {
			t.Fatalf("Best round trip %q -> %v", msg, got)
		}
	}
}

func TestDecodeMacroHeader(t *testing.T) {
	code := []byte{scheme.Macro05, 'H' + 1, 'i' + 1}
	got, err := Decode(code, Undefined)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := "[)>\x1E05\x1DHi\x1E\x04"
	if string(got) != want {
		t.Fatalf("Decode(macro05) = %q, want %q", got, want)
	}
}

// The Base256 length header grows from 1 byte to 2 at a 250-byte chain;
// both sides of the threshold must survive the re-randomization the
// header insertion forces on every following chain byte.
func TestRoundTripBase256HeaderBoundary(t *testing.T) {
	for _, n := range []int{248, 249, 250, 251, 300} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*31 + 7)
		}
		codewords, sizeIdx, err := encstream.EncodeSingleScheme(data, symbolsize.SquareAuto, scheme.Base256, encstream.Undefined)
		if err != nil {
			t.Fatalf("EncodeSingleScheme(Base256, %d bytes): %v", n, err)
		}
		dataWords := symbolsize.Get(sizeIdx).SymbolDataWords
		got, err := Decode(codewords[:dataWords], Undefined)
		if err != nil {
			t.Fatalf("Decode(Base256, %d bytes): %v", n, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("base256 %d-byte round trip mismatch", n)
		}
	}
}

// A chain that exactly fills the symbol compresses its header back to a
// single zero-valued byte meaning "runs to the end of the symbol".
func TestRoundTripBase256PerfectFit(t *testing.T) {
	// 278 data bytes + latch + what would be a 2-byte header is one
	// codeword over a 64x64 symbol's 280 data words, which is exactly the
	// perfect-fit shrink condition.
	data := make([]byte, 278)
	for i := range data {
		data[i] = byte(i * 13)
	}
	codewords, sizeIdx, err := encstream.EncodeSingleScheme(data, symbolsize.SquareAuto, scheme.Base256, encstream.Undefined)
	if err != nil {
		t.Fatalf("EncodeSingleScheme: %v", err)
	}
	attrs := symbolsize.Get(sizeIdx)
	if len(codewords) != attrs.SymbolDataWords {
		t.Fatalf("perfect fit produced %d codewords, want %d", len(codewords), attrs.SymbolDataWords)
	}
	got, err := Decode(codewords, Undefined)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("perfect-fit round trip mismatch")
	}
}
