package gf256

import "testing"

func TestMulIdentity(t *testing.T) {
	for a := 1; a < 256; a++ {
		if Mul(a, 1) != a {
			t.Fatalf("Mul(%d, 1) = %d, want %d", a, Mul(a, 1), a)
		}
	}
}

func TestMulZero(t *testing.T) {
	if Mul(37, 0) != 0 || Mul(0, 37) != 0 {
		t.Fatalf("Mul with 0 operand should be 0")
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		if Exp(Log(a)) != a {
			t.Fatalf("Exp(Log(%d)) = %d, want %d", a, Exp(Log(a)), a)
		}
	}
}

func TestEncodeDecodeNoErrors(t *testing.T) {
	nroots := 10
	genpoly := GeneratorPoly(nroots)
	data := []byte("the quick brown fox jumps")
	parity := make([]byte, nroots)
	Encode(data, genpoly, parity)

	block := append(append([]byte{}, data...), parity...)
	corrected := Decode(block, nroots)
	if corrected != 0 {
		t.Fatalf("Decode on clean block returned %d corrections, want 0", corrected)
	}
	if string(block[:len(data)]) != string(data) {
		t.Fatalf("clean block data mutated")
	}
}

func TestEncodeDecodeWithCorrectableErrors(t *testing.T) {
	nroots := 10 // corrects up to 5 byte errors
	genpoly := GeneratorPoly(nroots)
	data := []byte("DATAMATRIX2D BARCODE PAYLOAD!")
	parity := make([]byte, nroots)
	Encode(data, genpoly, parity)

	block := append(append([]byte{}, data...), parity...)
	want := append([]byte{}, block...)

	// Corrupt 5 bytes (the correctable limit for 10 ECC words).
	corruptIdx := []int{0, 3, 7, 15, len(data) + 1}
	for _, idx := range corruptIdx {
		block[idx] ^= 0xFF
	}

	corrected := Decode(block, nroots)
	if corrected != len(corruptIdx) {
		t.Fatalf("Decode corrected %d symbols, want %d", corrected, len(corruptIdx))
	}
	for i := range block {
		if block[i] != want[i] {
			t.Fatalf("byte %d = %#x after correction, want %#x", i, block[i], want[i])
		}
	}
}

func TestDecodeUncorrectableReturnsError(t *testing.T) {
	nroots := 10
	genpoly := GeneratorPoly(nroots)
	data := []byte("short payload for overflow test")
	parity := make([]byte, nroots)
	Encode(data, genpoly, parity)

	block := append(append([]byte{}, data...), parity...)
	// Corrupt more bytes than nroots/2 can correct.
	for i := 0; i < 9; i++ {
		block[i] ^= 0xFF
	}

	corrected := Decode(block, nroots)
	if corrected >= 0 {
		t.Fatalf("Decode on overwhelmed block returned %d, want -1", corrected)
	}
}
