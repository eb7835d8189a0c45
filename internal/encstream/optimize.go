package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// Best implements the AutoBest scheme: the shortest valid encoding
// across all six schemes. The original's dmtxencodeoptimize.c tracks 17
// parallel dynamic-programming states to find a true global optimum;
// here instead each single scheme is tried in full, plus one greedy
// mixed-scheme pass that switches into C40 for runs of 3+ C40-friendly
// bytes, and the shortest successfully completed result wins.
func Best(input []byte, request symbolsize.Size, fnc1 int) ([]byte, symbolsize.Size, error) {
	var bestOut []byte
	var bestSize symbolsize.Size
	var bestErr error = ErrUnknown
	found := false

	consider := func(out []byte, size symbolsize.Size, err error) {
		if err != nil {
			return
		}
		if !found || len(out) < len(bestOut) {
			bestOut, bestSize, bestErr = out, size, nil
			found = true
		}
	}

	for _, id := range []scheme.ID{scheme.ASCII, scheme.C40, scheme.Text, scheme.X12, scheme.Edifact, scheme.Base256} {
		out, size, err := EncodeSingleScheme(input, request, id, fnc1)
		consider(out, size, err)
	}

	out, size, err := encodeMixed(input, request, fnc1)
	consider(out, size, err)

	if !found {
		return nil, 0, bestErr
	}
	return bestOut, bestSize, nil
}

// encodeMixed drives the stream machine with a per-position target scheme
// chosen by classifyRun, switching into C40 for long-enough runs of
// C40-friendly bytes and falling back to ASCII everywhere else.
func encodeMixed(input []byte, request symbolsize.Size, fnc1 int) ([]byte, symbolsize.Size, error) {
	s := New(input, fnc1)

	if fnc1 != Undefined && len(input) > 0 && int(input[0]) == fnc1 {
		s.advanceNext()
		appendValueAscii(s, scheme.FNC1)
	}

	for s.Status == Encoding {
		target := scheme.ASCII
		if s.hasNext() {
			target = classifyRun(input, s.InputNext)
		}
		encodeNextChunk(s, target, request)
	}

	if s.Status != Complete || s.hasNext() {
		if s.Reason != nil {
			return nil, 0, s.Reason
		}
		return nil, 0, ErrUnknown
	}
	return s.Output, s.SizeIdx, nil
}

// classifyRun picks C40 when at least 3 consecutive bytes from pos are
// C40-friendly (uppercase letters, digits, or space - values that need no
// shift in C40's basic set) and the run isn't itself a long digit run
// (which ASCII's digit-pair packing already handles at 2 bytes/codeword,
// as cheap as C40's 3 bytes/2 codewords).
func classifyRun(input []byte, pos int) scheme.ID {
	if !isC40Friendly(input[pos]) {
		return scheme.ASCII
	}
	run := 0
	digits := 0
	for i := pos; i < len(input) && isC40Friendly(input[i]); i++ {
		run++
		if isDigit(input[i]) {
			digits++
		}
	}
	if run < 3 {
		return scheme.ASCII
	}
	if digits == run {
		// An all-digit run packs 2 bytes/codeword in ASCII, at least as
		// dense as C40's 3 bytes/2 codewords; prefer ASCII.
		return scheme.ASCII
	}
	return scheme.C40
}

func isC40Friendly(b byte) bool {
	return b == ' ' || isDigit(b) || (b >= 'A' && b <= 'Z')
}
