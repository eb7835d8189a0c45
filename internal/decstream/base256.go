package decstream

import (
	"errors"

	"github.com/dmtxgo/dmtx/internal/scheme"
)

// ErrBase256Length is returned when a Base256 chain's length header claims
// more data bytes than remain in the codeword vector.
var ErrBase256Length = errors.New("decstream: base256 length header overruns codeword data")

// decodeBase256 is DecodeSchemeBase256: read the 1- or 2-byte unrandomized
// length header, then unrandomize that many following bytes (or everything
// to the end of code, when the header signals "runs to end").
func decodeBase256(code []byte, ptr int, out []byte) (int, []byte, error) {
	if ptr >= len(code) {
		return ptr, out, nil
	}

	hasSecond := ptr+1 < len(code)
	var b1 byte
	if hasSecond {
		b1 = code[ptr+1]
	}
	dataLen, headerBytes, runsToEnd := scheme.DecodeBase256Header(code[ptr], ptr+1, hasSecond, b1)
	ptr += headerBytes

	ptrEnd := len(code)
	if !runsToEnd {
		ptrEnd = ptr + dataLen
	}
	if ptrEnd > len(code) {
		return ptr, out, ErrBase256Length
	}

	for ptr < ptrEnd {
		out = append(out, scheme.UnRandomize255(code[ptr], ptr+1))
		ptr++
	}
	return ptr, out, nil
}
