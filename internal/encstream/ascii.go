package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// asciiOption mirrors DmtxEncodeNormal/Compact/Full: whether
// encodeNextChunkAscii may collapse adjacent digit pairs.
type asciiOption int

const (
	encodeNormal asciiOption = iota
	encodeCompact
	encodeFull
)

// encodeNextChunkAscii is EncodeNextChunkAscii: consume one (or, when two
// digits are adjacent under Normal/Compact, two) input byte(s) and append
// the matching ASCII codeword(s).
func encodeNextChunkAscii(s *Stream, option asciiOption) {
	if !s.hasNext() {
		return
	}

	v0 := s.advanceNext()
	if s.Status != Encoding {
		return
	}

	var v1 byte
	compactDigits := false

	if (option == encodeCompact || option == encodeNormal) && s.hasNext() {
		v1 = s.peekNext()
		if s.Status != Encoding {
			return
		}
		if s.FNC1 != Undefined && int(v1) == s.FNC1 {
			v1 = 0
			compactDigits = false
		} else {
			compactDigits = isDigit(v0) && isDigit(v1)
		}
	} else if option != encodeCompact {
		v1 = 0
		compactDigits = false
	}

	switch {
	case compactDigits:
		s.advanceNext()
		if s.Status != Encoding {
			return
		}
		appendValueAscii(s, 10*(v0-'0')+(v1-'0')+130)
	case option == encodeCompact:
		s.markInvalid(ErrCantCompactNonDigits)
	case s.FNC1 != Undefined && int(v0) == s.FNC1:
		appendValueAscii(s, scheme.FNC1)
	case v0 < 128:
		appendValueAscii(s, v0+1)
	default:
		appendValueAscii(s, scheme.UpperShift)
		if s.Status != Encoding {
			return
		}
		appendValueAscii(s, v0-127)
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// completeIfDoneAscii is CompleteIfDoneAscii.
func completeIfDoneAscii(s *Stream, request symbolsize.Size) {
	if s.Status == Complete {
		return
	}
	if s.hasNext() {
		return
	}
	sizeIdx := findSymbolSize(len(s.Output), request)
	if sizeIdx == symbolsize.Undefined {
		s.markInvalid(ErrUnknown)
		return
	}
	padRemainingInAscii(s, sizeIdx)
	if s.Status != Encoding {
		return
	}
	s.markComplete(sizeIdx)
}

// padRemainingInAscii is PadRemainingInAscii: fill the rest of the symbol
// with pad codewords, the first unrandomized and the rest obfuscated by
// position.
func padRemainingInAscii(s *Stream, sizeIdx symbolsize.Size) {
	if s.CurrentScheme != scheme.ASCII {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	remaining := remainingSymbolCapacity(len(s.Output), sizeIdx)

	if remaining > 0 {
		s.outputAppend(scheme.Pad)
		remaining--
	}
	for remaining > 0 {
		s.outputAppend(scheme.Randomize253(scheme.Pad, len(s.Output)+1))
		remaining--
	}
}

// encodeTmpRemainingInAscii is EncodeTmpRemainingInAscii: speculatively
// encode the stream's remaining input as ASCII, stopping once at least
// capacity codewords have been produced or the input runs out, without
// touching s itself, so callers can decide whether switching to ASCII now
// fits the remaining symbol capacity.
func encodeTmpRemainingInAscii(s *Stream, capacity int) []byte {
	tmp := &Stream{
		Input:     s.Input,
		InputNext: s.InputNext,
		FNC1:      s.FNC1,
		SizeIdx:   symbolsize.Undefined,
	}
	for len(tmp.Output) < capacity && tmp.hasNext() {
		encodeNextChunkAscii(tmp, encodeNormal)
		if tmp.Status != Encoding {
			break
		}
	}
	return tmp.Output
}
