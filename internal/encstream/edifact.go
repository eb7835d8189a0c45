package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// encodeNextChunkEdifact is EncodeNextChunkEdifact.
func encodeNextChunkEdifact(s *Stream) {
	if !s.hasNext() {
		return
	}

	value := s.peekNext()
	if s.Status != Encoding {
		return
	}
	if s.FNC1 != Undefined && int(value) == s.FNC1 {
		encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
		if s.Status != Encoding {
			return
		}
		s.advanceNext()
		if s.Status != Encoding {
			return
		}
		appendValueAscii(s, scheme.FNC1)
		return
	}

	value = s.advanceNext()
	if s.Status != Encoding {
		return
	}
	appendValueEdifact(s, value)
}

// appendValueEdifact is AppendValueEdifact: fold one 6-bit EDIFACT value
// into the running 3-bytes-per-4-values bit packing.
func appendValueEdifact(s *Stream, value byte) {
	if s.CurrentScheme != scheme.Edifact {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	// 31 is the unlatch value, appended through this same path by
	// encodeChangeScheme; everything else below 32 is unencodable.
	if value < 31 || value > 94 {
		s.markInvalid(ErrUnsupportedCharacter)
		return
	}

	edifactValue := (value & 0x3f) << 2

	switch s.ChainValueCount % 4 {
	case 0:
		s.outputAppend(edifactValue)
	case 1:
		prev := s.outputRemoveLast()
		if s.Status != Encoding {
			return
		}
		s.outputAppend(prev | (edifactValue >> 6))
		if s.Status != Encoding {
			return
		}
		s.outputAppend(edifactValue << 2)
	case 2:
		prev := s.outputRemoveLast()
		if s.Status != Encoding {
			return
		}
		s.outputAppend(prev | (edifactValue >> 4))
		if s.Status != Encoding {
			return
		}
		s.outputAppend(edifactValue << 4)
	case 3:
		prev := s.outputRemoveLast()
		if s.Status != Encoding {
			return
		}
		s.outputAppend(prev | (edifactValue >> 2))
	}
	if s.Status != Encoding {
		return
	}
	s.ChainValueCount++
}

// completeIfDoneEdifact is CompleteIfDoneEdifact.
func completeIfDoneEdifact(s *Stream, request symbolsize.Size) {
	if s.Status == Complete {
		return
	}

	cleanBoundary := s.ChainValueCount%4 == 0

	if cleanBoundary {
		outputTmp := encodeTmpRemainingInAscii(s, 3)

		if len(outputTmp) < 3 {
			sizeIdx := findSymbolSize(len(s.Output)+len(outputTmp), request)
			if sizeIdx == symbolsize.Undefined {
				s.markInvalid(ErrUnknown)
				return
			}
			remaining := remainingSymbolCapacity(len(s.Output), sizeIdx)

			if remaining < 3 && len(outputTmp) <= remaining {
				encodeChangeScheme(s, scheme.ASCII, unlatchImplicit)
				if s.Status != Encoding {
					return
				}
				for _, v := range outputTmp {
					appendValueAscii(s, v)
					if s.Status != Encoding {
						return
					}
				}
				s.InputNext = len(s.Input)
				padRemainingInAscii(s, sizeIdx)
				if s.Status != Encoding {
					return
				}
				s.markComplete(sizeIdx)
				return
			}
		}
	}

	if !s.hasNext() {
		sizeIdx := findSymbolSize(len(s.Output), request)
		if sizeIdx == symbolsize.Undefined {
			s.markInvalid(ErrUnknown)
			return
		}
		remaining := remainingSymbolCapacity(len(s.Output), sizeIdx)

		if !cleanBoundary || remaining > 0 {
			encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
			if s.Status != Encoding {
				return
			}
			sizeIdx = findSymbolSize(len(s.Output), request)
			if sizeIdx == symbolsize.Undefined {
				s.markInvalid(ErrUnknown)
				return
			}
			padRemainingInAscii(s, sizeIdx)
			if s.Status != Encoding {
				return
			}
		}
		s.markComplete(sizeIdx)
	}
}
