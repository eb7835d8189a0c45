package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// pushCTXValues expands one input byte into its C40/Text/X12 values (or
// fails for X12's fixed character set), mirroring PushCTXValues.
func pushCTXValues(values []int, b byte, id scheme.ID, fnc1 int) ([]int, bool) {
	if id == scheme.X12 {
		v, ok := scheme.ValuesForByteX12(b)
		if !ok {
			return values, false
		}
		return append(values, v), true
	}
	vs, ok := scheme.ValuesForByteCTX(b, id == scheme.Text, fnc1)
	if !ok {
		return values, false
	}
	return append(values, vs...), true
}

// encodeNextChunkCTX is EncodeNextChunkCTX: consume input bytes, expanding
// each into C40/Text/X12 values, and flush complete triplets as they
// accumulate. X12 additionally special-cases FNC1 mid-chunk, since X12
// partial blocks can't be unlatched cleanly.
func encodeNextChunkCTX(s *Stream, request symbolsize.Size) {
	var values []int

	for s.hasNext() {
		if s.CurrentScheme == scheme.X12 {
			next := s.peekNext()
			if s.Status != Encoding {
				return
			}
			if s.FNC1 != Undefined && int(next) == s.FNC1 {
				encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
				if s.Status != Encoding {
					return
				}
				rewind := len(values) % 3
				for i := 0; i < rewind; i++ {
					s.advancePrev()
				}
				for i := 0; i < rewind; i++ {
					v := s.advanceNext()
					if s.Status != Encoding {
						return
					}
					appendValueAscii(s, v+1)
					if s.Status != Encoding {
						return
					}
				}
				s.advanceNext()
				if s.Status != Encoding {
					return
				}
				appendValueAscii(s, scheme.FNC1)
				return
			}
		}

		inputValue := s.advanceNext()
		if s.Status != Encoding {
			return
		}

		var ok bool
		values, ok = pushCTXValues(values, inputValue, s.CurrentScheme, s.FNC1)
		if !ok {
			s.markInvalid(ErrUnsupportedCharacter)
			return
		}

		for len(values) >= 3 {
			appendValuesCTX(s, values[0], values[1], values[2])
			if s.Status != Encoding {
				return
			}
			values = values[3:]
		}

		if len(values) == 0 {
			break
		}
	}

	if !s.hasNext() && len(values) > 0 {
		if s.CurrentScheme == scheme.X12 {
			completePartialX12(s, values, request)
		} else {
			completePartialC40Text(s, values, request)
		}
	}
}

// appendValuesCTX is AppendValuesCTX: pack three values into two
// codewords and append them.
func appendValuesCTX(s *Stream, v0, v1, v2 int) {
	if !isCTX(s.CurrentScheme) {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	cw0, cw1 := scheme.PackTriplet(scheme.ProtocolValue(v0), scheme.ProtocolValue(v1), scheme.ProtocolValue(v2))
	s.outputAppend(cw0)
	if s.Status != Encoding {
		return
	}
	s.outputAppend(cw1)
	if s.Status != Encoding {
		return
	}
	s.ChainValueCount += 3
}

// appendUnlatchCTX is AppendUnlatchCTX.
func appendUnlatchCTX(s *Stream) {
	if !isCTX(s.CurrentScheme) {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	if s.ChainValueCount%3 != 0 {
		s.markInvalid(ErrNotOnByteBoundary)
		return
	}
	s.outputAppend(scheme.CTXUnlatch)
	if s.Status != Encoding {
		return
	}
	s.ChainValueCount++
}

// completeIfDoneCTX is CompleteIfDoneCTX.
func completeIfDoneCTX(s *Stream, request symbolsize.Size) {
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
	remaining := remainingSymbolCapacity(len(s.Output), sizeIdx)

	if remaining > 0 {
		encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
		if s.Status != Encoding {
			return
		}
		padRemainingInAscii(s, sizeIdx)
		if s.Status != Encoding {
			return
		}
	}
	s.markComplete(sizeIdx)
}

// completePartialC40Text is CompletePartialC40Text: resolve the 1-or-2
// leftover C40/Text values against the three possible end-of-symbol
// conditions (b)/(d)/(c) documented there.
func completePartialC40Text(s *Stream, values []int, request symbolsize.Size) {
	sizeIdx1 := findSymbolSize(len(s.Output)+1, request)
	sizeIdx2 := findSymbolSize(len(s.Output)+2, request)
	remaining1 := remainingSymbolCapacity(len(s.Output), sizeIdx1)
	remaining2 := remainingSymbolCapacity(len(s.Output), sizeIdx2)

	if len(values) == 2 && remaining2 == 2 {
		// (b): pad the final triplet value with Shift1.
		appendValuesCTX(s, values[0], values[1], scheme.Shift1)
		if s.Status != Encoding {
			return
		}
		s.markComplete(sizeIdx2)
		return
	}

	s.advancePrev()
	if s.Status != Encoding {
		return
	}
	lastInput := s.peekNext()
	if s.Status != Encoding {
		return
	}

	testValues, _ := pushCTXValues(nil, lastInput, s.CurrentScheme, s.FNC1)
	if len(values) == 2 && len(testValues) == 1 {
		s.advancePrev()
		if s.Status != Encoding {
			return
		}
	}

	outputTmp := encodeTmpRemainingInAscii(s, 4)

	if len(outputTmp) == 1 && remaining1 == 1 {
		// (d): implicit unlatch, single ASCII codeword exactly fills the
		// symbol.
		encodeChangeScheme(s, scheme.ASCII, unlatchImplicit)
		if s.Status != Encoding {
			return
		}
		appendValueAscii(s, outputTmp[0])
		if s.Status != Encoding {
			return
		}
		s.InputNext = len(s.Input)
		s.markComplete(sizeIdx1)
		return
	}

	// (c): finish in ASCII with an explicit unlatch.
	encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
	if s.Status != Encoding {
		return
	}
	for _, v := range outputTmp {
		appendValueAscii(s, v)
		if s.Status != Encoding {
			return
		}
	}

	sizeIdx1 = findSymbolSize(len(s.Output), request)
	if sizeIdx1 == symbolsize.Undefined {
		s.markInvalid(ErrUnknown)
		return
	}
	padRemainingInAscii(s, sizeIdx1)
	if s.Status != Encoding {
		return
	}
	s.InputNext = len(s.Input)
	s.markComplete(sizeIdx1)
}

// completePartialX12 is CompletePartialX12: X12 allows no partial-chunk
// padding at all, so the leftover 1-2 values are always re-encoded in
// ASCII.
func completePartialX12(s *Stream, values []int, request symbolsize.Size) {
	for range values {
		s.advancePrev()
		if s.Status != Encoding {
			return
		}
	}

	outputTmp := encodeTmpRemainingInAscii(s, 2)

	sizeIdx := findSymbolSize(len(s.Output)+1, request)
	remaining := remainingSymbolCapacity(len(s.Output), sizeIdx)

	if len(outputTmp) == 1 && remaining == 1 {
		encodeChangeScheme(s, scheme.ASCII, unlatchImplicit)
		if s.Status != Encoding {
			return
		}
		appendValueAscii(s, outputTmp[0])
		if s.Status != Encoding {
			return
		}
		s.InputNext = len(s.Input)
		s.markComplete(sizeIdx)
		return
	}

	encodeChangeScheme(s, scheme.ASCII, unlatchExplicit)
	if s.Status != Encoding {
		return
	}
	for _, v := range outputTmp {
		appendValueAscii(s, v)
		if s.Status != Encoding {
			return
		}
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
	s.InputNext = len(s.Input)
	s.markComplete(sizeIdx)
}

// partialX12ChunkRemains is PartialX12ChunkRemains: simulate encoding the
// rest of the input as X12 to see whether 1 or 2 values would be stranded
// at the end (which X12 cannot unlatch around), without touching s.
func partialX12ChunkRemains(s *Stream) bool {
	var values []int
	next := s.InputNext

	for next < len(s.Input) {
		b := s.Input[next]
		next++
		var ok bool
		values, ok = pushCTXValues(values, b, scheme.X12, s.FNC1)
		if !ok {
			return false
		}
		if len(values) >= 3 {
			return false
		}
	}
	return len(values) > 0
}
