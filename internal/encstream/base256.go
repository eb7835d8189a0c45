package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// encodeNextChunkBase256 is EncodeNextChunkBase256.
func encodeNextChunkBase256(s *Stream) {
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
	appendValueBase256(s, value)
}

// appendValueBase256 is AppendValueBase256.
func appendValueBase256(s *Stream, value byte) {
	if s.CurrentScheme != scheme.Base256 {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	s.outputAppend(scheme.Randomize255(value, len(s.Output)+1))
	if s.Status != Encoding {
		return
	}
	s.ChainValueCount++

	updateBase256ChainHeader(s, symbolsize.Undefined)
}

// completeIfDoneBase256 is CompleteIfDoneBase256: checks the "perfect
// fit" special case (a 1-byte header because the chain runs exactly to
// the end of the symbol) before falling back to the normal
// unlatch-and-pad path.
func completeIfDoneBase256(s *Stream, request symbolsize.Size) {
	if s.Status == Complete {
		return
	}
	if s.hasNext() {
		return
	}

	headerByteCount := s.ChainWordCount - s.ChainValueCount

	if headerByteCount == 2 {
		outputLength := len(s.Output) - 1
		sizeIdx := findSymbolSize(outputLength, request)
		if sizeIdx != symbolsize.Undefined {
			if remainingSymbolCapacity(outputLength, sizeIdx) == 0 {
				updateBase256ChainHeader(s, sizeIdx)
				if s.Status != Encoding {
					return
				}
				s.markComplete(sizeIdx)
				return
			}
		}
	}

	sizeIdx := findSymbolSize(len(s.Output), request)
	if sizeIdx == symbolsize.Undefined {
		s.markInvalid(ErrUnknown)
		return
	}
	encodeChangeScheme(s, scheme.ASCII, unlatchImplicit)
	if s.Status != Encoding {
		return
	}
	padRemainingInAscii(s, sizeIdx)
	if s.Status != Encoding {
		return
	}
	s.markComplete(sizeIdx)
}

// updateBase256ChainHeader is UpdateBase256ChainHeader: (re)writes the
// Base256 chain's 1- or 2-byte length header, growing/shrinking it as the
// chain crosses the 249-byte threshold or reaches a perfect-fit end.
func updateBase256ChainHeader(s *Stream, perfectSizeIdx symbolsize.Size) {
	outputLength := s.ChainValueCount
	headerIndex := len(s.Output) - s.ChainWordCount
	headerByteCount := s.ChainWordCount - s.ChainValueCount
	perfectFit := perfectSizeIdx != symbolsize.Undefined

	if perfectFit {
		if symbolsize.Get(perfectSizeIdx).SymbolDataWords != len(s.Output)-1 {
			s.markFatal(ErrUnknown)
			return
		}
	}

	switch {
	case headerByteCount == 0 && s.ChainWordCount == 0:
		s.outputAppend(0)
		if s.Status != Encoding {
			return
		}
		headerByteCount++
	case !perfectFit && headerByteCount == 1 && outputLength > 249:
		base256ChainInsertFirst(s)
		if s.Status != Encoding {
			return
		}
		headerByteCount++
	case perfectFit && headerByteCount == 2:
		base256ChainRemoveFirst(s)
		if s.Status != Encoding {
			return
		}
		headerByteCount--
	}

	switch {
	case !perfectFit && headerByteCount == 1 && outputLength <= 249:
		s.outputSet(headerIndex, scheme.Randomize255(byte(outputLength), headerIndex+1))
	case !perfectFit && headerByteCount == 2 && outputLength > 249:
		s.outputSet(headerIndex, scheme.Randomize255(byte(outputLength/250+249), headerIndex+1))
		if s.Status != Encoding {
			return
		}
		s.outputSet(headerIndex+1, scheme.Randomize255(byte(outputLength%250), headerIndex+2))
	case perfectFit && headerByteCount == 1:
		s.outputSet(headerIndex, scheme.Randomize255(0, headerIndex+1))
	default:
		s.markFatal(ErrUnknown)
	}
}

// base256ChainInsertFirst is Base256OutputChainInsertFirst: grows the
// header to 2 bytes, re-scrambling every following chain byte since the
// randomizer is position-dependent.
func base256ChainInsertFirst(s *Stream) {
	chainStart := len(s.Output) - s.ChainWordCount
	s.Output = append(s.Output, 0)
	for i := len(s.Output) - 1; i > chainStart; i-- {
		v := scheme.UnRandomize255(s.Output[i-1], i)
		s.Output[i] = scheme.Randomize255(v, i+1)
	}
	s.ChainWordCount++
}

// base256ChainRemoveFirst is Base256OutputChainRemoveFirst: the perfect-fit
// shrink path, symmetric with base256ChainInsertFirst.
func base256ChainRemoveFirst(s *Stream) {
	chainStart := len(s.Output) - s.ChainWordCount
	for i := chainStart; i < len(s.Output)-1; i++ {
		v := scheme.UnRandomize255(s.Output[i+1], i+2)
		s.Output[i] = scheme.Randomize255(v, i+1)
	}
	s.Output = s.Output[:len(s.Output)-1]
	s.ChainWordCount--
}
