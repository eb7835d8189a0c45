package encstream

import (
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// unlatchType mirrors DmtxUnlatchExplicit/DmtxUnlatchImplicit: whether
// leaving the current scheme needs an explicit unlatch codeword written
// first.
type unlatchType int

const (
	unlatchExplicit unlatchType = iota
	unlatchImplicit
)

// EncodeSingleScheme drives stream to completion in exactly one
// encodation scheme, per EncodeSingleScheme. It returns the produced
// codeword vector and chosen size, or an error if the stream never
// reaches Complete with all input consumed.
func EncodeSingleScheme(input []byte, request symbolsize.Size, id scheme.ID, fnc1 int) ([]byte, symbolsize.Size, error) {
	s := New(input, fnc1)

	// 1st FNC1 special case: encode before the scheme switch, matching
	// EncodeSingleScheme's pre-loop check.
	if fnc1 != Undefined && len(input) > 0 && int(input[0]) == fnc1 {
		s.advanceNext()
		appendValueAscii(s, scheme.FNC1)
	}

	for s.Status == Encoding {
		encodeNextChunk(s, id, request)
	}

	if s.Status != Complete || s.hasNext() {
		if s.Reason != nil {
			return nil, 0, s.Reason
		}
		return nil, 0, ErrUnknown
	}
	return s.Output, s.SizeIdx, nil
}

// encodeNextChunk distributes work to the scheme-specific implementation,
// per EncodeNextChunk, including the guard that refuses to latch into X12
// when doing so would leave an un-unlatchable partial chunk.
func encodeNextChunk(s *Stream, target scheme.ID, request symbolsize.Size) {
	if s.CurrentScheme != scheme.X12 && target == scheme.X12 {
		if partialX12ChunkRemains(s) {
			target = scheme.ASCII
		}
	}

	if s.CurrentScheme != target {
		encodeChangeScheme(s, target, unlatchExplicit)
		if s.Status != Encoding || s.CurrentScheme != target {
			return
		}
	}

	if target == scheme.Edifact {
		completeIfDoneEdifact(s, request)
		if s.Status != Encoding {
			return
		}
	}

	switch s.CurrentScheme {
	case scheme.ASCII:
		encodeNextChunkAscii(s, encodeNormal)
		if s.Status != Encoding {
			return
		}
		completeIfDoneAscii(s, request)
	case scheme.C40, scheme.Text, scheme.X12:
		encodeNextChunkCTX(s, request)
		if s.Status != Encoding {
			return
		}
		completeIfDoneCTX(s, request)
	case scheme.Edifact:
		encodeNextChunkEdifact(s)
		if s.Status != Encoding {
			return
		}
		completeIfDoneEdifact(s, request)
	case scheme.Base256:
		encodeNextChunkBase256(s)
		if s.Status != Encoding {
			return
		}
		completeIfDoneBase256(s, request)
	default:
		s.markFatal(ErrUnknown)
	}
}

// encodeChangeScheme is EncodeChangeScheme: unlatch out of the current
// scheme (through ASCII, its only hub) and latch into target.
func encodeChangeScheme(s *Stream, target scheme.ID, ut unlatchType) {
	if s.CurrentScheme == target {
		return
	}

	switch s.CurrentScheme {
	case scheme.C40, scheme.Text, scheme.X12:
		if ut == unlatchExplicit {
			appendUnlatchCTX(s)
			if s.Status != Encoding {
				return
			}
		}
	case scheme.Edifact:
		if ut == unlatchExplicit {
			appendValueEdifact(s, scheme.EdifactUnlatch)
			if s.Status != Encoding {
				return
			}
		}
	}
	s.CurrentScheme = scheme.ASCII

	if lat, ok := target.LatchCodeword(); ok {
		appendValueAscii(s, lat)
		if s.Status != Encoding {
			return
		}
	}
	s.CurrentScheme = target

	s.ChainWordCount = 0
	s.ChainValueCount = 0

	if target == scheme.Base256 {
		updateBase256ChainHeader(s, symbolsize.Undefined)
	}
}

func appendValueAscii(s *Stream, v byte) {
	if s.CurrentScheme != scheme.ASCII {
		s.markFatal(ErrUnexpectedScheme)
		return
	}
	s.outputAppend(v)
	s.ChainValueCount++
}
