// Package encstream implements the ECC 200 encodation-scheme state machine:
// a stream object that consumes input bytes and produces codewords in
// exactly one encodation scheme at a time, switching schemes (and padding
// the remainder) according to the end-of-symbol rules in
// dmtxencode{ascii,c40textx12,edifact,base256}.c. EncodeSingleScheme drives
// a stream to completion in one fixed scheme; Best tries every scheme plus
// a greedy mixed-scheme heuristic and keeps the shortest valid result.
package encstream

import (
	"errors"

	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// Status mirrors DmtxStreamStatus: a stream is either still accepting
// input, has finished successfully, has rejected its input as unencodable,
// or has hit an internal invariant violation.
type Status int

const (
	Encoding Status = iota
	Complete
	Invalid
	Fatal
)

// Errors a stream can be marked with. These correspond to dmtxstatic.h's
// DmtxErrorMessage reasons used by StreamMarkInvalid/StreamMarkFatal.
var (
	ErrUnsupportedCharacter = errors.New("encstream: unsupported character for scheme")
	ErrCantCompactNonDigits = errors.New("encstream: cannot compact non-digit pair")
	ErrNotOnByteBoundary    = errors.New("encstream: unlatch attempted off byte boundary")
	ErrEmptyList            = errors.New("encstream: output chain underflow")
	ErrOutOfBounds          = errors.New("encstream: output index out of bounds")
	ErrUnexpectedScheme     = errors.New("encstream: operation invalid for current scheme")
	ErrUnknown              = errors.New("encstream: size could not be determined")
)

// Undefined marks an unset FNC1 input-byte value, matching DmtxUndefined.
const Undefined = -1

// Stream is the mutable encodation state threaded through every scheme's
// EncodeNextChunk/CompleteIfDone pair. Grounded on DmtxEncodeStream
// (dmtxencodestream.c's StreamInit and friends).
type Stream struct {
	Input           []byte
	InputNext       int
	Output          []byte
	CurrentScheme   scheme.ID
	ChainValueCount int
	ChainWordCount  int
	SizeIdx         symbolsize.Size
	Status          Status
	Reason          error
	FNC1            int
}

// New builds a fresh stream over input, starting in ASCII per StreamInit.
func New(input []byte, fnc1 int) *Stream {
	return &Stream{
		Input:   input,
		SizeIdx: symbolsize.Undefined,
		FNC1:    fnc1,
	}
}

func (s *Stream) markComplete(sizeIdx symbolsize.Size) {
	if s.Status == Encoding {
		s.SizeIdx = sizeIdx
		s.Status = Complete
	}
}

func (s *Stream) markInvalid(reason error) {
	s.Status = Invalid
	s.Reason = reason
}

func (s *Stream) markFatal(reason error) {
	s.Status = Fatal
	s.Reason = reason
}

func (s *Stream) hasNext() bool {
	return s.InputNext < len(s.Input)
}

func (s *Stream) peekNext() byte {
	if !s.hasNext() {
		s.markFatal(ErrOutOfBounds)
		return 0
	}
	return s.Input[s.InputNext]
}

func (s *Stream) advanceNext() byte {
	v := s.peekNext()
	if s.Status == Encoding {
		s.InputNext++
	}
	return v
}

func (s *Stream) advancePrev() {
	if s.InputNext > 0 {
		s.InputNext--
	} else {
		s.markFatal(ErrOutOfBounds)
	}
}

// outputAppend is StreamOutputChainAppend: push on the newest/last end,
// used whenever a scheme encodes one more output codeword.
func (s *Stream) outputAppend(v byte) {
	s.Output = append(s.Output, v)
	s.ChainWordCount++
}

// outputRemoveLast is StreamOutputChainRemoveLast, used only by EDIFACT's
// incremental 6-bits-into-8-bits packer to rewrite the in-progress byte.
func (s *Stream) outputRemoveLast() byte {
	if s.ChainWordCount == 0 {
		s.markFatal(ErrEmptyList)
		return 0
	}
	v := s.Output[len(s.Output)-1]
	s.Output = s.Output[:len(s.Output)-1]
	s.ChainWordCount--
	return v
}

func (s *Stream) outputSet(index int, v byte) {
	if index < 0 || index >= len(s.Output) {
		s.markFatal(ErrOutOfBounds)
		return
	}
	s.Output[index] = v
}

// findSymbolSize wraps symbolsize.Find, matching FindSymbolSize's thin
// shim over dmtxGetSymbolAttribute-based search.
func findSymbolSize(dataWordCount int, request symbolsize.Size) symbolsize.Size {
	return symbolsize.Find(dataWordCount, request)
}

// remainingSymbolCapacity is GetRemainingSymbolCapacity.
func remainingSymbolCapacity(outputLength int, sizeIdx symbolsize.Size) int {
	if sizeIdx == symbolsize.Undefined {
		return Undefined
	}
	return symbolsize.Get(sizeIdx).SymbolDataWords - outputLength
}

func isCTX(id scheme.ID) bool {
	return id == scheme.C40 || id == scheme.Text || id == scheme.X12
}
