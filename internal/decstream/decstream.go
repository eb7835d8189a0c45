// Package decstream interprets a decoded data-word codeword vector back
// into the original message bytes: the reverse of encstream, dispatching
// on each scheme's latch codeword exactly as DecodeDataStream does in
// dmtxdecodescheme.c.
package decstream

import "github.com/dmtxgo/dmtx/internal/scheme"

// Undefined marks an unset FNC1 substitution byte, matching DmtxUndefined.
const Undefined = -1

// Decode interprets code (the data-words prefix of a corrected codeword
// vector, i.e. not including RS parity) and returns the original message
// bytes. fnc1, when >= 0, is substituted for FNC1 codewords. Grounded on
// DecodeDataStream.
func Decode(code []byte, fnc1 int) ([]byte, error) {
	var out []byte
	ptr := 0

	macro := len(code) > 0 && (code[0] == scheme.Macro05 || code[0] == scheme.Macro06)
	if macro {
		out = pushMacroHeader(out, code[0])
	}

	for ptr < len(code) {
		enc := encodationScheme(code[ptr])
		if enc != scheme.ASCII {
			ptr++
		}

		var err error
		switch enc {
		case scheme.ASCII:
			ptr, out = decodeAscii(code, ptr, out, fnc1)
		case scheme.C40, scheme.Text:
			ptr, out = decodeC40Text(code, ptr, out, enc, fnc1)
		case scheme.X12:
			ptr, out = decodeX12(code, ptr, out)
		case scheme.Edifact:
			ptr, out = decodeEdifact(code, ptr, out)
		case scheme.Base256:
			ptr, out, err = decodeBase256(code, ptr, out)
		}
		if err != nil {
			return nil, err
		}
	}

	if macro {
		out = append(out, 30, 4) // ASCII RS, EOT
	}
	return out, nil
}

// encodationScheme is GetEncodationScheme: maps a latch codeword to the
// scheme it switches into, defaulting to ASCII for everything else.
func encodationScheme(cw byte) scheme.ID {
	switch cw {
	case scheme.LatchC40:
		return scheme.C40
	case scheme.LatchText:
		return scheme.Text
	case scheme.LatchX12:
		return scheme.X12
	case scheme.LatchEdifact:
		return scheme.Edifact
	case scheme.LatchBase256:
		return scheme.Base256
	default:
		return scheme.ASCII
	}
}

// pushMacroHeader is PushOutputMacroHeader: the "[)>\x1E05\x1D" /
// "[)>\x1E06\x1D" structured-append preamble that a Macro05/06 first
// codeword triggers.
func pushMacroHeader(out []byte, macroType byte) []byte {
	out = append(out, '[', ')', '>', 30, '0')
	if macroType == scheme.Macro05 {
		out = append(out, '5')
	} else {
		out = append(out, '6')
	}
	return append(out, 29) // ASCII GS
}
