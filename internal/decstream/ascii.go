package decstream

import "github.com/dmtxgo/dmtx/internal/scheme"

// decodeAscii is DecodeSchemeAscii: consume codewords until a scheme latch
// is reached, decoding upper-shifted bytes, digit pairs, FNC1 and pad
// codewords along the way. A pad codeword ends decoding immediately,
// since everything from there to the end of the symbol is padding.
func decodeAscii(code []byte, ptr int, out []byte, fnc1 int) (int, []byte) {
	upperShift := false

	for ptr < len(code) {
		cw := code[ptr]
		if enc := encodationScheme(cw); enc != scheme.ASCII {
			return ptr, out
		}
		ptr++

		switch {
		case upperShift:
			out = append(out, cw+127)
			upperShift = false
		case cw == scheme.UpperShift:
			upperShift = true
		case cw == scheme.Pad:
			return len(code), out
		case cw == scheme.FNC1:
			if fnc1 != Undefined {
				out = append(out, byte(fnc1))
			}
		case cw == scheme.Macro05, cw == scheme.Macro06:
			// Consumed silently: the Macro05/06 header text was already
			// emitted by pushMacroHeader for the very first codeword.
		case cw >= 1 && cw <= 128:
			out = append(out, cw-1)
		case cw >= 130 && cw <= 229:
			digits := int(cw) - 130
			out = append(out, byte(digits/10)+'0', byte(digits%10)+'0')
		}
	}
	return ptr, out
}
