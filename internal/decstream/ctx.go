package decstream

import "github.com/dmtxgo/dmtx/internal/scheme"

// decodeC40Text is DecodeSchemeC40Text: unpack codeword pairs into
// triplets of values and replay them through a CTXState, matching
// encstream's ValuesForByteCTX in reverse. An unlatch codeword (254) or
// fewer than 2 codewords remaining both end the chunk.
func decodeC40Text(code []byte, ptr int, out []byte, id scheme.ID, fnc1 int) (int, []byte) {
	text := id == scheme.Text
	var state scheme.CTXState

	for len(code)-ptr >= 2 {
		v0, v1, v2 := scheme.UnpackTriplet(code[ptr], code[ptr+1])
		ptr += 2

		for _, v := range [3]int{v0, v1, v2} {
			b, ok, isFNC1 := state.DecodeValue(v, text)
			if isFNC1 {
				if fnc1 != Undefined {
					out = append(out, byte(fnc1))
				}
				continue
			}
			if ok {
				out = append(out, b)
			}
		}

		if ptr < len(code) && code[ptr] == scheme.CTXUnlatch {
			return ptr + 1, out
		}
	}
	return ptr, out
}

// decodeX12 is DecodeSchemeX12: identical triplet unpacking to C40/Text,
// but X12 has no shift states.
func decodeX12(code []byte, ptr int, out []byte) (int, []byte) {
	for len(code)-ptr >= 2 {
		v0, v1, v2 := scheme.UnpackTriplet(code[ptr], code[ptr+1])
		ptr += 2

		for _, v := range [3]int{v0, v1, v2} {
			if b, ok := scheme.DecodeX12Value(v); ok {
				out = append(out, b)
			}
		}

		if ptr < len(code) && code[ptr] == scheme.CTXUnlatch {
			return ptr + 1, out
		}
	}
	return ptr, out
}
