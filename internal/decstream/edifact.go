package decstream

import "github.com/dmtxgo/dmtx/internal/scheme"

// decodeEdifact is DecodeSchemeEdifact: unpack 3 codewords into 4 six-bit
// values at a time, converting each to ASCII until the 0x1F unlatch
// sentinel appears or fewer than 3 codewords remain.
func decodeEdifact(code []byte, ptr int, out []byte) (int, []byte) {
	for len(code)-ptr >= 3 {
		unpacked := scheme.UnpackEdifact(code[ptr], code[ptr+1], code[ptr+2])

		for i, v := range unpacked {
			if i < 3 {
				ptr++
			}
			if v == int(scheme.EdifactUnlatch) {
				return ptr, out
			}
			out = append(out, scheme.CharForEdifact(v))
		}
	}
	return ptr, out
}
