package scheme

// Randomize255 scrambles a Base256 data byte by its 1-based position in the
// overall output codeword stream, per Randomize255State. Applied to every
// Base256 byte including the length header, so the 256-valued alphabet
// never produces long runs of identical codewords.
func Randomize255(value byte, position int) byte {
	pseudoRandom := ((149 * position) % 255) + 1
	tmp := int(value) + pseudoRandom
	if tmp <= 255 {
		return byte(tmp)
	}
	return byte(tmp - 256)
}

// UnRandomize255 inverts Randomize255, per UnRandomize255State.
func UnRandomize255(value byte, position int) byte {
	pseudoRandom := ((149 * position) % 255) + 1
	tmp := int(value) - pseudoRandom
	if tmp < 0 {
		tmp += 256
	}
	return byte(tmp)
}

// EncodeBase256Header builds the 1- or 2-byte Base256 length header for a
// chain of outputLength data bytes starting at headerIndex (0-based
// position of the header's first byte within the full codeword stream).
// perfectFit requests the single zero-valued header byte that means "Base
// 256 continues to the end of the symbol", per UpdateBase256ChainHeader.
func EncodeBase256Header(outputLength, headerIndex int, perfectFit bool) []byte {
	if perfectFit {
		return []byte{Randomize255(0, headerIndex+1)}
	}
	if outputLength <= 249 {
		return []byte{Randomize255(byte(outputLength), headerIndex + 1)}
	}
	return []byte{
		Randomize255(byte(outputLength/250+249), headerIndex+1),
		Randomize255(byte(outputLength%250), headerIndex+2),
	}
}

// EncodeBase256 randomizes a chain of raw data bytes into Base256
// codewords, per AppendValueBase256. position is the 1-based codeword
// position of the first data byte (immediately after the header).
func EncodeBase256(data []byte, position int) []byte {
	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = Randomize255(v, position+i)
	}
	return out
}

// DecodeBase256Header reads the 1- or 2-byte length header starting at the
// codeword position idx (1-based), returning the number of data bytes that
// follow and how many header bytes were consumed. A first unrandomized
// header byte of 0 means "runs to the end of the symbol data", signaled by
// runsToEnd=true. Grounded on DecodeSchemeBase256's d0/d1 header logic.
func DecodeBase256Header(b0 byte, idx int, hasSecond bool, b1 byte) (dataLen, headerBytes int, runsToEnd bool) {
	d0 := UnRandomize255(b0, idx)
	if d0 == 0 {
		return 0, 1, true
	}
	if d0 <= 249 {
		return int(d0), 1, false
	}
	if !hasSecond {
		return 0, 1, false
	}
	d1 := UnRandomize255(b1, idx+1)
	return (int(d0)-249)*250 + int(d1), 2, false
}

// DecodeBase256 unrandomizes a chain of Base256 codewords back into raw
// data bytes. position is the 1-based codeword position of the first data
// byte (immediately after the header).
func DecodeBase256(codewords []byte, position int) []byte {
	out := make([]byte, len(codewords))
	for i, v := range codewords {
		out[i] = UnRandomize255(v, position+i)
	}
	return out
}
