package dmtx

import (
	"github.com/dmtxgo/dmtx/internal/gf256"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// rsEncodeBlocks appends block-interleaved Reed-Solomon parity to data
// (already padded to exactly attrs.SymbolDataWords by the encodation
// stream machine) and returns the full codeword vector of length
// SymbolDataWords+SymbolErrorWords. Codeword k of the concatenated
// output belongs to block (k mod blocks) at position (k div blocks);
// the interleaving is applied separately
// to the data region (already in that order, since it's simply the
// sequential output of the encodation machine) and the appended error
// region.
func rsEncodeBlocks(data []byte, sizeIdx symbolsize.Size) []byte {
	attrs := symbolsize.Get(sizeIdx)
	blocks := attrs.InterleavedBlocks
	errorWords := attrs.BlockErrorWords
	dataWords := attrs.SymbolDataWords

	out := make([]byte, dataWords+attrs.SymbolErrorWords)
	copy(out, data)

	genpoly := gf256.GeneratorPoly(errorWords)
	blockData := make([]byte, 0, dataWords)
	parity := make([]byte, errorWords)

	for b := 0; b < blocks; b++ {
		n := symbolsize.BlockDataWords(sizeIdx, b)
		blockData = blockData[:0]
		for i := 0; i < n; i++ {
			blockData = append(blockData, data[b+i*blocks])
		}
		gf256.Encode(blockData, genpoly, parity)
		for i := 0; i < errorWords; i++ {
			out[dataWords+b+i*blocks] = parity[i]
		}
	}
	return out
}

// rsDecodeBlocks is the inverse of rsEncodeBlocks: given the full
// SymbolDataWords+SymbolErrorWords codeword vector recovered by
// internal/placement.Decode (in the same interleaved order
// rsEncodeBlocks produced), it corrects each block independently and
// returns the corrected data-word prefix. maxPerBlock caps the number of
// corrections accepted in any one block; a value <= 0 means "use the
// block's own BlockMaxCorrectable".
func rsDecodeBlocks(codewords []byte, sizeIdx symbolsize.Size, maxPerBlock int) ([]byte, int, error) {
	attrs := symbolsize.Get(sizeIdx)
	blocks := attrs.InterleavedBlocks
	errorWords := attrs.BlockErrorWords
	dataWords := attrs.SymbolDataWords

	limit := attrs.BlockMaxCorrectable
	if maxPerBlock > 0 && maxPerBlock < limit {
		limit = maxPerBlock
	}

	data := make([]byte, dataWords)
	block := make([]byte, 0, dataWords+errorWords)
	totalCorrections := 0

	for b := 0; b < blocks; b++ {
		n := symbolsize.BlockDataWords(sizeIdx, b)
		block = block[:0]
		for i := 0; i < n; i++ {
			block = append(block, codewords[b+i*blocks])
		}
		for i := 0; i < errorWords; i++ {
			block = append(block, codewords[dataWords+b+i*blocks])
		}

		corrected := gf256.Decode(block, errorWords)
		if corrected < 0 || corrected > limit {
			return nil, 0, errUncorrectable
		}
		totalCorrections += corrected
		for i := 0; i < n; i++ {
			data[b+i*blocks] = block[i]
		}
	}
	return data, totalCorrections, nil
}
