// Package symbolsize holds the fixed ECC 200 catalog of 24 square and 6
// rectangular symbol sizes together with their capacity and error
// correction attributes.
package symbolsize

// Size indexes a row of the attribute table, or selects an auto-sizing
// request passed to Find.
type Size int

// Sentinel and request values. Concrete sizes occupy [0, Count).
const (
	Undefined  Size = -3
	SquareAuto Size = -2
	RectAuto   Size = -1
)

// Square size indices, in table order.
const (
	Size10x10 Size = iota
	Size12x12
	Size14x14
	Size16x16
	Size18x18
	Size20x20
	Size22x22
	Size24x24
	Size26x26
	Size32x32
	Size36x36
	Size40x40
	Size44x44
	Size48x48
	Size52x52
	Size64x64
	Size72x72
	Size80x80
	Size88x88
	Size96x96
	Size104x104
	Size120x120
	Size132x132
	Size144x144

	// Rectangular sizes follow the squares.
	Size8x18
	Size8x32
	Size12x26
	Size12x36
	Size16x36
	Size16x48
)

// SquareCount and RectCount partition the table; Count is their sum.
const (
	SquareCount = 24
	RectCount   = 6
	Count       = SquareCount + RectCount
)

// Attributes describes the fixed geometric and capacity parameters of one
// symbol size.
type Attributes struct {
	SymbolRows           int
	SymbolCols           int
	DataRegionRows       int
	DataRegionCols       int
	HorizDataRegions     int
	VertDataRegions      int
	MappingRows          int // DataRegionRows * VertDataRegions
	MappingCols          int // DataRegionCols * HorizDataRegions
	InterleavedBlocks    int
	SymbolDataWords      int
	BlockErrorWords      int
	BlockMaxCorrectable  int
	SymbolErrorWords     int // BlockErrorWords * InterleavedBlocks
	SymbolMaxCorrectable int // BlockMaxCorrectable * InterleavedBlocks
}

var symbolRows = [Count]int{
	10, 12, 14, 16, 18, 20, 22, 24, 26,
	32, 36, 40, 44, 48, 52,
	64, 72, 80, 88, 96, 104,
	120, 132, 144,
	8, 8, 12, 12, 16, 16,
}

var symbolCols = [Count]int{
	10, 12, 14, 16, 18, 20, 22, 24, 26,
	32, 36, 40, 44, 48, 52,
	64, 72, 80, 88, 96, 104,
	120, 132, 144,
	18, 32, 26, 36, 36, 48,
}

var dataRegionRows = [Count]int{
	8, 10, 12, 14, 16, 18, 20, 22, 24,
	14, 16, 18, 20, 22, 24,
	14, 16, 18, 20, 22, 24,
	18, 20, 22,
	6, 6, 10, 10, 14, 14,
}

var dataRegionCols = [Count]int{
	8, 10, 12, 14, 16, 18, 20, 22, 24,
	14, 16, 18, 20, 22, 24,
	14, 16, 18, 20, 22, 24,
	18, 20, 22,
	16, 14, 24, 16, 16, 22,
}

var horizDataRegions = [Count]int{
	1, 1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2,
	4, 4, 4, 4, 4, 4,
	6, 6, 6,
	1, 2, 1, 2, 2, 2,
}

var interleavedBlocks = [Count]int{
	1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 2,
	2, 4, 4, 4, 4, 6,
	6, 8, 10,
	1, 1, 1, 1, 1, 1,
}

var symbolDataWords = [Count]int{
	3, 5, 8, 12, 18, 22, 30, 36, 44,
	62, 86, 114, 144, 174, 204,
	280, 368, 456, 576, 696, 816,
	1050, 1304, 1558,
	5, 10, 16, 22, 32, 49,
}

var blockErrorWords = [Count]int{
	5, 7, 10, 12, 14, 18, 20, 24, 28,
	36, 42, 48, 56, 68, 42,
	56, 36, 48, 56, 68, 56,
	68, 62, 62,
	7, 11, 14, 18, 24, 28,
}

var blockMaxCorrectable = [Count]int{
	2, 3, 5, 6, 7, 9, 10, 12, 14,
	18, 21, 24, 28, 34, 21,
	28, 18, 24, 28, 34, 28,
	34, 31, 31,
	3, 5, 7, 9, 12, 14,
}

// Valid reports whether s is a concrete table index.
func (s Size) Valid() bool {
	return s >= 0 && int(s) < Count
}

// vertDataRegions returns horizDataRegions for squares (where vertical and
// horizontal region counts match) and 1 for every rectangle.
func vertDataRegions(s Size) int {
	if int(s) < SquareCount {
		return horizDataRegions[s]
	}
	return 1
}

// Get returns the full attribute set for a concrete size index. It panics
// if s is not a valid table index; callers should check Valid first.
func Get(s Size) Attributes {
	if !s.Valid() {
		panic("symbolsize: invalid size index")
	}
	blocks := interleavedBlocks[s]
	return Attributes{
		SymbolRows:           symbolRows[s],
		SymbolCols:           symbolCols[s],
		DataRegionRows:       dataRegionRows[s],
		DataRegionCols:       dataRegionCols[s],
		HorizDataRegions:     horizDataRegions[s],
		VertDataRegions:      vertDataRegions(s),
		MappingRows:          dataRegionRows[s] * vertDataRegions(s),
		MappingCols:          dataRegionCols[s] * horizDataRegions[s],
		InterleavedBlocks:    blocks,
		SymbolDataWords:      symbolDataWords[s],
		BlockErrorWords:      blockErrorWords[s],
		BlockMaxCorrectable:  blockMaxCorrectable[s],
		SymbolErrorWords:     blockErrorWords[s] * blocks,
		SymbolMaxCorrectable: blockMaxCorrectable[s] * blocks,
	}
}

// BlockDataWords returns the number of data words carried by block
// blockIdx of size s. Every size distributes data words evenly across its
// interleaved blocks except 144x144, whose first 8 blocks carry one extra
// word (symbolDataWords[Size144x144] is not evenly divisible by 10).
func BlockDataWords(s Size, blockIdx int) int {
	a := Get(s)
	if a.InterleavedBlocks < 1 {
		return 0
	}
	count := a.SymbolDataWords / a.InterleavedBlocks
	if s == Size144x144 && blockIdx < 8 {
		return count + 1
	}
	return count
}

// SizeFromDimensions reverse-looks-up a Size from its physical module
// dimensions. The region locator does not call it: its size probe scores
// every catalog entry directly. Returns Undefined if no table entry matches.
func SizeFromDimensions(rows, cols int) Size {
	for i := 0; i < Count; i++ {
		if symbolRows[i] == rows && symbolCols[i] == cols {
			return Size(i)
		}
	}
	return Undefined
}

// Find returns the smallest size (subject to request) whose SymbolDataWords
// is at least dataWords. request may be SquareAuto, RectAuto, or a specific
// Size. Returns Undefined if no size satisfies the request.
func Find(dataWords int, request Size) Size {
	if dataWords <= 0 {
		return Undefined
	}

	var idxBeg, idxEnd int
	var sizeIdx Size

	switch request {
	case SquareAuto:
		idxBeg, idxEnd = 0, SquareCount
	case RectAuto:
		idxBeg, idxEnd = SquareCount, Count
	default:
		sizeIdx = request
	}

	if request == SquareAuto || request == RectAuto {
		sizeIdx = Undefined
		for i := idxBeg; i < idxEnd; i++ {
			if symbolDataWords[i] >= dataWords {
				sizeIdx = Size(i)
				break
			}
		}
		if sizeIdx == Undefined {
			return Undefined
		}
	}

	if !sizeIdx.Valid() {
		return Undefined
	}
	if dataWords > symbolDataWords[sizeIdx] {
		return Undefined
	}

	return sizeIdx
}
