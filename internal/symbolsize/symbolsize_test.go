package symbolsize

import "testing"

func TestGetSquareSmallest(t *testing.T) {
	a := Get(Size10x10)
	if a.SymbolRows != 10 || a.SymbolCols != 10 {
		t.Fatalf("Size10x10 dims = %dx%d, want 10x10", a.SymbolRows, a.SymbolCols)
	}
	if a.DataRegionRows != 8 || a.DataRegionCols != 8 {
		t.Fatalf("Size10x10 data region = %dx%d, want 8x8", a.DataRegionRows, a.DataRegionCols)
	}
	if a.SymbolDataWords != 3 {
		t.Fatalf("Size10x10 data words = %d, want 3", a.SymbolDataWords)
	}
}

func TestGetLargestSquareBlockSplit(t *testing.T) {
	a := Get(Size144x144)
	if a.InterleavedBlocks != 10 {
		t.Fatalf("Size144x144 blocks = %d, want 10", a.InterleavedBlocks)
	}
	if a.SymbolDataWords != 1558 {
		t.Fatalf("Size144x144 data words = %d, want 1558", a.SymbolDataWords)
	}

	total := 0
	for i := 0; i < a.InterleavedBlocks; i++ {
		total += BlockDataWords(Size144x144, i)
	}
	if total != a.SymbolDataWords {
		t.Fatalf("block data words sum to %d, want %d", total, a.SymbolDataWords)
	}
	floor := a.SymbolDataWords / a.InterleavedBlocks
	if BlockDataWords(Size144x144, 0) != floor+1 {
		t.Fatalf("block 0 data words = %d, want %d", BlockDataWords(Size144x144, 0), floor+1)
	}
	if BlockDataWords(Size144x144, 9) != floor {
		t.Fatalf("block 9 data words = %d, want %d", BlockDataWords(Size144x144, 9), floor)
	}
}

func TestGetRectangular(t *testing.T) {
	a := Get(Size8x32)
	if a.SymbolRows != 8 || a.SymbolCols != 32 {
		t.Fatalf("Size8x32 dims = %dx%d, want 8x32", a.SymbolRows, a.SymbolCols)
	}
	if a.HorizDataRegions != 2 || a.VertDataRegions != 1 {
		t.Fatalf("Size8x32 regions = %dx%d, want 2x1", a.HorizDataRegions, a.VertDataRegions)
	}
}

func TestFindSquareAuto(t *testing.T) {
	s := Find(3, SquareAuto)
	if s != Size10x10 {
		t.Fatalf("Find(3, SquareAuto) = %v, want Size10x10", s)
	}
	s = Find(4, SquareAuto)
	if s != Size12x12 {
		t.Fatalf("Find(4, SquareAuto) = %v, want Size12x12", s)
	}
}

func TestFindRectAuto(t *testing.T) {
	s := Find(4, RectAuto)
	if s != Size8x18 {
		t.Fatalf("Find(4, RectAuto) = %v, want Size8x18", s)
	}
}

func TestFindTooLarge(t *testing.T) {
	if s := Find(10000, SquareAuto); s != Undefined {
		t.Fatalf("Find(10000, SquareAuto) = %v, want Undefined", s)
	}
}

func TestFindSpecificSizeRejectsOverflow(t *testing.T) {
	if s := Find(4, Size10x10); s != Undefined {
		t.Fatalf("Find(4, Size10x10) = %v, want Undefined (3 data words max)", s)
	}
	if s := Find(3, Size10x10); s != Size10x10 {
		t.Fatalf("Find(3, Size10x10) = %v, want Size10x10", s)
	}
}

func TestSizeFromDimensionsRoundTrip(t *testing.T) {
	for i := 0; i < Count; i++ {
		a := Get(Size(i))
		s := SizeFromDimensions(a.SymbolRows, a.SymbolCols)
		if s != Size(i) {
			t.Fatalf("SizeFromDimensions(%d,%d) = %v, want %v", a.SymbolRows, a.SymbolCols, s, Size(i))
		}
	}
}

func TestSizeFromDimensionsUnknown(t *testing.T) {
	if s := SizeFromDimensions(11, 11); s != Undefined {
		t.Fatalf("SizeFromDimensions(11,11) = %v, want Undefined", s)
	}
}
