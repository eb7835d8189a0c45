package sampler

import (
	"testing"

	"github.com/dmtxgo/dmtx/internal/placement"
	"github.com/dmtxgo/dmtx/internal/region"
	"github.com/dmtxgo/dmtx/internal/scangrid"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// buildSyntheticSymbol renders a single-data-region ECC 200 symbol
// carrying codewords, surrounded by its solid/clock-track finder
// border, the same way a real encoder's raster output would look.
func buildSyntheticSymbol(sizeIdx symbolsize.Size, codewords []byte, moduleSize, margin int) (*raster.Image, [][8]placement.ModuleBit) {
	attrs := symbolsize.Get(sizeIdx)
	groups := placement.Build(attrs.DataRegionRows, attrs.DataRegionCols)
	dataGrid := placement.Encode(attrs.DataRegionRows, attrs.DataRegionCols, codewords, groups)

	rows, cols := attrs.SymbolRows, attrs.SymbolCols
	visual := make([][]bool, rows)
	for vr := 0; vr < rows; vr++ {
		symRow := rows - 1 - vr
		row := make([]bool, cols)
		for symCol := 0; symCol < cols; symCol++ {
			switch {
			case symRow == 0, symCol == 0:
				row[symCol] = true
			case symRow == rows-1:
				row[symCol] = symCol%2 == 0
			case symCol == cols-1:
				row[symCol] = symRow%2 == 0
			default:
				// symRow counts up from the bottom; dataGrid row 0 is
				// the topmost mapping row.
				mapRow, mapCol := rows-2-symRow, symCol-1
				row[symCol] = dataGrid[mapRow*attrs.DataRegionCols+mapCol]
			}
		}
		visual[vr] = row
	}

	img := raster.RenderModules(visual, moduleSize, margin)
	return raster.New(img), groups
}

func TestSampleRoundTrip(t *testing.T) {
	sizeIdx := symbolsize.Size16x16
	attrs := symbolsize.Get(sizeIdx)
	groups := placement.Build(attrs.DataRegionRows, attrs.DataRegionCols)

	codewords := make([]byte, len(groups))
	for i := range codewords {
		codewords[i] = byte(17*i + 5)
	}

	const moduleSize, margin = 8, 4
	img, groups := buildSyntheticSymbol(sizeIdx, codewords, moduleSize, margin)

	grid := scangrid.New(0, img.Width()-1, 0, img.Height()-1, moduleSize, 1)
	reg := region.Locate(img, grid, nil, region.DefaultParams())
	if reg == nil {
		t.Fatalf("Locate found no region in synthetic symbol")
	}
	if reg.SizeIdx != sizeIdx {
		t.Fatalf("Locate resolved size %v, want %v", reg.SizeIdx, sizeIdx)
	}

	mapping := Sample(img, reg)
	got := placement.Decode(attrs.MappingRows, attrs.MappingCols, mapping, groups)
	if len(got) != len(codewords) {
		t.Fatalf("got %d codewords, want %d", len(got), len(codewords))
	}
	mismatches := 0
	for i := range codewords {
		if got[i] != codewords[i] {
			mismatches++
		}
	}
	if mismatches > 0 {
		t.Errorf("%d/%d codewords mismatched after sampling", mismatches, len(codewords))
	}
}
