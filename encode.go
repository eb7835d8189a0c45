package dmtx

import (
	"image"

	"github.com/dmtxgo/dmtx/internal/encstream"
	"github.com/dmtxgo/dmtx/internal/placement"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// Encode packs data into codewords, protects them with Reed-Solomon
// parity, places the result into an ECC 200 module grid, and renders that
// grid to a standard library image.Image at opts.ModuleSize pixels per
// module with an opts.MarginSize-module quiet zone. Options struct in,
// image.Image out, no partial image on failure.
func Encode(data []byte, opts *EncodeOptions) (image.Image, error) {
	o := DefaultEncodeOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if o.Mosaic {
		return encodeMosaic(data, o)
	}

	grid, _, err := encodePlane(data, o)
	if err != nil {
		return nil, err
	}
	return raster.RenderModules(grid, o.ModuleSize, o.MarginSize), nil
}

// encodePlane runs one full data->codewords->grid pass for a single
// grayscale plane.
func encodePlane(data []byte, o EncodeOptions) ([][]bool, symbolsize.Attributes, error) {
	request := o.sizeRequest()

	dataCodewords, sizeIdx, err := encodeScheme(data, o.Scheme, request, o.FNC1)
	if err != nil {
		return nil, symbolsize.Attributes{}, translateEncodeErr(err)
	}

	attrs := symbolsize.Get(sizeIdx)
	codewords := rsEncodeBlocks(dataCodewords, sizeIdx)

	groups := placement.Build(attrs.MappingRows, attrs.MappingCols)
	mapping := placement.Encode(attrs.MappingRows, attrs.MappingCols, codewords, groups)

	return buildSymbolGrid(attrs, mapping), attrs, nil
}

// encodeScheme dispatches to the single-scheme encoder or the AutoBest
// optimizer per o.Scheme, aliasing AutoFast to AutoBest.
func encodeScheme(data []byte, s Scheme, request symbolsize.Size, fnc1 int) ([]byte, symbolsize.Size, error) {
	if s == AutoBest || s == AutoFast {
		return encstream.Best(data, request, fnc1)
	}
	id, ok := s.toSchemeID()
	if !ok {
		return encstream.Best(data, request, fnc1)
	}
	return encstream.EncodeSingleScheme(data, request, id, fnc1)
}

func translateEncodeErr(err error) error {
	if err == encstream.ErrUnknown {
		return ErrInputTooLarge
	}
	return err
}

// buildSymbolGrid assembles the full SymbolRows x SymbolCols boolean
// module grid (true = dark/on) for one plane: the finder's solid
// bottom/left border and alternating top/right calibration track for
// every data region, plus that region's slice of the combined mapping
// grid placement.Encode produced. Generalizes the single-region pattern
// internal/sampler's test fixtures build (buildSyntheticSymbol) to
// symbols with multiple horizontal/vertical data regions, whose internal
// borders sit back-to-back forming the inner alignment patterns of large
// symbols. Indexed top-down (row 0 = top of the rendered image), matching
// raster.RenderModules' expectations.
func buildSymbolGrid(attrs symbolsize.Attributes, mapping []bool) [][]bool {
	rows, cols := attrs.SymbolRows, attrs.SymbolCols
	rowStride := attrs.DataRegionRows + 2
	colStride := attrs.DataRegionCols + 2

	grid := make([][]bool, rows)
	for vr := 0; vr < rows; vr++ {
		symRow := rows - 1 - vr
		yRegion := symRow / rowStride
		localRow := symRow % rowStride

		row := make([]bool, cols)
		for symCol := 0; symCol < cols; symCol++ {
			xRegion := symCol / colStride
			localCol := symCol % colStride

			switch {
			case localRow == 0 || localCol == 0:
				row[symCol] = true
			case localRow == rowStride-1:
				row[symCol] = symCol%2 == 0
			case localCol == colStride-1:
				row[symCol] = symRow%2 == 0
			default:
				// symRow counts up from the symbol's bottom while the
				// placement convention puts mapping row 0 at the top, so
				// the mapping read is mirrored vertically - the same
				// mirror PopulateArrayFromMatrix applies on the decode
				// side.
				mapRow := attrs.MappingRows - 1 - (yRegion*attrs.DataRegionRows + localRow - 1)
				mapCol := xRegion*attrs.DataRegionCols + (localCol - 1)
				row[symCol] = mapping[mapRow*attrs.MappingCols+mapCol]
			}
		}
		grid[vr] = row
	}
	return grid
}

// encodeMosaic renders a DmtxMosaic-style tri-plane symbol: data is split
// into three roughly equal shares, each encoded independently, then all
// three are forced to the largest size any share required so their grids
// overlay exactly; the three grids are painted into the red, green and
// blue channels of one image respectively (0 = on, 255 = off), instead
// of three separate grayscale images.
func encodeMosaic(data []byte, o EncodeOptions) (image.Image, error) {
	shares := splitThirds(data)

	var attrsEach [3]symbolsize.Attributes
	var gridEach [3][][]bool
	maxSize := symbolsize.Undefined

	for _, share := range shares {
		if len(share) == 0 {
			share = []byte{0}
		}
		_, sizeIdx, err := encodeScheme(share, o.Scheme, o.sizeRequest(), o.FNC1)
		if err != nil {
			return nil, translateEncodeErr(err)
		}
		if maxSize == symbolsize.Undefined || biggerSize(sizeIdx, maxSize) {
			maxSize = sizeIdx
		}
	}

	forced := SizeRequest(maxSize)
	for i, share := range shares {
		if len(share) == 0 {
			share = []byte{0}
		}
		planeOpts := o
		planeOpts.SizeRequest = forced
		grid, attrs, err := encodePlane(share, planeOpts)
		if err != nil {
			return nil, err
		}
		gridEach[i], attrsEach[i] = grid, attrs
	}

	rows, cols := attrsEach[0].SymbolRows, attrsEach[0].SymbolCols
	width := (cols + 2*o.MarginSize) * o.ModuleSize
	height := (rows + 2*o.MarginSize) * o.ModuleSize
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	paint := func(grid [][]bool, channel int) {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if !grid[r][c] {
					continue
				}
				px0 := (c + o.MarginSize) * o.ModuleSize
				py0 := (r + o.MarginSize) * o.ModuleSize
				for dy := 0; dy < o.ModuleSize; dy++ {
					off := ((py0+dy)*width + px0) * 4
					for dx := 0; dx < o.ModuleSize; dx++ {
						img.Pix[off+dx*4+channel] = 0x00
					}
				}
			}
		}
	}
	paint(gridEach[0], 0)
	paint(gridEach[1], 1)
	paint(gridEach[2], 2)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img, nil
}

func splitThirds(data []byte) [3][]byte {
	n := len(data)
	third := (n + 2) / 3
	var out [3][]byte
	for i := range out {
		beg := i * third
		end := beg + third
		if beg > n {
			beg = n
		}
		if end > n {
			end = n
		}
		out[i] = data[beg:end]
	}
	return out
}

func biggerSize(a, b symbolsize.Size) bool {
	return symbolsize.Get(a).SymbolDataWords > symbolsize.Get(b).SymbolDataWords
}
