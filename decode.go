package dmtx

import (
	"image"
	"math"
	"time"

	"github.com/dmtxgo/dmtx/internal/decstream"
	"github.com/dmtxgo/dmtx/internal/placement"
	"github.com/dmtxgo/dmtx/internal/pool"
	"github.com/dmtxgo/dmtx/internal/region"
	"github.com/dmtxgo/dmtx/internal/sampler"
	"github.com/dmtxgo/dmtx/internal/scangrid"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// Decode searches src for ECC 200 Data Matrix symbols and returns every
// one it successfully reads: region locate -> sample -> Reed-Solomon
// correction -> decode-stream interpretation.
//
// "No region found" and "timeout" are not errors: Decode
// returns a nil slice and a nil error in both cases. A non-nil error only
// ever reports a rejected option.
func Decode(src image.Image, opts *DecodeOptions) ([]Message, error) {
	o := DefaultDecodeOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	img := raster.New(src)
	if o.Scale > 1 {
		img = img.Subsample(o.Scale)
	}
	xMin, xMax, yMin, yMax := o.bbox(img)
	grid := scangrid.New(xMin, xMax, yMin, yMax, o.ScanGap, o.Scale)
	params := o.regionParams()

	var deadline time.Time
	if o.Timeout > 0 {
		deadline = time.Now().Add(o.Timeout)
	}

	// cache is the decode context's per-pixel consumed bitmap: once a
	// region's footprint is reported, its pixels are marked here so the
	// scan grid's remaining seeds don't re-report it. Acquired from
	// internal/pool and released on every exit path, including a timeout
	// or an exhausted grid.
	cache := pool.Get(img.Width() * img.Height())
	defer pool.Put(cache)
	consumed := func(x, y int) bool {
		if x < 0 || y < 0 || x >= img.Width() || y >= img.Height() {
			return false
		}
		return cache[y*img.Width()+x] != 0
	}
	markConsumed := func(reg *region.Region) {
		bl, br, tl, tr, ok := reg.Corners()
		if !ok {
			return
		}
		minX, minY := bl.X, bl.Y
		maxX, maxY := bl.X, bl.Y
		for _, p := range [3]struct{ X, Y float64 }{{br.X, br.Y}, {tl.X, tl.Y}, {tr.X, tr.Y}} {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		// Inflate by the locator's seed reach (edge-probe window plus
		// anchor step), so a seed just outside the footprint can't
		// anchor back into the same symbol and re-report it.
		const consumedMargin = 8
		x0 := clampInt(int(minX)-consumedMargin, 0, img.Width()-1)
		x1 := clampInt(int(maxX)+consumedMargin, 0, img.Width()-1)
		y0 := clampInt(int(minY)-consumedMargin, 0, img.Height()-1)
		y1 := clampInt(int(maxY)+consumedMargin, 0, img.Height()-1)
		for y := y0; y <= y1; y++ {
			row := y * img.Width()
			for x := x0; x <= x1; x++ {
				cache[row+x] = 1
			}
		}
	}

	var messages []Message
	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		reg := region.Locate(img, grid, consumed, params)
		if reg == nil {
			break
		}
		markConsumed(reg)

		if !sizeMatchesRequest(reg.SizeIdx, o.SizeRequest) {
			continue
		}

		msg, ok := decodeRegion(img, reg, o)
		if ok {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// decodeRegion runs the sampler, Reed-Solomon correction and
// decode-stream interpreter over one located region.
func decodeRegion(img *raster.Image, reg *region.Region, o DecodeOptions) (Message, bool) {
	mapping := sampler.Sample(img, reg)
	groups := placement.Build(reg.MappingRows, reg.MappingCols)
	codewords := placement.Decode(reg.MappingRows, reg.MappingCols, mapping, groups)

	data, corrections, err := rsDecodeBlocks(codewords, reg.SizeIdx, o.CorrectionsMax)
	if err != nil {
		return Message{}, false
	}

	out, err := decstream.Decode(data, o.FNC1)
	if err != nil {
		return Message{}, false
	}

	return Message{Data: out, SymbolSize: SizeRequest(reg.SizeIdx), Corrections: corrections}, true
}

// bbox resolves the DecodeOptions x/y bounds (given in original pixel
// coordinates) to a concrete box in the possibly subsampled raster's
// coordinate space, defaulting to the whole image when all four are left
// zero.
func (o DecodeOptions) bbox(img *raster.Image) (xMin, xMax, yMin, yMax int) {
	xMin, xMax = o.XMin/o.Scale, o.XMax/o.Scale
	yMin, yMax = o.YMin/o.Scale, o.YMax/o.Scale
	if o.XMax == 0 {
		xMax = img.Width() - 1
	}
	if o.YMax == 0 {
		yMax = img.Height() - 1
	}
	xMax = clampInt(xMax, 0, img.Width()-1)
	yMax = clampInt(yMax, 0, img.Height()-1)
	xMin = clampInt(xMin, 0, xMax)
	yMin = clampInt(yMin, 0, yMax)
	return
}

// regionParams converts the public tuning options into the locator's
// parameter set: the edge bounds land in the subsampled coordinate
// space, and SquareDevn degrees become the cosine the locator's corner
// check compares against (DmtxPropSquareDevn's storage convention).
func (o DecodeOptions) regionParams() region.Params {
	return region.Params{
		EdgeMin:       o.EdgeMin / o.Scale,
		EdgeMax:       o.EdgeMax / o.Scale,
		EdgeThresh:    o.EdgeThresh,
		SquareDevnCos: math.Cos(o.SquareDevn * math.Pi / 180),
	}
}

// sizeMatchesRequest is the decode-side half of SizeRequest handling:
// the located region's concrete size must belong
// to the requested shape family (or equal the exact size requested).
func sizeMatchesRequest(sizeIdx symbolsize.Size, req SizeRequest) bool {
	switch req {
	case AnyShape:
		return true
	case SquareAuto:
		return int(sizeIdx) < symbolsize.SquareCount
	case RectAuto:
		return int(sizeIdx) >= symbolsize.SquareCount
	default:
		return sizeIdx == symbolsize.Size(req)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
