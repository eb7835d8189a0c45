// Package region locates a Data Matrix symbol's quadrilateral boundary
// within a grayscale raster and builds the fit2raw transform the sampler
// uses to read module colors. Follows dmtxregion.c's pipeline in reduced
// form: the original's 8-direction compass edge flow and Bresenham trail
// blazing are replaced with a Sobel gradient probe that anchors the seed
// onto the symbol's connected module component (tried at both
// polarities), whose minimum-area enclosing rectangle recovers the same
// quadrilateral the original's two strongest-line Hough fits produce. A
// per-edge darkness probe assigns the finder's solid corner, the two
// solid edges are least-squares refitted to measure the corner angle
// against the square-deviation limit, and the candidate size from the
// contrast probe is verified by the same eight jump-transition tallies
// MatrixRegionFindSize runs (both calibration bars, both finder bars,
// four quiet-zone tracks).
package region

import (
	"math"

	"github.com/dmtxgo/dmtx/internal/geometry"
	"github.com/dmtxgo/dmtx/internal/scangrid"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// Params carries the locator's tuning knobs, mirroring the decode-side
// DmtxProperty values that bound candidate regions.
type Params struct {
	// EdgeMin, EdgeMax bound the candidate component's bounding-box
	// diagonal, in (already scaled) pixels. Zero means unbounded.
	EdgeMin, EdgeMax int

	// EdgeThresh is the minimum edge strength accepted by the seed
	// probe, as a percentage (1..100); the pixel-domain magnitude floor
	// is EdgeThresh * 7.65, as in dmtxRegionScanPixel.
	EdgeThresh int

	// SquareDevnCos is the cosine of the maximum allowed deviation of
	// the fitted corner angle from a right angle (DmtxPropSquareDevn's
	// storage convention).
	SquareDevnCos float64
}

// DefaultParams mirrors dmtxDecodeCreate's property defaults.
func DefaultParams() Params {
	return Params{
		EdgeThresh:    10,
		SquareDevnCos: math.Cos(15 * math.Pi / 180),
	}
}

// Region is a located candidate symbol: the transform mapping fractional
// module-space [0,1]x[0,1] (origin at the finder's solid corner) to raw
// pixel coordinates, plus the best-fit symbol size. Mirrors the subset of
// DmtxRegion that survives into the decode pipeline after
// MatrixRegionFindSize.
type Region struct {
	Fit2Raw     geometry.Matrix3
	SizeIdx     symbolsize.Size
	SymbolRows  int
	SymbolCols  int
	MappingRows int
	MappingCols int

	// Polarity is +1 for a dark-on-light symbol and -1 for
	// light-on-dark; every module read is flipped accordingly so
	// OnColor is always the darker value in polarized space.
	Polarity int

	OnColor  int
	OffColor int
}

// Locate repeatedly pops candidate seed pixels from grid, testing each
// for a nearby Data Matrix region, until one is found or the grid is
// exhausted. Grounded on dmtxRegionFindNextDeterministic's
// pop-scan-repeat loop. consumed, if non-nil, is consulted for every
// popped location and lets the caller skip seeds already covered by a
// region returned from an earlier call (the CONSUMED cache bit of
// dmtxdecode.c's region-exhaustion loop); pass nil to visit every seed.
func Locate(img *raster.Image, grid *scangrid.Grid, consumed func(x, y int) bool, p Params) *Region {
	for {
		loc, status := grid.Pop()
		if status == scangrid.End {
			return nil
		}
		if status != scangrid.Good {
			continue
		}
		if consumed != nil && consumed(loc.X, loc.Y) {
			continue
		}
		if reg := scanPixel(img, loc, p); reg != nil {
			return reg
		}
	}
}

// Corners returns the four raw-pixel corners of reg's unit-square fit,
// in (bottom-left, bottom-right, top-left, top-right) order, for callers
// that need reg's approximate pixel footprint (e.g. to mark it consumed).
func (reg *Region) Corners() (bl, br, tl, tr geometry.Vector2, ok bool) {
	var okAll [4]bool
	bl, okAll[0] = geometry.VMultiply(geometry.Vector2{X: 0, Y: 0}, reg.Fit2Raw)
	br, okAll[1] = geometry.VMultiply(geometry.Vector2{X: 1, Y: 0}, reg.Fit2Raw)
	tl, okAll[2] = geometry.VMultiply(geometry.Vector2{X: 0, Y: 1}, reg.Fit2Raw)
	tr, okAll[3] = geometry.VMultiply(geometry.Vector2{X: 1, Y: 1}, reg.Fit2Raw)
	ok = okAll[0] && okAll[1] && okAll[2] && okAll[3]
	return
}

// scanPixel is dmtxRegionScanPixel: test one seed location for a region,
// trying the dark-on-light reading first and the reversed polarity
// second (the original resolves polarity inside
// MatrixRegionOrientation's condition branch; here each polarity gets
// its own full fit attempt).
func scanPixel(img *raster.Image, loc scangrid.Loc, p Params) *Region {
	seed, ok := seekEdge(img, loc, p)
	if !ok {
		return nil
	}

	for _, polarity := range [2]int{1, -1} {
		if reg := fitRegion(img, seed, polarity, p); reg != nil {
			return reg
		}
	}
	return nil
}

// fitRegion runs the corner fit and size probe for one polarity.
func fitRegion(img *raster.Image, seed flowPoint, polarity int, p Params) *Region {
	corner, uDir, vDir, uLen, vLen, ok := fitCorner(img, seed, polarity, p)
	if !ok {
		return nil
	}

	reg := &Region{
		Fit2Raw:  buildFit2Raw(corner, uDir, vDir, uLen, vLen),
		Polarity: polarity,
	}
	if !findSize(img, reg) {
		return nil
	}
	return reg
}

// buildFit2Raw is the simplified stand-in for dmtxRegionUpdateXfrms's
// Translate/Rotate/Scale/Shear/LineSkewTop/LineSkewSide composition: it
// maps the unit square onto the parallelogram spanned by corner+uDir*uLen
// and corner+vDir*vLen. This handles any similarity transform (rotation,
// uniform or non-uniform scale) plus whatever small non-perpendicularity
// the square-deviation limit admits, but not the true keystone
// foreshortening LineSkewTop/LineSkewSide correct for.
func buildFit2Raw(corner, uDir, vDir geometry.Vector2, uLen, vLen float64) geometry.Matrix3 {
	m := geometry.Identity()
	m[0][0] = uDir.X * uLen
	m[0][1] = uDir.Y * uLen
	m[1][0] = vDir.X * vLen
	m[1][1] = vDir.Y * vLen
	m[2][0] = corner.X
	m[2][1] = corner.Y
	return m
}
