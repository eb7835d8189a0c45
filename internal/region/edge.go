package region

import (
	"math"

	"github.com/dmtxgo/dmtx/internal/scangrid"
	"github.com/dmtxgo/dmtx/raster"
)

// flowPoint is a single strong-edge sample: position, gradient magnitude
// and orientation. Stands in for the per-pixel compass flow value
// GetPointFlow computes in dmtxregion.c.
type flowPoint struct {
	x, y int
	mag  float64
	dir  float64 // gradient direction, radians
}

// polarizedValue reads one pixel through the region's polarity
// convention: for a light-on-dark symbol (polarity -1) values are
// flipped so "on" modules always read dark.
func polarizedValue(img *raster.Image, x, y, polarity int) (int, bool) {
	v, ok := img.GetPixelValue(x, y)
	if !ok {
		return 0, false
	}
	if polarity < 0 {
		v = 255 - v
	}
	return v, true
}

// edgeStrength computes a Sobel gradient magnitude and direction at
// (x,y). A simplified, single-channel stand-in for GetPointFlow's 3x3
// compass-direction probe, since raster.Image carries one grayscale
// channel rather than libdmtx's multi-plane RGB image. The magnitude is
// polarity-independent; only the direction flips for a reversed symbol,
// and darkAnchor tries both directions anyway.
func edgeStrength(img *raster.Image, x, y int) (flowPoint, bool) {
	if !img.ContainsInt(1, x, y) {
		return flowPoint{}, false
	}
	get := func(dx, dy int) float64 {
		v, _ := img.GetPixelValue(x+dx, y+dy)
		return float64(v)
	}
	gx := (get(1, -1) + 2*get(1, 0) + get(1, 1)) - (get(-1, -1) + 2*get(-1, 0) + get(-1, 1))
	gy := (get(-1, 1) + 2*get(0, 1) + get(1, 1)) - (get(-1, -1) + 2*get(0, -1) + get(1, -1))
	return flowPoint{x: x, y: y, mag: math.Hypot(gx, gy), dir: math.Atan2(gy, gx)}, true
}

// darkAnchor steps from an edge point onto its module side: the gradient
// points toward the polarized-brighter side, so walking a few pixels
// against it lands inside the bar or module that produced the edge. Both
// directions are tried, since a reversed-polarity read flips which side
// is which.
func darkAnchor(img *raster.Image, fp flowPoint, polarity int) (x, y int, ok bool) {
	cos, sin := math.Cos(fp.dir), math.Sin(fp.dir)
	for _, sign := range [2]float64{-1, 1} {
		for d := 1.0; d <= 4.0; d++ {
			px := fp.x + int(math.Round(sign*cos*d))
			py := fp.y + int(math.Round(sign*sin*d))
			if v, inBounds := polarizedValue(img, px, py, polarity); inBounds && v < darkThreshold {
				return px, py, true
			}
		}
	}
	return 0, 0, false
}

// seekEdge is the simplified stand-in for MatrixRegionSeekEdge: it scans
// a small window around loc for the strongest nearby edge, confirming
// the scan grid landed near a real boundary before the costlier corner
// fit runs. The magnitude floor uses the same EdgeThresh * 7.65 scaling
// dmtxRegionScanPixel applies (765 at EdgeThresh 100), compared here
// against the Sobel magnitude, whose maximum is about 1442.
func seekEdge(img *raster.Image, loc scangrid.Loc, p Params) (flowPoint, bool) {
	const radius = 4
	magMin := float64(p.EdgeThresh) * 7.65

	best := flowPoint{}
	found := false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			fp, ok := edgeStrength(img, loc.X+dx, loc.Y+dy)
			if !ok {
				continue
			}
			if fp.mag > best.mag {
				best = fp
				found = true
			}
		}
	}
	if !found || best.mag < magMin {
		return flowPoint{}, false
	}
	return best, true
}
