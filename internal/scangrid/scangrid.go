// Package scangrid generates the fractal cross-pattern scan order used to
// seed the region locator: a decreasing sequence of square "levels", each
// sampled at a coarse cross-shaped grid of candidate pixels, refining to
// finer crosses as coarser levels are exhausted. A direct port of
// libdmtx's dmtxscangrid.c.
package scangrid

// Status mirrors DmtxRangeGood/Bad/End.
type Status int

const (
	Good Status = iota
	Bad
	End
)

// Loc is a pixel coordinate, mirroring DmtxPixelLoc.
type Loc struct {
	X, Y int
}

// Grid is the fractal scan grid state, mirroring DmtxScanGrid.
type Grid struct {
	xMin, xMax int
	yMin, yMax int

	minExtent int
	maxExtent int
	xOffset   int
	yOffset   int

	total  int
	extent int

	jumpSize   int
	pixelTotal int
	startPos   int
	pixelCount int
	xCenter    int
	yCenter    int
}

// New builds a scan grid over [xMin,xMax]x[yMin,yMax], with the smallest
// feature size (scanGap/scale) determining how fine the final cross level
// gets. Grounded on InitScanGrid.
func New(xMin, xMax, yMin, yMax, scanGap, scale int) *Grid {
	smallestFeature := scanGap / scale

	g := &Grid{xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}

	xExtent := xMax - xMin
	yExtent := yMax - yMin
	maxExtent := xExtent
	if yExtent > maxExtent {
		maxExtent = yExtent
	}

	extent := 1
	for ; extent < maxExtent; extent = ((extent + 1) * 2) - 1 {
		if extent <= smallestFeature {
			g.minExtent = extent
		}
	}
	g.maxExtent = extent

	g.xOffset = (xMin + xMax - g.maxExtent) / 2
	g.yOffset = (yMin + yMax - g.maxExtent) / 2

	g.total = 1
	g.extent = g.maxExtent
	g.setDerivedFields()

	return g
}

// Pop returns the next good location (which may be the current one) and
// advances the grid one position beyond it. Returns End once every level
// down to minExtent has been exhausted. Grounded on PopGridLocation.
func (g *Grid) Pop() (Loc, Status) {
	var loc Loc
	var status Status
	for {
		loc, status = g.coordinates()
		g.pixelCount++
		if status != Bad {
			break
		}
	}
	return loc, status
}

// coordinates is GetGridCoordinates.
func (g *Grid) coordinates() (Loc, Status) {
	if g.pixelCount >= g.pixelTotal {
		g.pixelCount = 0
		g.xCenter += g.jumpSize
	}
	if g.xCenter > g.maxExtent {
		g.xCenter = g.startPos
		g.yCenter += g.jumpSize
	}
	if g.yCenter > g.maxExtent {
		g.total *= 4
		g.extent /= 2
		g.setDerivedFields()
	}

	if g.extent == 0 || g.extent < g.minExtent {
		return Loc{X: -1, Y: -1}, End
	}

	count := g.pixelCount
	var loc Loc

	if count == g.pixelTotal-1 {
		loc.X, loc.Y = g.xCenter, g.yCenter
	} else {
		half := g.pixelTotal / 2
		quarter := half / 2
		if count < half {
			if count < quarter {
				loc.X = g.xCenter + (count - quarter)
			} else {
				loc.X = g.xCenter + (half - count)
			}
			loc.Y = g.yCenter
		} else {
			count -= half
			loc.X = g.xCenter
			if count < quarter {
				loc.Y = g.yCenter + (count - quarter)
			} else {
				loc.Y = g.yCenter + (half - count)
			}
		}
	}

	loc.X += g.xOffset
	loc.Y += g.yOffset

	if loc.X < g.xMin || loc.X > g.xMax || loc.Y < g.yMin || loc.Y > g.yMax {
		return loc, Bad
	}
	return loc, Good
}

// setDerivedFields is SetDerivedFields.
func (g *Grid) setDerivedFields() {
	g.jumpSize = g.extent + 1
	g.pixelTotal = 2*g.extent - 1
	g.startPos = g.extent / 2
	g.pixelCount = 0
	g.xCenter = g.startPos
	g.yCenter = g.startPos
}
