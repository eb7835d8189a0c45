package region

import (
	"github.com/dmtxgo/dmtx/internal/geometry"
	"github.com/dmtxgo/dmtx/raster"
)

// darkThreshold splits polarized module colors into on and off when
// walking the symbol's connected module area. findSize re-measures the
// located region's actual on/off colors afterwards, so this only has to
// be good enough to keep the walk inside the symbol.
const darkThreshold = 128

// maxComponentPixels caps the flood walk, bounding work and memory on
// rasters with large dark areas that are clearly not a symbol.
const maxComponentPixels = 1 << 20

// minComponentPixels rejects components too small to be a symbol at any
// supported module size, stray dark specks included.
const minComponentPixels = 48

// minComponentDiagonalSq rejects components whose bounding box is
// smaller than the smallest locatable symbol, squared to avoid a sqrt.
const minComponentDiagonalSq = 16 * 16

// blazeComponent walks the 8-connected polarized-dark component
// containing (x0,y0) and returns its boundary pixels (component pixels
// with at least one light or out-of-bounds 4-neighbor). This is the
// analog of dmtxregion.c's BlazeTrail edge walk: where the original
// follows the strongest-flow contour one cache-marked step at a time,
// this package claims the whole module area at once and lets the
// hull/rectangle fit recover the outline. The EdgeMin/EdgeMax diagonal
// bounds play the role BlazeTrail's edge-size cutoffs play there.
func blazeComponent(img *raster.Image, x0, y0, polarity int, p Params) ([]geometry.Vector2, bool) {
	w, h := img.Width(), img.Height()
	if v, ok := polarizedValue(img, x0, y0, polarity); !ok || v >= darkThreshold {
		return nil, false
	}

	visited := make([]bool, w*h)
	queue := make([]int, 0, 256)
	var boundary []geometry.Vector2

	dark := func(x, y int) bool {
		v, ok := polarizedValue(img, x, y, polarity)
		return ok && v < darkThreshold
	}

	push := func(x, y int) {
		idx := y*w + x
		if !visited[idx] && dark(x, y) {
			visited[idx] = true
			queue = append(queue, idx)
		}
	}

	push(x0, y0)
	total := 0
	minX, maxX, minY, maxY := x0, x0, y0, y0

	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := idx%w, idx/w

		total++
		if total > maxComponentPixels {
			return nil, false
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		if !dark(x-1, y) || !dark(x+1, y) || !dark(x, y-1) || !dark(x, y+1) {
			boundary = append(boundary, geometry.Vector2{X: float64(x), Y: float64(y)})
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx >= 0 && ny >= 0 && nx < w && ny < h {
					push(nx, ny)
				}
			}
		}
	}

	dx, dy := maxX-minX, maxY-minY
	diagSq := dx*dx + dy*dy

	minDiagSq := minComponentDiagonalSq
	if p.EdgeMin > 0 && p.EdgeMin*p.EdgeMin > minDiagSq {
		minDiagSq = p.EdgeMin * p.EdgeMin
	}
	if total < minComponentPixels || diagSq < minDiagSq {
		return nil, false
	}
	if p.EdgeMax > 0 && diagSq > p.EdgeMax*p.EdgeMax {
		return nil, false
	}
	return boundary, true
}
