package region

import (
	"math"

	"github.com/dmtxgo/dmtx/internal/geometry"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// solidBorderMax is the brightest a sample along the finder's solid
// bottom/left border may average, in polarized values, and still be
// treated as on.
const solidBorderMax = 96.0

// minClockContrast is the smallest on/off contrast required along the
// alternating top/right clock track for a candidate size to be accepted.
const minClockContrast = 40.0

// jumpTolerance is the allowed error in a calibration bar's counted
// transitions versus the candidate size's module count, and the most
// transitions tolerated on a finder bar or quiet-zone track.
const jumpTolerance = 2

// findSize is MatrixRegionFindSize in two stages: a contrast probe over
// every catalog size keeps the candidate whose alternating top/right
// clock track shows the strongest on/off separation (with a uniformly
// dark bottom/left finder border), and the winner is then verified by
// the original's eight CountJumpTally passes - both calibration bars
// must show moduleCount-1 transitions within tolerance, while both
// finder bars and the four surrounding quiet-zone tracks must show at
// most jumpTolerance transitions.
func findSize(img *raster.Image, reg *Region) bool {
	bestIdx := symbolsize.Undefined
	bestContrast := -1.0
	var bestOn, bestOff float64

	for i := 0; i < symbolsize.Count; i++ {
		attrs := symbolsize.Get(symbolsize.Size(i))
		rows, cols := attrs.SymbolRows, attrs.SymbolCols
		if rows < 6 || cols < 6 {
			continue
		}

		solidSum, solidCount := 0.0, 0
		for c := 0; c < cols; c++ {
			if v, ok := reg.ReadModuleColor(img, 0, c, rows, cols); ok {
				solidSum += v
				solidCount++
			}
		}
		for r := 1; r < rows; r++ {
			if v, ok := reg.ReadModuleColor(img, r, 0, rows, cols); ok {
				solidSum += v
				solidCount++
			}
		}
		if solidCount == 0 || solidSum/float64(solidCount) > solidBorderMax {
			continue
		}

		onSum, onCount, offSum, offCount := 0.0, 0, 0.0, 0
		addSample := func(v float64, parity int) {
			if parity%2 == 0 {
				onSum += v
				onCount++
			} else {
				offSum += v
				offCount++
			}
		}
		for c := 0; c < cols; c++ {
			if v, ok := reg.ReadModuleColor(img, rows-1, c, rows, cols); ok {
				addSample(v, c)
			}
		}
		for r := 0; r < rows; r++ {
			if v, ok := reg.ReadModuleColor(img, r, cols-1, rows, cols); ok {
				addSample(v, r)
			}
		}
		if onCount == 0 || offCount == 0 {
			continue
		}

		onAvg, offAvg := onSum/float64(onCount), offSum/float64(offCount)
		contrast := math.Abs(offAvg - onAvg)
		if contrast > bestContrast {
			bestContrast = contrast
			bestIdx = symbolsize.Size(i)
			bestOn, bestOff = onAvg, offAvg
		}
	}

	if bestIdx == symbolsize.Undefined || bestContrast < minClockContrast {
		return false
	}

	attrs := symbolsize.Get(bestIdx)
	reg.SizeIdx = bestIdx
	reg.SymbolRows = attrs.SymbolRows
	reg.SymbolCols = attrs.SymbolCols
	reg.MappingRows = attrs.MappingRows
	reg.MappingCols = attrs.MappingCols
	if bestOn < bestOff {
		reg.OnColor, reg.OffColor = int(bestOn), int(bestOff)
	} else {
		reg.OnColor, reg.OffColor = int(bestOff), int(bestOn)
	}

	return verifyJumpTallies(img, reg)
}

// verifyJumpTallies runs MatrixRegionFindSize's post-candidate
// verification: transition counts along the two calibration bars, the
// two finder bars, and the four quiet-zone tracks just outside the
// symbol.
func verifyJumpTallies(img *raster.Image, reg *Region) bool {
	rows, cols := reg.SymbolRows, reg.SymbolCols

	// Horizontal calibration bar: one jump per module boundary.
	jumps := countJumpTally(img, reg, 0, rows-1, true)
	if abs(1+jumps-cols) > jumpTolerance {
		return false
	}
	// Vertical calibration bar.
	jumps = countJumpTally(img, reg, cols-1, 0, false)
	if abs(1+jumps-rows) > jumpTolerance {
		return false
	}
	// Both solid finder bars.
	if countJumpTally(img, reg, 0, 0, true) > jumpTolerance {
		return false
	}
	if countJumpTally(img, reg, 0, 0, false) > jumpTolerance {
		return false
	}
	// The four surrounding quiet-zone tracks.
	if countJumpTally(img, reg, 0, -1, true) > jumpTolerance {
		return false
	}
	if countJumpTally(img, reg, -1, 0, false) > jumpTolerance {
		return false
	}
	if countJumpTally(img, reg, 0, rows, true) > jumpTolerance {
		return false
	}
	if countJumpTally(img, reg, cols, 0, false) > jumpTolerance {
		return false
	}
	return true
}

// countJumpTally is CountJumpTally: walk one row (dirRight) or column of
// module positions from (xStart, yStart), counting state transitions
// whose color swing exceeds 40% of the region's measured on/off
// separation. A start position just outside the symbol begins in the
// off state, as the quiet zone should.
func countJumpTally(img *raster.Image, reg *Region, xStart, yStart int, dirRight bool) int {
	rows, cols := reg.SymbolRows, reg.SymbolCols
	xInc, yInc := 0, 1
	if dirRight {
		xInc, yInc = 1, 0
	}

	on := true
	if xStart == -1 || xStart == cols || yStart == -1 || yStart == rows {
		on = false
	}

	jumpThreshold := 0.4 * float64(reg.OffColor-reg.OnColor)
	jumpCount := 0

	color, ok := reg.ReadModuleColor(img, yStart, xStart, rows, cols)
	if !ok {
		color = float64(reg.OffColor)
	}
	tModule := float64(reg.OffColor) - color

	for x, y := xStart+xInc, yStart+yInc; (dirRight && x < cols) || (!dirRight && y < rows); x, y = x+xInc, y+yInc {
		tPrev := tModule
		color, ok = reg.ReadModuleColor(img, y, x, rows, cols)
		if !ok {
			continue
		}
		tModule = float64(reg.OffColor) - color

		if on {
			if tModule < tPrev-jumpThreshold {
				jumpCount++
				on = false
			}
		} else {
			if tModule > tPrev+jumpThreshold {
				jumpCount++
				on = true
			}
		}
	}
	return jumpCount
}

// ReadModuleColor samples the raster around the center of module
// (row,col) of a rows x cols grid through reg's fit2raw transform and
// polarity, averaging a small cluster of offset samples the way the
// original ReadModuleColor averages several sample points per module
// rather than trusting a single pixel. Exported so internal/sampler can
// reuse it once a region's size has been settled.
func (reg *Region) ReadModuleColor(img *raster.Image, row, col, rows, cols int) (float64, bool) {
	cx := (float64(col) + 0.5) / float64(cols)
	cy := (float64(row) + 0.5) / float64(rows)

	offsets := []float64{0, 0.2, -0.2}
	sum, count := 0.0, 0
	for _, dx := range offsets {
		for _, dy := range offsets {
			fx := cx + dx/float64(cols)
			fy := cy + dy/float64(rows)
			p, ok := geometry.VMultiply(geometry.Vector2{X: fx, Y: fy}, reg.Fit2Raw)
			if !ok {
				continue
			}
			v, ok := polarizedValue(img, int(p.X+0.5), int(p.Y+0.5), reg.Polarity)
			if !ok {
				continue
			}
			sum += float64(v)
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
