// Package sampler reads module colors from a located, sized region and
// turns them into the boolean mapping grid internal/placement decodes
// into codewords, following dmtxdecode.c's PopulateArrayFromMatrix.
package sampler

import (
	"github.com/dmtxgo/dmtx/internal/region"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
	"github.com/dmtxgo/dmtx/raster"
)

// Sample reads every data-bearing module in reg from img, thresholds
// each against the midpoint of reg's measured on/off colors, and
// returns the combined reg.MappingRows x reg.MappingCols boolean grid
// (row-major, true = dark/on) that internal/placement.Decode expects.
//
// PopulateArrayFromMatrix tallies each module's color from four
// directions of travel (TallyModuleJumps) and takes a majority vote;
// this is reduced to a single ReadModuleColor-equivalent sample per
// module (internal/region's exported ReadModuleColor, already an
// average over a small offset cluster) compared against the region's
// on/off midpoint.
func Sample(img *raster.Image, reg *region.Region) []bool {
	attrs := symbolsize.Get(reg.SizeIdx)
	grid := make([]bool, reg.MappingRows*reg.MappingCols)
	mid := float64(reg.OnColor+reg.OffColor) / 2

	for yRegion := 0; yRegion < attrs.VertDataRegions; yRegion++ {
		for xRegion := 0; xRegion < attrs.HorizDataRegions; xRegion++ {
			for mapRow := 0; mapRow < attrs.DataRegionRows; mapRow++ {
				physRow := yRegion*(attrs.DataRegionRows+2) + mapRow + 1
				// physRow counts up from the symbol's bottom in fit
				// space; mapping row 0 is the topmost row, so mirror
				// vertically, per PopulateArrayFromMatrix's
				// yRegionTotal*mapHeight - rowTmp - 1 flip.
				combinedRow := reg.MappingRows - 1 - (yRegion*attrs.DataRegionRows + mapRow)

				for mapCol := 0; mapCol < attrs.DataRegionCols; mapCol++ {
					physCol := xRegion*(attrs.DataRegionCols+2) + mapCol + 1
					combinedCol := xRegion*attrs.DataRegionCols + mapCol

					v, ok := reg.ReadModuleColor(img, physRow, physCol, reg.SymbolRows, reg.SymbolCols)
					if !ok {
						continue
					}
					grid[combinedRow*reg.MappingCols+combinedCol] = v < mid
				}
			}
		}
	}
	return grid
}
