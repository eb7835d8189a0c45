package raster

import "image"

// RenderModules paints a symbol's full module grid (finder borders,
// alignment patterns and data modules all already resolved to booleans,
// true = dark) into a top-left-origin image.Image at moduleSize pixels
// per module, surrounded by a marginSize-module quiet zone of light
// modules. There is no equivalent libdmtx function - the reference
// library leaves rasterization to the caller.
func RenderModules(modules [][]bool, moduleSize, marginSize int) image.Image {
	rows := len(modules)
	cols := 0
	if rows > 0 {
		cols = len(modules[0])
	}

	width := (cols + 2*marginSize) * moduleSize
	height := (rows + 2*marginSize) * moduleSize

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !modules[r][c] {
				continue
			}
			px0 := (c + marginSize) * moduleSize
			py0 := (r + marginSize) * moduleSize
			for dy := 0; dy < moduleSize; dy++ {
				off := (py0+dy)*img.Stride + px0
				for dx := 0; dx < moduleSize; dx++ {
					img.Pix[off+dx] = 0x00
				}
			}
		}
	}
	return img
}

// DebugASCII renders the raster as a crude block-character grid for
// terminal inspection, one character per source pixel column/row pair
// (not per module). Not a substitute for image output; intended for
// quick sanity checks while developing the locator.
func (img *Image) DebugASCII(threshold int) string {
	out := make([]byte, 0, (img.width+1)*img.height)
	for y := img.height - 1; y >= 0; y-- {
		for x := 0; x < img.width; x++ {
			v, _ := img.GetPixelValue(x, y)
			if v < threshold {
				out = append(out, '#')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
