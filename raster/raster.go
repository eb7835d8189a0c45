// Package raster implements the packed-pixel grayscale grid that the
// symbol locator and sampler read from, plus the bridge to the standard
// library's image.Image. libdmtx stores image data as a single packed
// pixel array addressed bottom-left-up (dmtximage.c); this package keeps
// that same bottom-left addressing internally while accepting and
// producing ordinary top-left image.Image values at the boundary.
package raster

import (
	"image"
	"image/color"
)

// Image is a read-only 8-bit luminance raster, addressed with (0,0) at
// the bottom-left corner per dmtxImageGetByteOffset's default
// DmtxFlipNone convention (row 0 of the incoming image.Image, which is
// top-left, lands at the highest Y here).
type Image struct {
	pix    []byte // row-major, bottom-left origin, one byte per pixel
	width  int
	height int
}

// New builds a raster.Image from an arbitrary image.Image by converting
// every pixel to 8-bit luminance (color.GrayModel), flipping vertically
// so row 0 is the bottom row. Grounded on dmtxImageCreate's DmtxPack8bppK
// channel setup - this package always operates in that single 8bpp "K"
// channel, since the locator and sampler never need color.
func New(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h)

	for y := 0; y < h; y++ {
		srcY := b.Min.Y + y
		dstRow := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(src.At(b.Min.X+x, srcY)).(color.Gray)
			pix[dstRow+x] = c.Y
		}
	}

	return &Image{pix: pix, width: w, height: h}
}

// NewFromGray wraps a pre-built 8bpp pixel array directly, for callers
// (tests, synthetic symbol rendering) that already have bottom-left,
// row-major luminance data and don't need the image.Image conversion.
func NewFromGray(pix []byte, width, height int) *Image {
	return &Image{pix: pix, width: width, height: height}
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// ContainsInt is dmtxImageContainsInt: whether (x,y) lies at least margin
// pixels inside the image bounds.
func (img *Image) ContainsInt(margin, x, y int) bool {
	return x-margin >= 0 && x+margin < img.width && y-margin >= 0 && y+margin < img.height
}

// ContainsFloat is dmtxImageContainsFloat.
func (img *Image) ContainsFloat(x, y float64) bool {
	return x >= 0 && x < float64(img.width) && y >= 0 && y < float64(img.height)
}

// GetPixelValue is dmtxImageGetPixelValue restricted to the single 8bpp
// grayscale channel this package supports; returns (0, false) for
// out-of-bounds coordinates, mirroring dmtxImageGetByteOffset's
// DmtxUndefined return.
func (img *Image) GetPixelValue(x, y int) (int, bool) {
	if !img.ContainsInt(0, x, y) {
		return 0, false
	}
	return int(img.pix[y*img.width+x]), true
}

// Subsample returns a new raster keeping every step-th pixel in both
// directions, the decode-side scale divisor of dmtxDecodeSetProp's
// DmtxPropScale: the locator and sampler then work entirely in the
// smaller coordinate space.
func (img *Image) Subsample(step int) *Image {
	if step <= 1 {
		return img
	}
	w := (img.width + step - 1) / step
	h := (img.height + step - 1) / step
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		srcRow := y * step * img.width
		dstRow := y * w
		for x := 0; x < w; x++ {
			pix[dstRow+x] = img.pix[srcRow+x*step]
		}
	}
	return &Image{pix: pix, width: w, height: h}
}

// AsImage renders the raster back to a standard library image.Image
// (top-left origin), the inverse of New, for anything that wants to
// inspect/save a decoder's working raster. The encoder does not use it:
// RenderModules produces its image.Image directly.
func (img *Image) AsImage() image.Image {
	out := image.NewGray(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		srcRow := (img.height - 1 - y) * img.width
		dstRow := y * out.Stride
		copy(out.Pix[dstRow:dstRow+img.width], img.pix[srcRow:srcRow+img.width])
	}
	return out
}
