package dmtx

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
)

// roundTrip renders message to an image with Encode and confirms Decode
// recovers it byte for byte, the top-level counterpart of
// internal/decstream's scheme-level roundTrip helper.
func roundTrip(t *testing.T, message string, opts *EncodeOptions) {
	t.Helper()
	img, err := Encode([]byte(message), opts)
	if err != nil {
		t.Fatalf("Encode(%q): %v", message, err)
	}

	messages, err := Decode(img, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Decode found %d messages, want 1", len(messages))
	}
	if !bytes.Equal(messages[0].Data, []byte(message)) {
		t.Fatalf("round trip %q -> %q", message, messages[0].Data)
	}
}

func TestRoundTripDefaultOptions(t *testing.T) {
	roundTrip(t, "Hello, World!", nil)
}

func TestRoundTripEachScheme(t *testing.T) {
	cases := []struct {
		name    string
		message string
		scheme  Scheme
	}{
		{"ascii", "Hello, World! 123456", Ascii},
		{"c40", "THE QUICK BROWN FOX", C40},
		{"text", "the quick brown fox", Text},
		{"x12", "ABC 123 DEF 456", X12},
		{"edifact", "ABC DEF 123 !\"#$", Edifact},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultEncodeOptions()
			opts.Scheme = tc.scheme
			roundTrip(t, tc.message, &opts)
		})
	}
}

func TestRoundTripAsciiDigitHeavy(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.Scheme = Ascii
	roundTrip(t, "30Q324343430794<OQQ", &opts)
}

func TestRoundTripExactSize(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.SizeRequest = Size22x22
	roundTrip(t, "fits in 22x22", &opts)
}

func TestRoundTripRectangular(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.SizeRequest = RectAuto
	roundTrip(t, "short", &opts)
}

func TestRoundTripFNC1(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.FNC1 = 232
	message := []byte{232, '0', '1', '2', '3', '4', '5', '6', '7'}

	img, err := Encode(message, &opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// The decoder must be told which byte value FNC1 codewords expand
	// back into, or it strips them from the output.
	dopts := DefaultDecodeOptions()
	dopts.FNC1 = 232
	messages, err := Decode(img, &dopts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Decode found %d messages, want 1", len(messages))
	}
	if !bytes.Equal(messages[0].Data, message) {
		t.Fatalf("FNC1 round trip %v -> %v", message, messages[0].Data)
	}
}

func TestDecodeNoSymbolFound(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	messages, err := Decode(img, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("Decode of a blank image found %d messages, want 0", len(messages))
	}
}

func TestDecodeRejectsBadOptions(t *testing.T) {
	img, err := Encode([]byte("hi"), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	opts := DefaultDecodeOptions()
	opts.ScanGap = 0
	if _, err := Decode(img, &opts); err != ErrUnsupportedOption {
		t.Fatalf("ScanGap=0 err = %v, want ErrUnsupportedOption", err)
	}
}

func TestRoundTripSizeFilterRejectsMismatch(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.SizeRequest = Size22x22
	img, err := Encode([]byte("fits in 22x22"), &opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dopts := DefaultDecodeOptions()
	dopts.SizeRequest = Size10x10
	messages, err := Decode(img, &dopts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("Decode with mismatched SizeRequest found %d messages, want 0", len(messages))
	}
}

// bilinearGray samples src at fractional coordinate (x,y) relative to its
// bounds' origin, returning white for points outside the image, the way
// a photographed symbol fades to background rather than hard-clipping at
// its edge.
func bilinearGray(src image.Image, x, y float64) color.Gray {
	b := src.Bounds()
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	get := func(xi, yi int) float64 {
		px, py := b.Min.X+xi, b.Min.Y+yi
		if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
			return 255
		}
		return float64(color.GrayModel.Convert(src.At(px, py)).(color.Gray).Y)
	}
	v00 := get(int(x0), int(y0))
	v10 := get(int(x0)+1, int(y0))
	v01 := get(int(x0), int(y0)+1)
	v11 := get(int(x0)+1, int(y0)+1)
	top := v00*(1-fx) + v10*fx
	bot := v01*(1-fx) + v11*fx
	return color.Gray{Y: byte(top*(1-fy) + bot*fy)}
}

// rotateScaleImage resamples src under the affine transform that scales
// by scale and then rotates by angleDeg degrees, sized to fit the
// rotated footprint with a quiet-zone margin on every side - standing in
// for a symbol photographed at an angle and at a different distance.
func rotateScaleImage(src image.Image, angleDeg, scale float64) image.Image {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	angle := angleDeg * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)

	forward := func(x, y float64) (float64, float64) {
		x, y = x*scale, y*scale
		return x*cos - y*sin, x*sin + y*cos
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		tx, ty := forward(c[0], c[1])
		minX, maxX = math.Min(minX, tx), math.Max(maxX, tx)
		minY, maxY = math.Min(minY, ty), math.Max(maxY, ty)
	}

	const pad = 20.0
	offX, offY := pad-minX, pad-minY
	dstW := int(math.Ceil(maxX-minX)) + 2*int(pad)
	dstH := int(math.Ceil(maxY-minY)) + 2*int(pad)

	dst := image.NewGray(image.Rect(0, 0, dstW, dstH))
	for i := range dst.Pix {
		dst.Pix[i] = 0xFF
	}

	invCos, invSin := math.Cos(-angle), math.Sin(-angle)
	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			rx, ry := float64(dx)-offX, float64(dy)-offY
			ux := rx*invCos - ry*invSin
			uy := rx*invSin + ry*invCos
			sx, sy := ux/scale, uy/scale
			dst.SetGray(dx, dy, bilinearGray(src, sx, sy))
		}
	}
	return dst
}

// TestRoundTripRotatedAndScaled: a symbol rotated 30
// degrees and scaled 3x must still decode to the original message, which
// only happens if the region locator's fit2raw transform tracks the
// rotation/scale closely enough for the sampler to read correct module
// colors.
func TestRoundTripRotatedAndScaled(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.SizeRequest = Size10x10
	opts.ModuleSize = 4
	opts.MarginSize = 4

	message := "Hi"
	img, err := Encode([]byte(message), &opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rotated := rotateScaleImage(img, 30, 3)

	messages, err := Decode(rotated, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Decode of a rotated/scaled symbol found %d messages, want 1", len(messages))
	}
	if string(messages[0].Data) != message {
		t.Fatalf("round trip after rotate+scale %q -> %q", message, messages[0].Data)
	}
}

// pasteGray copies src into dst with its top-left corner at (x0,y0).
func pasteGray(dst *image.Gray, src image.Image, x0, y0 int) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			dst.SetGray(x0+x-b.Min.X, y0+y-b.Min.Y, c)
		}
	}
}

// TestDecodeTwoSymbolsInOneRaster: a raster containing
// two non-overlapping symbols must decode to two distinct messages, with
// the decode cache's CONSUMED bits preventing the first symbol's region
// from being reported twice once the scan grid's remaining seeds wander
// back across it.
func TestDecodeTwoSymbolsInOneRaster(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.SizeRequest = Size10x10
	opts.ModuleSize = 4
	opts.MarginSize = 4

	const msg1, msg2 = "Hi", "Yo"
	img1, err := Encode([]byte(msg1), &opts)
	if err != nil {
		t.Fatalf("Encode msg1: %v", err)
	}
	img2, err := Encode([]byte(msg2), &opts)
	if err != nil {
		t.Fatalf("Encode msg2: %v", err)
	}

	const gap = 20
	b1, b2 := img1.Bounds(), img2.Bounds()
	width := b1.Dx() + gap + b2.Dx() + 2*gap
	height := b1.Dy()
	if b2.Dy() > height {
		height = b2.Dy()
	}
	height += 2 * gap

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xFF
	}
	pasteGray(canvas, img1, gap, gap)
	pasteGray(canvas, img2, gap+b1.Dx()+gap, gap)

	messages, err := Decode(canvas, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Decode of two disjoint symbols found %d messages, want 2", len(messages))
	}

	got := map[string]bool{string(messages[0].Data): true, string(messages[1].Data): true}
	if !got[msg1] || !got[msg2] {
		t.Fatalf("Decode returned %q, want both %q and %q", []string{string(messages[0].Data), string(messages[1].Data)}, msg1, msg2)
	}
}

// TestRoundTripSubsampledDecode: a symbol rendered at a large module size
// still decodes when the raster is subsampled by the decoder's Scale
// divisor before scanning.
func TestRoundTripSubsampledDecode(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.ModuleSize = 8
	opts.MarginSize = 4

	const message = "scaled"
	img, err := Encode([]byte(message), &opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dopts := DefaultDecodeOptions()
	dopts.Scale = 2
	messages, err := Decode(img, &dopts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Decode with Scale=2 found %d messages, want 1", len(messages))
	}
	if string(messages[0].Data) != message {
		t.Fatalf("subsampled round trip %q -> %q", message, messages[0].Data)
	}
}

// invertGray flips every pixel of src, producing the light-on-dark twin
// of an encoded symbol.
func invertGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			dst.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255 - c.Y})
		}
	}
	return dst
}

// TestRoundTripInvertedPolarity: a light-on-dark rendition of a symbol
// must decode to the same bytes, exercising the locator's reversed
// polarity path end to end.
func TestRoundTripInvertedPolarity(t *testing.T) {
	const message = "reversed"
	img, err := Encode([]byte(message), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	messages, err := Decode(invertGray(img), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Decode of an inverted symbol found %d messages, want 1", len(messages))
	}
	if string(messages[0].Data) != message {
		t.Fatalf("inverted round trip %q -> %q", message, messages[0].Data)
	}
}

// TestDecodeEdgeBoundsFilter: EdgeMax tighter than the symbol's real
// diagonal must suppress the decode entirely; a permissive window must
// let it through.
func TestDecodeEdgeBoundsFilter(t *testing.T) {
	const message = "bounded"
	img, err := Encode([]byte(message), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dopts := DefaultDecodeOptions()
	dopts.EdgeMax = 20
	messages, err := Decode(img, &dopts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("Decode with EdgeMax=20 found %d messages, want 0", len(messages))
	}

	dopts = DefaultDecodeOptions()
	dopts.EdgeMin = 30
	dopts.EdgeMax = 1000
	messages, err = Decode(img, &dopts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(messages) != 1 || string(messages[0].Data) != message {
		t.Fatalf("Decode with permissive edge bounds = %v, want [%q]", messages, message)
	}
}
