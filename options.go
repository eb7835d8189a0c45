package dmtx

import (
	"time"

	"github.com/dmtxgo/dmtx/internal/encstream"
	"github.com/dmtxgo/dmtx/internal/scheme"
	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

// Scheme selects the encodation scheme Encode uses to pack input bytes.
type Scheme int

const (
	// AutoBest tries every scheme plus a greedy mixed-scheme heuristic
	// and keeps the shortest valid encoding.
	AutoBest Scheme = iota
	// AutoFast is accepted for compatibility: the reference
	// implementation declares it but returns "not implemented" from its
	// branch. This package aliases it to AutoBest rather than erroring,
	// so existing callers that pass AutoFast still get a symbol.
	AutoFast
	Ascii
	C40
	Text
	X12
	Edifact
	Base256
)

func (s Scheme) toSchemeID() (scheme.ID, bool) {
	switch s {
	case Ascii:
		return scheme.ASCII, true
	case C40:
		return scheme.C40, true
	case Text:
		return scheme.Text, true
	case X12:
		return scheme.X12, true
	case Edifact:
		return scheme.Edifact, true
	case Base256:
		return scheme.Base256, true
	default:
		return 0, false
	}
}

// SizeRequest selects which symbol sizes Encode is allowed to choose
// among. SquareAuto and RectAuto pick the smallest fitting size of their
// shape; Size selects one exact catalog entry (see the Size* constants
// re-exported below).
type SizeRequest int

const (
	SquareAuto SizeRequest = SizeRequest(symbolsize.SquareAuto)
	RectAuto   SizeRequest = SizeRequest(symbolsize.RectAuto)

	// AnyShape accepts a located region of either shape family. Decode's
	// default - unlike SquareAuto/RectAuto, which only make sense as an
	// Encode request ("pick the smallest size of this shape"), Decode
	// doesn't know the symbol's shape ahead of time. Mirrors
	// DmtxSymbolShapeAuto in the original's DmtxProperty enum, kept
	// distinct from DmtxSymbolSquareAuto/DmtxSymbolRectAuto.
	AnyShape SizeRequest = -4
)

// Re-exported concrete symbol sizes, for callers that want to pin Encode
// to one exact catalog entry instead of an auto request.
const (
	Size10x10   = SizeRequest(symbolsize.Size10x10)
	Size12x12   = SizeRequest(symbolsize.Size12x12)
	Size14x14   = SizeRequest(symbolsize.Size14x14)
	Size16x16   = SizeRequest(symbolsize.Size16x16)
	Size18x18   = SizeRequest(symbolsize.Size18x18)
	Size20x20   = SizeRequest(symbolsize.Size20x20)
	Size22x22   = SizeRequest(symbolsize.Size22x22)
	Size24x24   = SizeRequest(symbolsize.Size24x24)
	Size26x26   = SizeRequest(symbolsize.Size26x26)
	Size32x32   = SizeRequest(symbolsize.Size32x32)
	Size36x36   = SizeRequest(symbolsize.Size36x36)
	Size40x40   = SizeRequest(symbolsize.Size40x40)
	Size44x44   = SizeRequest(symbolsize.Size44x44)
	Size48x48   = SizeRequest(symbolsize.Size48x48)
	Size52x52   = SizeRequest(symbolsize.Size52x52)
	Size64x64   = SizeRequest(symbolsize.Size64x64)
	Size72x72   = SizeRequest(symbolsize.Size72x72)
	Size80x80   = SizeRequest(symbolsize.Size80x80)
	Size88x88   = SizeRequest(symbolsize.Size88x88)
	Size96x96   = SizeRequest(symbolsize.Size96x96)
	Size104x104 = SizeRequest(symbolsize.Size104x104)
	Size120x120 = SizeRequest(symbolsize.Size120x120)
	Size132x132 = SizeRequest(symbolsize.Size132x132)
	Size144x144 = SizeRequest(symbolsize.Size144x144)
	Size8x18    = SizeRequest(symbolsize.Size8x18)
	Size8x32    = SizeRequest(symbolsize.Size8x32)
	Size12x26   = SizeRequest(symbolsize.Size12x26)
	Size12x36   = SizeRequest(symbolsize.Size12x36)
	Size16x36   = SizeRequest(symbolsize.Size16x36)
	Size16x48   = SizeRequest(symbolsize.Size16x48)
)

// FNC1Undefined marks "no FNC1 byte configured", matching
// encstream.Undefined/DmtxUndefined.
const FNC1Undefined = encstream.Undefined

// EncodeOptions controls Encode's behavior: a plain struct with a
// Default constructor, no builder pattern.
type EncodeOptions struct {
	// Scheme selects the encodation scheme. Default AutoBest.
	Scheme Scheme

	// SizeRequest constrains which symbol sizes are eligible. Default
	// SquareAuto.
	SizeRequest SizeRequest

	// ModuleSize is the rendered size, in pixels, of one module's square.
	// Must be >= 1. Default 5.
	ModuleSize int

	// MarginSize is the quiet-zone width, in modules rendered at
	// ModuleSize, surrounding the symbol. Must be >= 0. Default 10.
	MarginSize int

	// FNC1 is the input byte value to treat as an FNC1/Application
	// Identifier separator, or FNC1Undefined to disable FNC1 handling.
	// Default FNC1Undefined.
	FNC1 int

	// Mosaic renders three overlaid ECC 200 symbols, one per RGB
	// channel, tripling data density on a color-capable reader. Default
	// false.
	//
	// Mosaic combined with SizeRequest == RectAuto is rejected with
	// ErrUnsupportedOption rather than guessing at the reference
	// implementation's unexercised behavior.
	Mosaic bool
}

// DefaultEncodeOptions returns the package's default encoding parameters.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Scheme:      AutoBest,
		SizeRequest: SquareAuto,
		ModuleSize:  5,
		MarginSize:  10,
		FNC1:        FNC1Undefined,
	}
}

func (o EncodeOptions) validate() error {
	if o.ModuleSize < 1 {
		return ErrUnsupportedOption
	}
	if o.MarginSize < 0 {
		return ErrUnsupportedOption
	}
	if o.Mosaic && o.SizeRequest == RectAuto {
		return ErrUnsupportedOption
	}
	return nil
}

func (o EncodeOptions) sizeRequest() symbolsize.Size {
	return symbolsize.Size(o.SizeRequest)
}

// DecodeOptions controls Decode's behavior. Mirrors EncodeOptions'
// plain-struct-with-defaults shape.
type DecodeOptions struct {
	// EdgeMin, EdgeMax bound the pixel diagonal of a candidate symbol's
	// footprint, in original (pre-Scale) pixels. Zero means "unbounded".
	// Candidates whose connected module area spans a smaller or larger
	// diagonal are rejected before the corner fit runs.
	EdgeMin, EdgeMax int

	// ScanGap is the pixel spacing between scan-grid candidate seeds.
	// Must be >= 1. Default 2.
	ScanGap int

	// Scale is the integer subsample divisor applied to the raster
	// before scanning. Must be >= 1. Default 1.
	Scale int

	// SquareDevn is the maximum allowed corner-angle deviation from a
	// right angle, in degrees, for a candidate quadrilateral to be
	// accepted: the locator refits the finder's two solid edges and
	// rejects the region when their measured angle deviates further.
	// Must be in (0, 90). Default 15. Stored as its cosine internally,
	// matching DmtxPropSquareDevn.
	SquareDevn float64

	// SizeRequest constrains which located symbol sizes Decode reports.
	// Default AnyShape (any size, square or rectangular); SquareAuto and
	// RectAuto accept only their shape family, and a concrete Size only
	// that exact size.
	SizeRequest SizeRequest

	// EdgeThresh is the minimum percentage edge strength (1..100)
	// treated as a real module boundary; candidate seeds whose strongest
	// nearby gradient falls below EdgeThresh * 7.65 are skipped.
	// Default 10.
	EdgeThresh int

	// XMin, XMax, YMin, YMax bound the region of the input raster that's
	// searched, in original pixel coordinates. Zero values (all four)
	// mean "search the whole image".
	XMin, XMax, YMin, YMax int

	// FNC1 is the input byte value the decode-stream interpreter expands
	// FNC1 codewords back into, or FNC1Undefined to pass them through
	// unexpanded.
	FNC1 int

	// CorrectionsMax caps the number of Reed-Solomon corrections
	// accepted per interleaved block.
	// Zero means "use the block's built-in maximum" (BlockMaxCorrectable
	// per symbolsize.Attributes).
	CorrectionsMax int

	// Timeout bounds how long Decode searches for regions before giving
	// up and returning whatever it has found so far. Zero means
	// "search until the scan grid is exhausted".
	Timeout time.Duration
}

// DefaultDecodeOptions returns the package's default decoding parameters.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		ScanGap:     2,
		Scale:       1,
		SquareDevn:  15,
		SizeRequest: AnyShape,
		EdgeThresh:  10,
		FNC1:        FNC1Undefined,
	}
}

func (o DecodeOptions) validate() error {
	if o.ScanGap < 1 {
		return ErrUnsupportedOption
	}
	if o.Scale < 1 {
		return ErrUnsupportedOption
	}
	if o.SquareDevn <= 0 || o.SquareDevn >= 90 {
		return ErrUnsupportedOption
	}
	if o.EdgeThresh < 1 || o.EdgeThresh > 100 {
		return ErrUnsupportedOption
	}
	if o.CorrectionsMax < 0 {
		return ErrUnsupportedOption
	}
	return nil
}
