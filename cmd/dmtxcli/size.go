package main

import (
	"fmt"

	"github.com/dmtxgo/dmtx"
)

var namedSizes = map[string]dmtx.SizeRequest{
	"10x10":   dmtx.Size10x10,
	"12x12":   dmtx.Size12x12,
	"14x14":   dmtx.Size14x14,
	"16x16":   dmtx.Size16x16,
	"18x18":   dmtx.Size18x18,
	"20x20":   dmtx.Size20x20,
	"22x22":   dmtx.Size22x22,
	"24x24":   dmtx.Size24x24,
	"26x26":   dmtx.Size26x26,
	"32x32":   dmtx.Size32x32,
	"36x36":   dmtx.Size36x36,
	"40x40":   dmtx.Size40x40,
	"44x44":   dmtx.Size44x44,
	"48x48":   dmtx.Size48x48,
	"52x52":   dmtx.Size52x52,
	"64x64":   dmtx.Size64x64,
	"72x72":   dmtx.Size72x72,
	"80x80":   dmtx.Size80x80,
	"88x88":   dmtx.Size88x88,
	"96x96":   dmtx.Size96x96,
	"104x104": dmtx.Size104x104,
	"120x120": dmtx.Size120x120,
	"132x132": dmtx.Size132x132,
	"144x144": dmtx.Size144x144,
	"8x18":    dmtx.Size8x18,
	"8x32":    dmtx.Size8x32,
	"12x26":   dmtx.Size12x26,
	"12x36":   dmtx.Size12x36,
	"16x36":   dmtx.Size16x36,
	"16x48":   dmtx.Size16x48,
}

// parseSizeRequest accepts the two auto keywords, "any", and every catalog
// dimension (e.g. "24x24"), shared by the encode and decode subcommands.
func parseSizeRequest(s string) (dmtx.SizeRequest, error) {
	switch s {
	case "square-auto":
		return dmtx.SquareAuto, nil
	case "rect-auto":
		return dmtx.RectAuto, nil
	case "any":
		return dmtx.AnyShape, nil
	}
	if sz, ok := namedSizes[s]; ok {
		return sz, nil
	}
	return 0, fmt.Errorf("unknown size %q", s)
}
