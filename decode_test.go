package dmtx

import (
	"testing"

	"github.com/dmtxgo/dmtx/internal/symbolsize"
)

func TestSizeMatchesRequest(t *testing.T) {
	tests := []struct {
		name string
		size symbolsize.Size
		req  SizeRequest
		want bool
	}{
		{"any accepts square", symbolsize.Size24x24, AnyShape, true},
		{"any accepts rect", symbolsize.Size12x36, AnyShape, true},
		{"square-auto accepts square", symbolsize.Size24x24, SquareAuto, true},
		{"square-auto rejects rect", symbolsize.Size12x36, SquareAuto, false},
		{"rect-auto accepts rect", symbolsize.Size12x36, RectAuto, true},
		{"rect-auto rejects square", symbolsize.Size24x24, RectAuto, false},
		{"exact match", symbolsize.Size24x24, Size24x24, true},
		{"exact mismatch", symbolsize.Size26x26, Size24x24, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizeMatchesRequest(tt.size, tt.req); got != tt.want {
				t.Errorf("sizeMatchesRequest(%v, %v) = %v, want %v", tt.size, tt.req, got, tt.want)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if v := clampInt(5, 0, 10); v != 5 {
		t.Errorf("clampInt(5,0,10) = %d, want 5", v)
	}
	if v := clampInt(-5, 0, 10); v != 0 {
		t.Errorf("clampInt(-5,0,10) = %d, want 0", v)
	}
	if v := clampInt(50, 0, 10); v != 10 {
		t.Errorf("clampInt(50,0,10) = %d, want 10", v)
	}
}

func TestDefaultDecodeOptionsSearchesWholeImage(t *testing.T) {
	opts := DefaultDecodeOptions()
	if opts.XMin != 0 || opts.XMax != 0 || opts.YMin != 0 || opts.YMax != 0 {
		t.Fatalf("DefaultDecodeOptions bounds = %+v, want all zero", opts)
	}
}
