package src

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestReconcileCropDefault(t *testing.T) {
	rect, asMargins, err := ReconcileCrop("", CropAuto, 1920, 1080)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asMargins {
		t.Error("default crop should not be read as margins")
	}
	want := CropRectangle{Width: 1920, Height: 1080}
	if rect != want {
		t.Errorf("got %v, want %v", rect, want)
	}
}

func TestReconcileCrop(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		format     CropFormat
		refW, refH int
		want       CropRectangle
		asMargins  bool
	}{
		{
			name: "direct rectangle", raw: "1920:1080:0:0", format: CropAuto,
			refW: 1920, refH: 1080,
			want: CropRectangle{Width: 1920, Height: 1080},
		},
		{
			name: "margins detected", raw: "10:10:10:10", format: CropAuto,
			refW: 1920, refH: 1080,
			want: CropRectangle{Width: 1900, Height: 1060, X: 10, Y: 10}, asMargins: true,
		},
		{
			name: "large offsets stay rectangle", raw: "1280:720:320:180", format: CropAuto,
			refW: 1920, refH: 1080,
			want: CropRectangle{Width: 1280, Height: 720, X: 320, Y: 180},
		},
		{
			name: "ambiguous values forced to rectangle", raw: "100:100:100:100", format: CropRect,
			refW: 1920, refH: 1080,
			want: CropRectangle{Width: 100, Height: 100, X: 100, Y: 100},
		},
		{
			name: "forced margins beyond the heuristic threshold", raw: "500:500:500:500", format: CropMargin,
			refW: 3840, refH: 2160,
			want: CropRectangle{Width: 2840, Height: 1160, X: 500, Y: 500}, asMargins: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, asMargins, err := ReconcileCrop(tt.raw, tt.format, tt.refW, tt.refH)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rect != tt.want {
				t.Errorf("got %v, want %v", rect, tt.want)
			}
			if asMargins != tt.asMargins {
				t.Errorf("asMargins = %v, want %v", asMargins, tt.asMargins)
			}
		})
	}
}

// Margin conversion must preserve the frame: cropped width plus the
// horizontal margins equals the reference width, same vertically.
func TestReconcileCropMarginGeometry(t *testing.T) {
	margins := [][4]int{
		{0, 0, 0, 0},
		{10, 10, 10, 10},
		{270, 270, 480, 480}, // exactly at the quarter threshold
		{1, 269, 3, 477},
	}
	for _, m := range margins {
		top, bottom, left, right := m[0], m[1], m[2], m[3]
		raw := fmt.Sprintf("%d:%d:%d:%d", top, bottom, left, right)
		rect, asMargins, err := ReconcileCrop(raw, CropAuto, 1920, 1080)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if !asMargins {
			t.Fatalf("%s: expected margin interpretation", raw)
		}
		if rect.Width+left+right != 1920 {
			t.Errorf("%s: width %d + margins %d+%d != 1920", raw, rect.Width, left, right)
		}
		if rect.Height+top+bottom != 1080 {
			t.Errorf("%s: height %d + margins %d+%d != 1080", raw, rect.Height, top, bottom)
		}
		if rect.X != left || rect.Y != top {
			t.Errorf("%s: offset (%d,%d), want (%d,%d)", raw, rect.X, rect.Y, left, top)
		}
	}
}

func TestReconcileCropInvalid(t *testing.T) {
	tests := []struct {
		raw    string
		format CropFormat
	}{
		{"10:10:10", CropAuto},
		{"a:b:c:d", CropAuto},
		{"10:10:10:10:10", CropAuto},
		{"-10:10:10:10", CropAuto},
		{"10:10:10:10extra", CropAuto},
		{"1000:1000:100:100", CropMargin}, // margins swallow the whole 1920x1080 frame
		{"0:0:100:100", CropRect},         // zero-area rectangle
		{"0:1080:500:0", CropAuto},        // offsets too large for margins, zero width as a rectangle
	}
	for _, tt := range tests {
		_, _, err := ReconcileCrop(tt.raw, tt.format, 1920, 1080)
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("ReconcileCrop(%q) error = %v, want ErrInvalidGeometry", tt.raw, err)
		}
	}
}

func TestCheckCropAgainst(t *testing.T) {
	rect := CropRectangle{Width: 1900, Height: 1060, X: 10, Y: 10}

	ok := []VideoDescriptor{
		{Path: "a.mkv", Width: 1900, Height: 1060},
		{Path: "b.mkv", Width: 1900, Height: 1060},
	}
	if err := CheckCropAgainst(rect, ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := []VideoDescriptor{
		{Path: "a.mkv", Width: 1900, Height: 1060},
		{Path: "b.mkv", Width: 1920, Height: 1080},
	}
	err := CheckCropAgainst(rect, bad)
	if !errors.Is(err, ErrCropMismatch) {
		t.Fatalf("error = %v, want ErrCropMismatch", err)
	}
	if got := err.Error(); !strings.Contains(got, "b.mkv") {
		t.Errorf("diagnostic %q does not name the offending file", got)
	}
}

func TestParseCropFormat(t *testing.T) {
	for s, want := range map[string]CropFormat{
		"auto": CropAuto, "rect": CropRect, "rectangle": CropRect,
		"margin": CropMargin, "margins": CropMargin,
	} {
		got, err := ParseCropFormat(s)
		if err != nil || got != want {
			t.Errorf("ParseCropFormat(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	if _, err := ParseCropFormat("handbrake"); err == nil {
		t.Error("expected error for unknown crop format")
	}
}
