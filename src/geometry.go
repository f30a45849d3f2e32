package src

import (
	"fmt"
	"regexp"
	"strconv"
)

// CropRectangle is the canonical crop geometry consumed by the crop filter:
// a width x height region at offset (x, y) in the reference frame.
type CropRectangle struct {
	Width, Height, X, Y int
}

func (c CropRectangle) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", c.Width, c.Height, c.X, c.Y)
}

// CropFormat selects how a raw crop string is interpreted.
type CropFormat int

const (
	// CropAuto guesses between rectangle and margin form: values are read
	// as TOP:BOTTOM:LEFT:RIGHT margins when left and right fit within a
	// quarter of the reference width and top and bottom within a quarter
	// of the reference height. A rectangle whose values happen to satisfy
	// that threshold is reinterpreted as margins.
	CropAuto CropFormat = iota
	// CropRect always reads WIDTH:HEIGHT:X:Y.
	CropRect
	// CropMargin always reads TOP:BOTTOM:LEFT:RIGHT.
	CropMargin
)

// ParseCropFormat maps a --crop-format flag value to a CropFormat.
func ParseCropFormat(s string) (CropFormat, error) {
	switch s {
	case "auto", "":
		return CropAuto, nil
	case "rect", "rectangle":
		return CropRect, nil
	case "margin", "margins":
		return CropMargin, nil
	}
	return CropAuto, fmt.Errorf("unknown crop format %q (want auto, rect or margin)", s)
}

var cropPattern = regexp.MustCompile(`^([0-9]+):([0-9]+):([0-9]+):([0-9]+)$`)

// FullFrame is the default crop: the whole reference frame at offset (0,0).
func FullFrame(refWidth, refHeight int) CropRectangle {
	return CropRectangle{Width: refWidth, Height: refHeight}
}

// ReconcileCrop normalizes a raw crop string into a CropRectangle. The
// returned bool reports whether the values were read as margins, so the
// caller can tell the user which convention was applied. An empty raw
// string yields the full reference frame.
func ReconcileCrop(raw string, format CropFormat, refWidth, refHeight int) (CropRectangle, bool, error) {
	if raw == "" {
		return FullFrame(refWidth, refHeight), false, nil
	}

	m := cropPattern.FindStringSubmatch(raw)
	if m == nil {
		return CropRectangle{}, false, fmt.Errorf("%w: %s", ErrInvalidGeometry, raw)
	}
	var v [4]int
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return CropRectangle{}, false, fmt.Errorf("%w: %s", ErrInvalidGeometry, raw)
		}
		v[i] = n
	}

	asMargins := false
	switch format {
	case CropRect:
	case CropMargin:
		asMargins = true
	case CropAuto:
		asMargins = isMarginSpec(v, refWidth, refHeight)
	}

	if !asMargins {
		rect := CropRectangle{Width: v[0], Height: v[1], X: v[2], Y: v[3]}
		if rect.Width <= 0 || rect.Height <= 0 {
			return CropRectangle{}, false, fmt.Errorf("%w: rectangle %s has no area",
				ErrInvalidGeometry, raw)
		}
		return rect, false, nil
	}

	top, bottom, left, right := v[0], v[1], v[2], v[3]
	rect := CropRectangle{
		Width:  refWidth - (left + right),
		Height: refHeight - (top + bottom),
		X:      left,
		Y:      top,
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return CropRectangle{}, false, fmt.Errorf("%w: margins %s leave no frame inside %dx%d",
			ErrInvalidGeometry, raw, refWidth, refHeight)
	}
	return rect, true, nil
}

// isMarginSpec is the original tool's heuristic for telling HandBrake-style
// TOP:BOTTOM:LEFT:RIGHT margins apart from an FFmpeg-style rectangle.
func isMarginSpec(v [4]int, refWidth, refHeight int) bool {
	maxX := refWidth / 4
	maxY := refHeight / 4
	return v[2] <= maxX && v[3] <= maxX && v[0] <= maxY && v[1] <= maxY
}

// CheckCropAgainst verifies that the resolved rectangle matches every
// distorted video's probed dimensions. Plans must not be built when any
// video disagrees.
func CheckCropAgainst(rect CropRectangle, videos []VideoDescriptor) error {
	for _, v := range videos {
		if v.Width != rect.Width || v.Height != rect.Height {
			return fmt.Errorf("%w: %s: reference crop %dx%d, distorted video %dx%d",
				ErrCropMismatch, v.Path, rect.Width, rect.Height, v.Width, v.Height)
		}
	}
	return nil
}
