package field

import (
	"fmt"
	"strconv"
)

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

// Alpha returns c with the given opacity.
func (c RGB) Alpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}

// RGBA is a colour with a float opacity in [0,1], the way canvas styles take it.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// String formats the colour as a CSS rgba() value.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Opaque drops the alpha channel.
func (c RGBA) Opaque() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Surface is the drawing context a field renders into.
//
// Coordinates are in field units with the origin at the top left. Colours
// carry their own alpha; a surface composites them over what is already there.
type Surface interface {
	// Size reports the current drawable extent.
	Size() (width, height float64)
	FillRect(x, y, w, h float64, c RGBA)
	FillCircle(x, y, radius float64, c RGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c RGBA)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
