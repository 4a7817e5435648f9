// Package render draws the starfield and moon into an in-memory image using
// the canvas software backend, for PNG snapshots and the HTTP endpoint.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/litescript/ls-nightsky/internal/field"
)

// Surface is a field.Surface backed by a software-rendered canvas.
type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	width   int
	height  int
}

// NewSurface creates a width x height surface cleared to transparent black.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	backend := softwarebackend.New(width, height)
	return &Surface{
		backend: backend,
		cv:      canvas.New(backend),
		width:   width,
		height:  height,
	}, nil
}

// Size implements field.Surface.
func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// nrgba converts a field colour to a straight-alpha Go colour.
func nrgba(c field.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}

// FillRect implements field.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c field.RGBA) {
	s.cv.SetFillStyle(nrgba(c))
	s.cv.FillRect(x, y, w, h)
}

// FillCircle implements field.Surface.
func (s *Surface) FillCircle(x, y, radius float64, c field.RGBA) {
	s.cv.SetFillStyle(nrgba(c))
	s.cv.BeginPath()
	s.cv.Arc(x, y, radius, 0, 2*math.Pi, false)
	s.cv.Fill()
}

// StrokeLine implements field.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c field.RGBA) {
	s.cv.SetStrokeStyle(nrgba(c))
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x1, y1)
	s.cv.LineTo(x2, y2)
	s.cv.Stroke()
}

// FillPolygon fills a closed polygon.
func (s *Surface) FillPolygon(pts [][2]float64, c field.RGBA) {
	if len(pts) < 3 {
		return
	}
	s.cv.SetFillStyle(nrgba(c))
	s.cv.BeginPath()
	s.cv.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		s.cv.LineTo(p[0], p[1])
	}
	s.cv.ClosePath()
	s.cv.Fill()
}

// Image returns the rendered pixels. The image is shared with the surface.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

// WritePNG encodes the current pixels as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.backend.Image); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
