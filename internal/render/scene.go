package render

import (
	"math/rand/v2"

	"github.com/litescript/ls-nightsky/internal/astro"
	"github.com/litescript/ls-nightsky/internal/field"
)

// outlineSegments is the polygon resolution of a drawn moon.
const outlineSegments = 48

// MoonStyle colours a drawn moon.
type MoonStyle struct {
	Lit  field.RGB
	Dark field.RGB
}

// DefaultMoonStyle matches the widget's SVG colours.
var DefaultMoonStyle = MoonStyle{
	Lit:  field.RGB{R: 0xf5, G: 0xf3, B: 0xce},
	Dark: field.RGB{R: 0x1e, G: 0x1b, B: 0x4b},
}

// DrawMoon draws the silhouette as a disk of radius r centred on (cx, cy).
func DrawMoon(s *Surface, sil astro.Silhouette, cx, cy, r float64, style MoonStyle) {
	s.FillCircle(cx, cy, r, style.Dark.Alpha(1))

	scale := r / astro.DiskRadius
	outline := sil.Outline(outlineSegments)
	pts := make([][2]float64, len(outline))
	for i, p := range outline {
		pts[i] = [2]float64{
			cx + (p.X-astro.DiskRadius)*scale,
			cy + (p.Y-astro.DiskRadius)*scale,
		}
	}
	s.FillPolygon(pts, style.Lit.Alpha(1))
}

// SceneOptions configures a starfield snapshot.
type SceneOptions struct {
	Width, Height int
	Frames        int // simulation frames before capture
	Field         field.Config
	Rand          *rand.Rand
	Accent        field.AccentFunc

	// Moon, when non-nil, is drawn in the top-right corner.
	Moon      *astro.Silhouette
	MoonStyle MoonStyle
}

// Scene runs the starfield for opts.Frames frames on a fresh surface and
// returns it, with the moon drawn on top.
func Scene(opts SceneOptions) (*Surface, error) {
	s, err := NewSurface(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	w, h := s.Size()

	bg := opts.Field.Background
	if opts.Field.Population == 0 {
		bg = field.DefaultConfig().Background
	}
	s.FillRect(0, 0, w, h, bg.Alpha(1))

	f := field.New(opts.Field, w, h, opts.Rand)
	frames := opts.Frames
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		f.Frame(s, opts.Accent)
	}

	if opts.Moon != nil {
		style := opts.MoonStyle
		if style == (MoonStyle{}) {
			style = DefaultMoonStyle
		}
		r := min(w, h) * 0.08
		DrawMoon(s, *opts.Moon, w-r*1.5, r*1.5, r, style)
	}
	return s, nil
}
