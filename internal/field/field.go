// Package field simulates the starfield background: a fixed population of
// depth-layered stars that drift, lean away from the pointer, get pulled
// toward it when near, and link up with nearby neighbours.
package field

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
)

// Link is a connection between two near stars, by index.
type Link struct {
	A, B    int
	Dist    float64
	Opacity float64 // 1 - Dist/ConnectRadius
}

// DefaultAccent colours connection lines when no accent lookup is given.
var DefaultAccent = RGB{R: 99, G: 102, B: 241}

// AccentFunc returns the line accent colour. It is called once per frame so
// theme changes apply without restarting the field.
type AccentFunc func() (r, g, b uint8)

// Field owns the stars and the last known pointer position.
// It is not safe for concurrent use; drive it from one loop.
type Field struct {
	cfg    Config
	rng    *rand.Rand
	noise  *perlin.Perlin
	width  float64
	height float64

	stars []Star

	pointerX, pointerY float64
	hasPointer         bool

	links []Link
	frame uint64
}

// New creates a field of cfg.Population stars inside width x height.
func New(cfg Config, width, height float64, rng *rand.Rand) *Field {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		cfg:    cfg,
		rng:    rng,
		noise:  perlin.NewPerlin(2, 2, 3, rng.Int64()),
		width:  width,
		height: height,
	}
	f.Reinit()
	return f
}

// Reinit replaces the whole population with freshly randomized stars.
func (f *Field) Reinit() {
	f.stars = make([]Star, f.cfg.Population)
	for i := range f.stars {
		f.stars[i] = newStar(f.rng, f.cfg, f.width, f.height)
	}
	f.links = f.links[:0]
}

// Resize changes the bounds. Stars keep their coordinates; any now outside
// the new bounds wrap on their next step.
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height
}

// Size returns the current bounds.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Config returns the field's effective configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Stars returns a copy of the current population.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// SetPointer records the pointer position. Non-finite coordinates are
// treated as no pointer.
func (f *Field) SetPointer(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		f.ClearPointer()
		return
	}
	f.pointerX, f.pointerY = x, y
	f.hasPointer = true
}

// ClearPointer forgets the pointer, disabling parallax and attraction.
func (f *Field) ClearPointer() {
	f.hasPointer = false
}

// Pointer returns the last pointer position and whether one is known.
func (f *Field) Pointer() (x, y float64, ok bool) {
	return f.pointerX, f.pointerY, f.hasPointer
}

// Step advances every star by one frame.
func (f *Field) Step() {
	cx, cy := f.width/2, f.height/2
	px, py := f.pointerX, f.pointerY
	radius := f.cfg.AttractRadius

	for i := range f.stars {
		s := &f.stars[i]

		s.X += s.VX
		s.Y += s.VY

		if f.hasPointer {
			// Shift against the pointer's offset; far stars shift less.
			lean := (1 - s.Z) * f.cfg.ParallaxFactor
			s.X -= (px - cx) * lean
			s.Y -= (py - cy) * lean

			if s.Near(f.cfg.NearDepth) {
				dx, dy := px-s.X, py-s.Y
				dist := math.Hypot(dx, dy)
				if dist > 0 && dist < radius {
					pull := (1 - dist/radius) * f.cfg.AttractForce
					s.VX += dx / dist * pull
					s.VY += dy / dist * pull
				}
			}
		}

		s.VX += (s.BaseVX - s.VX) * f.cfg.Relaxation
		s.VY += (s.BaseVY - s.VY) * f.cfg.Relaxation

		s.X = wrap(s.X, f.width)
		s.Y = wrap(s.Y, f.height)
	}
	f.frame++
}

// wrap sends a coordinate that left [0, limit] to the opposite edge.
func wrap(v, limit float64) float64 {
	switch {
	case v < 0:
		return limit
	case v > limit:
		return 0
	default:
		return v
	}
}

// Connections returns every pair of near stars closer than ConnectRadius.
// Each unordered pair appears once, with A < B. The slice is reused by the
// next call.
func (f *Field) Connections() []Link {
	f.links = f.links[:0]
	radius := f.cfg.ConnectRadius

	for i := range f.stars {
		a := &f.stars[i]
		if !a.Near(f.cfg.NearDepth) {
			continue
		}
		for j := i + 1; j < len(f.stars); j++ {
			b := &f.stars[j]
			if !b.Near(f.cfg.NearDepth) {
				continue
			}
			dist := math.Hypot(b.X-a.X, b.Y-a.Y)
			if dist < radius {
				f.links = append(f.links, Link{A: i, B: j, Dist: dist, Opacity: 1 - dist/radius})
			}
		}
	}
	return f.links
}

// Draw paints the stars and their connections without advancing them.
func (f *Field) Draw(s Surface, accent AccentFunc) {
	for i := range f.stars {
		st := &f.stars[i]
		s.FillCircle(st.X, st.Y, st.Size, st.Color.Alpha(f.drawAlpha(i)))
	}

	links := f.Connections()
	if len(links) == 0 {
		return
	}
	line := DefaultAccent
	if accent != nil {
		line.R, line.G, line.B = accent()
	}
	for _, l := range links {
		a, b := &f.stars[l.A], &f.stars[l.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.cfg.ConnectWidth, line.Alpha(l.Opacity))
	}
}

// Frame renders one complete frame: background wash, physics step, stars
// and connection lines.
func (f *Field) Frame(s Surface, accent AccentFunc) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, f.cfg.Background.Alpha(f.cfg.TrailAlpha))
	f.Step()
	f.Draw(s, accent)
}

// drawAlpha is the star's opacity for this frame, including twinkle.
func (f *Field) drawAlpha(i int) float64 {
	alpha := f.stars[i].Alpha
	if !f.cfg.Twinkle || f.cfg.TwinkleDepth <= 0 {
		return alpha
	}
	n := f.noise.Noise2D(float64(i)*0.37, float64(f.frame)*f.cfg.TwinkleSpeed)
	dim := f.cfg.TwinkleDepth * clamp01((n+1)/2)
	return clamp01(alpha * (1 - dim))
}
