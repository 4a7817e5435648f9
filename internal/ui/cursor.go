package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nightsky/internal/pointer"
)

// Spring tuning for the trailing cursor layers. Damping 1 is critical: the
// ring and glow settle on the pointer without overshoot.
const (
	ringFrequency  = 12.0
	glowFrequency  = 4.0
	scaleFrequency = 9.0
	scaleDamping   = 0.6

	hoverScale = 1.8
	glowRadius = 2.5 // cells at scale 1
)

var cursorDot = colorful.Color{R: 1, G: 1, B: 1}

// cursorLayers animates the dot, ring and glow that follow the pointer.
// Positions are in fractional cell coordinates.
type cursorLayers struct {
	ring  harmonica.Spring
	glow  harmonica.Spring
	scale harmonica.Spring

	visible bool

	dotX, dotY   float64
	ringX, ringY float64
	ringVX       float64
	ringVY       float64
	glowX, glowY float64
	glowVX       float64
	glowVY       float64
	size, sizeV  float64
}

func newCursorLayers(fps int) cursorLayers {
	return cursorLayers{
		ring:  harmonica.NewSpring(harmonica.FPS(fps), ringFrequency, 1.0),
		glow:  harmonica.NewSpring(harmonica.FPS(fps), glowFrequency, 1.0),
		scale: harmonica.NewSpring(harmonica.FPS(fps), scaleFrequency, scaleDamping),
		size:  1,
	}
}

// update advances the layers one frame toward the tracker state.
func (c *cursorLayers) update(t *pointer.Tracker) {
	x, y, ok := t.Position()
	if !ok {
		c.visible = false
		return
	}
	col, row := x/cellW, y/cellH
	if !c.visible {
		// appear in place rather than fly in from the last exit
		c.ringX, c.ringY, c.glowX, c.glowY = col, row, col, row
		c.ringVX, c.ringVY, c.glowVX, c.glowVY = 0, 0, 0, 0
		c.visible = true
	}

	c.dotX, c.dotY = col, row
	c.ringX, c.ringVX = c.ring.Update(c.ringX, c.ringVX, col)
	c.ringY, c.ringVY = c.ring.Update(c.ringY, c.ringVY, row)
	c.glowX, c.glowVX = c.glow.Update(c.glowX, c.glowVX, col)
	c.glowY, c.glowVY = c.glow.Update(c.glowY, c.glowVY, row)

	target := 1.0
	if t.Visual() == pointer.VisualHover {
		target = hoverScale
	}
	c.size, c.sizeV = c.scale.Update(c.size, c.sizeV, target)
}

// stamp draws glow, ring and dot, in that order.
func (c *cursorLayers) stamp(f *Frame, accent colorful.Color, v pointer.Visual) {
	if !c.visible {
		return
	}

	radius := glowRadius * c.size
	gc, gr := int(math.Floor(c.glowX)), int(math.Floor(c.glowY))
	reach := int(math.Ceil(radius))
	for dr := -reach; dr <= reach; dr++ {
		for dc := -2 * reach; dc <= 2*reach; dc++ {
			// cells are twice as tall as wide
			d := math.Hypot(float64(dc)/2, float64(dr)) / radius
			if d < 1 {
				f.Tint(gc+dc, gr+dr, accent, 0.22*(1-d))
			}
		}
	}

	rc, rr := int(math.Floor(c.ringX)), int(math.Floor(c.ringY))
	ringColor := dimText.BlendRgb(brightTx, 0.5)
	glyph := '○'
	if v == pointer.VisualHover {
		ringColor = accent
		glyph = '◎'
	}
	f.SetGlyph(rc, rr, glyph, ringColor)
	if c.size > (1+hoverScale)/2 {
		f.SetGlyph(rc-1, rr, '(', ringColor)
		f.SetGlyph(rc+1, rr, ')', ringColor)
	}

	f.SetGlyph(int(math.Floor(c.dotX)), int(math.Floor(c.dotY)), '•', cursorDot)
}
