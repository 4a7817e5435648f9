package field

import (
	"math"
	"math/rand/v2"
)

// Star is one particle of the field.
type Star struct {
	X, Y   float64
	Z      float64 // depth in [0,1): 0 is nearest
	Size   float64 // drawn radius
	BaseVX float64 // undisturbed velocity
	BaseVY float64
	VX, VY float64
	Alpha  float64
	Color  RGB
}

// Near reports whether the star is close enough to interact with the pointer
// and to be linked to its neighbours.
func (s Star) Near(nearDepth float64) bool {
	return s.Z < nearDepth
}

// newStar places a star uniformly in the bounds with a random depth. Size,
// speed and opacity grow with nearness so near stars read as closer.
func newStar(rng *rand.Rand, cfg Config, width, height float64) Star {
	z := rng.Float64()
	nearness := 1 - z

	speed := cfg.MinSpeed + nearness*cfg.SpeedRange
	heading := rng.Float64() * 2 * math.Pi
	vx := math.Cos(heading) * speed
	vy := math.Sin(heading) * speed

	return Star{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		Z:      z,
		Size:   cfg.MinSize + nearness*cfg.SizeRange,
		BaseVX: vx,
		BaseVY: vy,
		VX:     vx,
		VY:     vy,
		Alpha:  cfg.MinAlpha + nearness*(1-cfg.MinAlpha),
		Color:  cfg.Palette[rng.IntN(len(cfg.Palette))],
	}
}
