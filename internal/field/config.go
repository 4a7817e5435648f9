package field

// Config holds the tuning of a star field. Distances are in surface units,
// velocities in units per frame.
type Config struct {
	// Population is the fixed number of stars.
	Population int

	// NearDepth is the depth below which a star counts as near: it is
	// attracted to the pointer and joins the connection graph.
	NearDepth float64

	// AttractRadius is the pointer distance within which near stars are pulled.
	AttractRadius float64
	// AttractForce scales the pull at zero distance; it falls off linearly.
	AttractForce float64

	// Relaxation is the fraction of the gap to base velocity closed per frame.
	Relaxation float64

	// ParallaxFactor scales the per-frame shift away from the pointer's
	// offset from center, multiplied by (1 - depth).
	ParallaxFactor float64

	// ConnectRadius is the distance below which near stars are linked.
	ConnectRadius float64
	// ConnectWidth is the stroke width of connection lines.
	ConnectWidth float64

	// TrailAlpha is the opacity of the background wash painted each frame.
	// Lower values leave longer trails.
	TrailAlpha float64
	Background RGB

	// Star attributes as functions of nearness (1 - depth).
	MinSize    float64
	SizeRange  float64
	MinSpeed   float64
	SpeedRange float64
	MinAlpha   float64
	Palette    []RGB

	// Twinkle modulates drawn opacity with Perlin noise. Stored alpha is untouched.
	Twinkle      bool
	TwinkleDepth float64
	TwinkleSpeed float64
}

// DefaultConfig returns the stock starfield tuning.
func DefaultConfig() Config {
	return Config{
		Population:     200,
		NearDepth:      0.3,
		AttractRadius:  150,
		AttractForce:   0.02,
		Relaxation:     0.05,
		ParallaxFactor: 0.0005,
		ConnectRadius:  100,
		ConnectWidth:   0.5,
		TrailAlpha:     0.2,
		Background:     RGB{R: 5, G: 6, B: 20},
		MinSize:        0.5,
		SizeRange:      2.0,
		MinSpeed:       0.05,
		SpeedRange:     0.3,
		MinAlpha:       0.25,
		Palette: []RGB{
			{R: 255, G: 255, B: 255},
			{R: 199, G: 210, B: 254},
			{R: 221, G: 214, B: 254},
			{R: 254, G: 243, B: 199},
		},
		Twinkle:      true,
		TwinkleDepth: 0.35,
		TwinkleSpeed: 0.02,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Population <= 0 {
		c.Population = d.Population
	}
	if c.NearDepth <= 0 {
		c.NearDepth = d.NearDepth
	}
	if c.AttractRadius <= 0 {
		c.AttractRadius = d.AttractRadius
	}
	if c.Relaxation <= 0 || c.Relaxation > 1 {
		c.Relaxation = d.Relaxation
	}
	if c.ConnectRadius <= 0 {
		c.ConnectRadius = d.ConnectRadius
	}
	if c.ConnectWidth <= 0 {
		c.ConnectWidth = d.ConnectWidth
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	return c
}
