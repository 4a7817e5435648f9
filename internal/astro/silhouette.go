package astro

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// DiskSize is the edge length of the square box the moon disk is drawn in.
	DiskSize = 100.0
	// DiskRadius is the radius of the moon disk inside that box.
	DiskRadius = DiskSize / 2
)

// Silhouette describes the lit region of the moon disk for one phase.
//
// The region is bounded by a fixed semicircle on the lit limb and an
// elliptical terminator whose horizontal radius is Rx. Rx is signed: its sign
// selects which side of the vertical diameter the terminator bulges to and is
// encoded in the path only through Sweep.
type Silhouette struct {
	Phase    float64
	Waxing   bool
	Rx       float64 // signed terminator radius, in [-50, 50]
	Sweep    int     // SVG sweep flag of the terminator arc
	Mirrored bool    // flipped left-right (southern hemisphere)
}

// NewSilhouette builds the lit-region geometry for a cycle fraction.
// The sweep thresholds at 0.25 and 0.75 are exact and must not move.
func NewSilhouette(phase float64) Silhouette {
	s := Silhouette{Phase: phase}
	if phase <= 0.5 {
		s.Waxing = true
		s.Rx = DiskRadius * (1 - 4*phase)
		if phase >= 0.25 {
			s.Sweep = 1
		}
		return s
	}

	s.Rx = DiskRadius * (3 - 4*phase)
	if phase >= 0.75 {
		s.Sweep = 1
	}
	return s
}

// Mirror returns the silhouette flipped horizontally.
func (s Silhouette) Mirror() Silhouette {
	s.Mirrored = !s.Mirrored
	return s
}

// limbSweep is the sweep flag of the fixed half-circle: clockwise through the
// right half when waxing, counter-clockwise through the left when waning.
func (s Silhouette) limbSweep() int {
	if s.Waxing {
		return 1
	}
	return 0
}

// Path returns the closed SVG path of the lit region on a 100x100 box.
func (s Silhouette) Path() string {
	limb := s.limbSweep()
	sweep := s.Sweep
	if s.Mirrored {
		// x -> 100-x keeps both endpoints and reverses every arc's direction
		limb ^= 1
		sweep ^= 1
	}
	return fmt.Sprintf("M50,0 A50,50 0 0,%d 50,100 A%s,50 0 0,%d 50,0",
		limb, formatCoord(math.Abs(s.Rx)), sweep)
}

// Contains reports whether (x, y) on the 100x100 box lies in the lit region.
// It agrees with the area Path encloses.
func (s Silhouette) Contains(x, y float64) bool {
	dx := (x - DiskRadius) / DiskRadius
	dy := (y - DiskRadius) / DiskRadius
	if dx*dx+dy*dy > 1 {
		return false
	}
	if s.Mirrored {
		x = DiskSize - x
	}

	// half-width of the disk at this row, as a fraction of the radius
	halfChord := math.Sqrt(1 - dy*dy)
	if s.Waxing {
		return x-DiskRadius > s.Rx*halfChord
	}
	return DiskRadius-x > -s.Rx*halfChord
}

// LitFraction estimates the drawn lit share of the disk by sampling an n x n
// grid. The elliptical terminator makes this linear in phase (2p waxing,
// 2-2p waning), unlike the cosine Illumination.
func (s Silhouette) LitFraction(n int) float64 {
	if n <= 0 {
		return 0
	}
	var inDisk, lit int
	step := DiskSize / float64(n)
	for row := 0; row < n; row++ {
		y := (float64(row) + 0.5) * step
		for col := 0; col < n; col++ {
			x := (float64(col) + 0.5) * step
			dx, dy := x-DiskRadius, y-DiskRadius
			if dx*dx+dy*dy > DiskRadius*DiskRadius {
				continue
			}
			inDisk++
			if s.Contains(x, y) {
				lit++
			}
		}
	}
	if inDisk == 0 {
		return 0
	}
	return float64(lit) / float64(inDisk)
}

// SVG renders a standalone SVG document: a dark disk with the lit region on top.
func (s Silhouette) SVG(size int, litColor, darkColor string) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="%d" height="%d">`+
			`<circle cx="50" cy="50" r="50" fill="%s"/>`+
			`<path d="%s" fill="%s"/></svg>`,
		size, size, darkColor, s.Path(), litColor)
}

// formatCoord prints a path coordinate with at most four decimals.
func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

// Point is a coordinate on the 100x100 disk box.
type Point struct {
	X, Y float64
}

// Outline approximates the lit region as a closed polygon: down the lit limb
// from top to bottom, then back up the terminator. segments is the number of
// steps per side; values below 2 are raised to 2.
func (s Silhouette) Outline(segments int) []Point {
	if segments < 2 {
		segments = 2
	}
	limbSide := 1.0
	if !s.Waxing {
		limbSide = -1
	}

	pts := make([]Point, 0, 2*(segments+1))
	add := func(x, y float64) {
		if s.Mirrored {
			x = DiskSize - x
		}
		pts = append(pts, Point{X: x, Y: y})
	}

	for i := 0; i <= segments; i++ {
		t := -math.Pi/2 + math.Pi*float64(i)/float64(segments)
		add(DiskRadius+limbSide*DiskRadius*math.Cos(t), DiskRadius+DiskRadius*math.Sin(t))
	}
	// the terminator passes through x = 50 + Rx*halfChord on every row
	for i := segments; i >= 0; i-- {
		t := -math.Pi/2 + math.Pi*float64(i)/float64(segments)
		add(DiskRadius+s.Rx*math.Cos(t), DiskRadius+DiskRadius*math.Sin(t))
	}
	return pts
}
