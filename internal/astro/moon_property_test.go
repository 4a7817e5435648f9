//go:build property
// +build property

package astro

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// unix seconds between 1900 and 2200
const (
	minUnix = -2208988800
	maxUnix = 7258118400
)

func TestMoonPhaseProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("phase is in [0,1)", prop.ForAll(
		func(sec int64, offsetHours int) bool {
			zone := time.FixedZone("", offsetHours*3600)
			p := PhaseAt(time.Unix(sec, 0).In(zone))
			return p >= 0 && p < 1
		},
		gen.Int64Range(minUnix, maxUnix),
		gen.IntRange(-12, 14),
	))

	properties.Property("calculate is deterministic", prop.ForAll(
		func(sec int64) bool {
			ts := time.Unix(sec, 0).UTC()
			return Calculate(ts) == Calculate(ts)
		},
		gen.Int64Range(minUnix, maxUnix),
	))

	properties.Property("stage is a function of phase alone", prop.ForAll(
		func(sec int64) bool {
			m := Calculate(time.Unix(sec, 0).UTC())
			return m.Stage == StageFor(m.Phase)
		},
		gen.Int64Range(minUnix, maxUnix),
	))

	properties.Property("illumination is symmetric about full", prop.ForAll(
		func(p float64) bool {
			return math.Abs(Illumination(p)-Illumination(1-p)) < 1e-12
		},
		gen.Float64Range(0, 1),
	))

	properties.Property("illumination is within [0,1]", prop.ForAll(
		func(p float64) bool {
			i := Illumination(p)
			return i >= 0 && i <= 1
		},
		gen.Float64Range(0, 1),
	))

	properties.Property("terminator radius stays within the disk", prop.ForAll(
		func(p float64) bool {
			s := NewSilhouette(p)
			return math.Abs(s.Rx) <= DiskRadius+1e-9 && !strings.Contains(s.Path(), "A-")
		},
		gen.Float64Range(0, 0.999999),
	))

	properties.TestingRun(t)
}
