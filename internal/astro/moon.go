// Package astro provides the moon phase model and its disk geometry.
package astro

import (
	"math"
	"time"
)

const (
	// SynodicMonth is the mean new-moon-to-new-moon period in days.
	SynodicMonth = 29.53058867

	// ReferenceNewMoonJD is the Julian Date of the new moon of 2000-01-06 14:24 UTC,
	// the epoch all cycles are counted from.
	ReferenceNewMoonJD = 2451550.1

	// unixEpochJD is the Julian Date of 1970-01-01T00:00:00Z.
	unixEpochJD = 2440587.5

	msPerDay      = 86400000.0
	minutesPerDay = 1440.0
)

// Stage is one of the eight named lunar stages.
type Stage int

const (
	StageNew Stage = iota
	StageWaxingCrescent
	StageFirstQuarter
	StageWaxingGibbous
	StageFull
	StageWaningGibbous
	StageLastQuarter
	StageWaningCrescent
)

var stageNames = [...]string{
	StageNew:            "New Moon",
	StageWaxingCrescent: "Waxing Crescent",
	StageFirstQuarter:   "First Quarter",
	StageWaxingGibbous:  "Waxing Gibbous",
	StageFull:           "Full Moon",
	StageWaningGibbous:  "Waning Gibbous",
	StageLastQuarter:    "Last Quarter",
	StageWaningCrescent: "Waning Crescent",
}

var stageGlyphs = [...]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func (s Stage) String() string {
	if s < StageNew || s > StageWaningCrescent {
		return "Unknown"
	}
	return stageNames[s]
}

// Glyph returns the moon emoji for the stage (northern-hemisphere orientation).
func (s Stage) Glyph() string {
	if s < StageNew || s > StageWaningCrescent {
		return "?"
	}
	return stageGlyphs[s]
}

// MarshalText implements encoding.TextMarshaler so stages export by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MoonPhase is the state of the lunar cycle at one instant.
type MoonPhase struct {
	Phase        float64 // fraction of the cycle, [0,1): 0=new, 0.5=full
	Stage        Stage
	Illumination float64 // lit fraction of the disk, [0,1]
	AgeDays      float64 // days since the last (modelled) new moon
	Waxing       bool
}

// Calculate returns the moon phase at t.
//
// The model is linear: days since a fixed reference new moon divided by the
// mean synodic month. It drifts by up to about a day against the real moon,
// which is fine for a decorative widget.
func Calculate(t time.Time) MoonPhase {
	phase := PhaseAt(t)
	return MoonPhase{
		Phase:        phase,
		Stage:        StageFor(phase),
		Illumination: Illumination(phase),
		AgeDays:      phase * SynodicMonth,
		Waxing:       phase < 0.5,
	}
}

// Now returns the moon phase at the current time.
func Now() MoonPhase {
	return Calculate(time.Now())
}

// PhaseAt returns the cycle fraction at t, in [0,1).
func PhaseAt(t time.Time) float64 {
	cycles := (julianDate(t) - ReferenceNewMoonJD) / SynodicMonth
	phase := cycles - math.Floor(cycles)
	// cycles a hair below an integer rounds up to exactly 1
	if phase >= 1 {
		phase = 0
	}
	return phase
}

// StageFor classifies a cycle fraction into one of eight stages.
// Bin edges are fixed; do not derive them.
func StageFor(phase float64) Stage {
	switch {
	case phase < 0.02 || phase > 0.98:
		return StageNew
	case phase < 0.24:
		return StageWaxingCrescent
	case phase < 0.26:
		return StageFirstQuarter
	case phase < 0.49:
		return StageWaxingGibbous
	case phase < 0.51:
		return StageFull
	case phase < 0.74:
		return StageWaningGibbous
	case phase < 0.76:
		return StageLastQuarter
	default:
		return StageWaningCrescent
	}
}

// Illumination returns the lit fraction of the disk for a cycle fraction.
func Illumination(phase float64) float64 {
	return 0.5 * (1 - math.Cos(phase*2*math.Pi))
}

// julianDate converts t to a Julian Date the way a browser clock does:
// the UTC millisecond count shifted by the zone offset of t's location.
func julianDate(t time.Time) float64 {
	_, offsetSec := t.Zone()
	tzOffsetMinutes := float64(-offsetSec) / 60
	return float64(t.UnixMilli())/msPerDay - tzOffsetMinutes/minutesPerDay + unixEpochJD
}
