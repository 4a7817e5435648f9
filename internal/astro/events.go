package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonphase"
)

const (
	j2000JD      = 2451545.0
	julianYear   = 365.25
	maxEventHops = 3
)

// NextFullMoon returns the instant of the first full moon after t.
//
// Unlike Calculate this uses the full Meeus series (chapter 49), so it is
// good to a minute or so. The result is in UTC.
func NextFullMoon(t time.Time) time.Time {
	return nextEvent(t, moonphase.Full)
}

// NextNewMoon returns the instant of the first new moon after t, in UTC.
func NextNewMoon(t time.Time) time.Time {
	return nextEvent(t, moonphase.New)
}

// nextEvent walks forward one synodic month at a time until the event
// nearest the decimal year lands after t.
func nextEvent(t time.Time, event func(year float64) float64) time.Time {
	jd := julian.TimeToJD(t.UTC())
	year := decimalYear(jd)

	jde := event(year)
	for i := 0; i < maxEventHops && jde <= jd; i++ {
		year += SynodicMonth / julianYear
		jde = event(year)
	}
	return julian.JDToTime(jde).UTC()
}

func decimalYear(jd float64) float64 {
	return 2000 + (jd-j2000JD)/julianYear
}
