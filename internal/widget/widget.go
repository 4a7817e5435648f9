// Package widget assembles the moon widget: phase, silhouette oriented for
// the viewer's hemisphere, captions and the route gate that hides it.
package widget

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-nightsky/internal/astro"
	"github.com/litescript/ls-nightsky/internal/geo"
)

// AdminPath is the route prefix under which the widget is hidden.
const AdminPath = "/admin"

// Visible reports whether the widget is shown on the route path: everywhere
// except AdminPath and paths below it.
func Visible(path string) bool {
	return path != AdminPath && !strings.HasPrefix(path, AdminPath+"/")
}

// Colors are the fills used for SVG output.
type Colors struct {
	Lit  string
	Dark string
}

// DefaultColors is a pale moon on an indigo disk.
var DefaultColors = Colors{Lit: "#f5f3ce", Dark: "#1e1b4b"}

// Widget is the moon widget at one instant. It is a value; build a new one
// to refresh.
type Widget struct {
	Time       time.Time
	Moon       astro.MoonPhase
	Silhouette astro.Silhouette
	Hemisphere geo.Hemisphere
	NextFull   time.Time
	NextNew    time.Time
}

// New computes the widget for t. The silhouette is mirrored for the
// southern hemisphere.
func New(t time.Time, h geo.Hemisphere) Widget {
	moon := astro.Calculate(t)
	sil := astro.NewSilhouette(moon.Phase)
	if h == geo.Southern {
		sil = sil.Mirror()
	}
	return Widget{
		Time:       t,
		Moon:       moon,
		Silhouette: sil,
		Hemisphere: h,
		NextFull:   astro.NextFullMoon(t),
		NextNew:    astro.NextNewMoon(t),
	}
}

// Percent is the illuminated percentage rounded to an integer.
func (w Widget) Percent() int {
	return int(math.Round(w.Moon.Illumination * 100))
}

// Tooltip is the hover text, e.g. "Waxing Gibbous (87% illuminated)".
func (w Widget) Tooltip() string {
	return fmt.Sprintf("%s (%d%% illuminated)", w.Moon.Stage, w.Percent())
}

// NextFullCaption describes the wait until the next full moon.
func (w Widget) NextFullCaption() string {
	if w.Moon.Stage == astro.StageFull {
		return "Full moon tonight"
	}
	return "Full moon in " + FormatUntil(w.NextFull.Sub(w.Time))
}

// SVG renders the widget at size pixels.
func (w Widget) SVG(size int, c Colors) string {
	if c.Lit == "" {
		c.Lit = DefaultColors.Lit
	}
	if c.Dark == "" {
		c.Dark = DefaultColors.Dark
	}
	return w.Silhouette.SVG(size, c.Lit, c.Dark)
}

// Text is a one-line summary for terminals and logs.
func (w Widget) Text() string {
	return fmt.Sprintf("%s %s  %d%%  age %.1fd  %s",
		w.Moon.Stage.Glyph(), w.Moon.Stage, w.Percent(), w.Moon.AgeDays, w.NextFullCaption())
}

// FormatUntil renders a positive duration coarsely: "3d 4h", "5h 12m", "12m".
func FormatUntil(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int(d / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
