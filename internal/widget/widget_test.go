package widget

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-nightsky/internal/astro"
	"github.com/litescript/ls-nightsky/internal/geo"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"", true},
		{"/blog/post", true},
		{"/admin", false},
		{"/admin/", false},
		{"/admin/users/7", false},
		{"/administrator", true},
		{"/blog/admin", true},
	}
	for _, tt := range tests {
		if got := Visible(tt.path); got != tt.want {
			t.Errorf("Visible(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNew_HemisphereMirroring(t *testing.T) {
	at := time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC) // waxing, just before first quarter

	north := New(at, geo.Northern)
	south := New(at, geo.Southern)

	assert.False(t, north.Silhouette.Mirrored)
	assert.True(t, south.Silhouette.Mirrored)
	assert.Equal(t, north.Moon, south.Moon)

	// northern waxing moon is lit on the right, southern on the left
	assert.True(t, north.Silhouette.Contains(90, 50))
	assert.False(t, north.Silhouette.Contains(10, 50))
	assert.True(t, south.Silhouette.Contains(10, 50))
	assert.False(t, south.Silhouette.Contains(90, 50))
}

func TestNew_NextEventsAreAhead(t *testing.T) {
	at := time.Date(2023, 2, 13, 16, 1, 0, 0, time.UTC)
	w := New(at, geo.Northern)

	assert.True(t, w.NextFull.After(at))
	assert.True(t, w.NextNew.After(at))
	// next new moon 2023-02-20 07:06 UTC
	assert.WithinDuration(t, time.Date(2023, 2, 20, 7, 6, 0, 0, time.UTC), w.NextNew, 15*time.Minute)
	assert.True(t, w.NextNew.Before(w.NextFull))
}

func TestTooltipAndCaption(t *testing.T) {
	full := New(time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC), geo.Northern)
	assert.Equal(t, astro.StageFull, full.Moon.Stage)
	assert.Equal(t, "Full Moon (100% illuminated)", full.Tooltip())
	assert.Equal(t, "Full moon tonight", full.NextFullCaption())

	crescent := New(time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC), geo.Northern)
	assert.True(t, strings.HasPrefix(crescent.NextFullCaption(), "Full moon in 14d"), crescent.NextFullCaption())
}

func TestFormatUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "<1m"},
		{12 * time.Minute, "12m"},
		{5*time.Hour + 12*time.Minute, "5h 12m"},
		{3*24*time.Hour + 4*time.Hour + 59*time.Minute, "3d 4h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUntil(tt.d), tt.d.String())
	}
}

func TestSVG_DefaultColors(t *testing.T) {
	w := New(time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC), geo.Northern)
	svg := w.SVG(64, Colors{})
	assert.Contains(t, svg, `width="64"`)
	assert.Contains(t, svg, DefaultColors.Lit)
	assert.Contains(t, svg, DefaultColors.Dark)
	assert.Contains(t, svg, w.Silhouette.Path())
}

func TestExportWidget_JSON(t *testing.T) {
	at := time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC)
	e := ExportWidget(New(at, geo.Southern)).WithRoute("/admin/x")

	var buf bytes.Buffer
	require.NoError(t, e.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Full Moon", decoded["stage"])
	assert.Equal(t, "southern", decoded["hemisphere"])
	assert.Equal(t, true, decoded["mirrored"])
	assert.Equal(t, false, decoded["visible"])
	assert.EqualValues(t, 100, decoded["percent"])
	assert.InDelta(t, 0.506335, decoded["phase"].(float64), 1e-5)
}

func TestExport_OmitsVisibilityWithoutRoute(t *testing.T) {
	e := ExportWidget(New(time.Now(), geo.Northern))
	var buf bytes.Buffer
	require.NoError(t, e.WriteJSON(&buf))
	assert.NotContains(t, buf.String(), `"visible"`)
}

func TestExport_WriteText(t *testing.T) {
	e := ExportWidget(New(time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC), geo.Northern))
	var buf bytes.Buffer
	require.NoError(t, e.WriteText(&buf))
	assert.Contains(t, buf.String(), "Full Moon")
	assert.Contains(t, buf.String(), "Illumination: 100%")
	assert.Contains(t, buf.String(), "Hemisphere:   northern")
}
