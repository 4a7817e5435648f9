package ui

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-nightsky/internal/field"
	"github.com/litescript/ls-nightsky/internal/geo"
	"github.com/litescript/ls-nightsky/internal/pointer"
	"github.com/litescript/ls-nightsky/internal/state"
	"github.com/litescript/ls-nightsky/internal/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := field.DefaultConfig()
	cfg.Population = 25
	return New(state.NewManager(state.DefaultConfig()), Options{
		FPS:   30,
		Field: cfg,
		Theme: theme.MapSource{theme.AccentKey: "16, 185, 129"},
		Rand:  rand.New(rand.NewPCG(7, 11)),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T) Model {
	t.Helper()
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestNew_Defaults(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), Options{})
	assert.Equal(t, "/", m.Route())
	assert.Equal(t, time.Second/30, m.interval)
	assert.NotNil(t, m.Tracker())
	assert.Equal(t, "Initializing...", m.View())
	assert.NotNil(t, m.Init())

	// the first widget is computed eagerly
	assert.True(t, m.state.Snapshot().MoonKnown)
}

func TestModel_WindowSizeStartsField(t *testing.T) {
	m := sized(t)

	require.NotNil(t, m.field)
	require.NotNil(t, m.loop)
	assert.True(t, m.ready)
	assert.True(t, m.loop.Running())
	assert.Len(t, m.field.Stars(), 25)
	assert.Equal(t, 80, m.canvas.Cols())
	assert.Equal(t, 23, m.canvas.Rows(), "one row for the footer")

	w, h := m.field.Size()
	assert.Equal(t, 80*cellW, w)
	assert.Equal(t, 23*cellH, h)

	// later resizes keep the same field
	f := m.field
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Same(t, f, m.field)
	w, _ = m.field.Size()
	assert.Equal(t, 100*cellW, w)
}

func TestModel_FrameStepsLoop(t *testing.T) {
	m := newTestModel(t)

	// frames before the first resize only reschedule
	m, cmd := update(t, m, FrameMsg(time.Now()))
	assert.NotNil(t, cmd)

	m = sized(t)
	before := m.loop.Frames()
	m, cmd = update(t, m, FrameMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.loop.Frames())

	m, _ = update(t, m, key("p"))
	require.True(t, m.paused)
	m, cmd = update(t, m, FrameMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.loop.Frames(), "paused loop does not step")
}

func TestModel_MouseHoverAndClick(t *testing.T) {
	m := sized(t)
	admin := m.nav[3]

	m, _ = update(t, m, tea.MouseMsg{X: admin.span.col + 1, Y: 0, Action: tea.MouseActionMotion})
	assert.Equal(t, pointer.ModeInteractive, m.Tracker().Mode())
	assert.Equal(t, 3, m.hovered)

	x, y, ok := m.field.Pointer()
	require.True(t, ok)
	assert.Equal(t, (float64(admin.span.col+1)+0.5)*cellW, x)
	assert.Equal(t, 0.5*cellH, y)

	require.Contains(t, m.compose().Plain(), string(halfBlock), "moon shown on /")

	m, _ = update(t, m, tea.MouseMsg{
		X: admin.span.col + 1, Y: 0,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "/admin", m.Route())
	assert.NotContains(t, m.compose().Plain(), string(halfBlock), "moon hidden on /admin")

	// moving into open sky drops the hover
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 12, Action: tea.MouseActionMotion})
	assert.Equal(t, pointer.ModeDefault, m.Tracker().Mode())
	assert.Equal(t, -1, m.hovered)
}

func TestModel_MoonHoverShowsTooltip(t *testing.T) {
	m := sized(t)
	box := moonBox(m.width)

	m, _ = update(t, m, tea.MouseMsg{X: box.col + box.w/2, Y: box.row + 1, Action: tea.MouseActionMotion})
	assert.True(t, m.overMoon)
	assert.Equal(t, pointer.ModeDefault, m.Tracker().Mode(), "the moon is not interactive")
	assert.Contains(t, m.compose().Plain(), "illuminated")
}

func TestModel_BlurClearsPointer(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.BlurMsg{})

	_, _, ok := m.Tracker().Position()
	assert.False(t, ok)
	_, _, ok = m.field.Pointer()
	assert.False(t, ok)
}

func TestModel_RouteKeys(t *testing.T) {
	m := sized(t)
	for _, tt := range []struct{ key, route string }{
		{"2", "/journal"},
		{"3", "/admin"},
		{"1", "/"},
	} {
		m, _ = update(t, m, key(tt.key))
		assert.Equal(t, tt.route, m.Route())
	}
}

func TestModel_HemisphereToggle(t *testing.T) {
	m := sized(t)
	require.Equal(t, geo.Northern, m.state.Hemisphere())

	m, _ = update(t, m, key("h"))
	snap := m.state.Snapshot()
	assert.Equal(t, geo.Southern, snap.Hemisphere)
	assert.Equal(t, state.SourceManual, snap.HemisphereSource)
	assert.True(t, m.widget.Silhouette.Mirrored)
	assert.Equal(t, "Hemisphere: southern", m.statusMsg)

	// the bar button toggles back
	btn := m.nav[4]
	m, _ = update(t, m, tea.MouseMsg{
		X: btn.span.col, Y: 0,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, geo.Northern, m.state.Hemisphere())
	assert.False(t, m.widget.Silhouette.Mirrored)
}

func TestModel_GeoResult(t *testing.T) {
	m := newTestModel(t)
	res := geo.Result{Latitude: -41.3, Hemisphere: geo.Southern, FetchedAt: time.Now()}

	m, _ = update(t, m, GeoResultMsg{Result: res})
	assert.Equal(t, geo.Southern, m.state.Hemisphere())
	assert.True(t, m.widget.Silhouette.Mirrored)

	// later results do not override a located hemisphere
	m, _ = update(t, m, GeoResultMsg{Result: geo.Result{Error: errors.New("offline"), FetchedAt: time.Now()}})
	assert.Equal(t, geo.Southern, m.state.Hemisphere())
}

func TestModel_GeoResultIgnoredAfterManualChoice(t *testing.T) {
	m := newTestModel(t)
	m.state.SetHemisphere(geo.Northern, state.SourceManual)

	msg := SendGeoResult(geo.Result{Latitude: -33.9, Hemisphere: geo.Southern, FetchedAt: time.Now()})()
	m, _ = update(t, m, msg)

	assert.Equal(t, geo.Northern, m.state.Hemisphere())
	assert.Equal(t, state.SourceManual, m.state.Snapshot().HemisphereSource)
}

func TestModel_TickRefreshesMoon(t *testing.T) {
	m := newTestModel(t)
	at := time.Date(2024, 3, 25, 7, 0, 0, 0, time.UTC)

	m, cmd := update(t, m, TickMsg(at))
	assert.NotNil(t, cmd)
	assert.True(t, m.widget.Time.Equal(at))
	assert.True(t, m.state.Snapshot().MoonAt.Equal(at))
}

func TestModel_ReseedKey(t *testing.T) {
	m := sized(t)
	before := append([]field.Star(nil), m.field.Stars()...)

	m, _ = update(t, m, key("r"))
	assert.Equal(t, "Starfield reseeded", m.statusMsg)
	assert.Len(t, m.field.Stars(), len(before))
	assert.NotEqual(t, before, m.field.Stars())
}

func TestModel_QuitTearsDown(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionMotion})

	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	assert.False(t, m.loop.Running())
	_, _, ok := m.Tracker().Position()
	assert.False(t, ok, "tracker reset on teardown")

	// a detached tracker ignores further events
	m.Tracker().Move(1, 1)
	_, _, ok = m.Tracker().Position()
	assert.False(t, ok)
}

func TestModel_QuitBeforeResize(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	m.Tracker().Move(1, 1)
	_, _, ok := m.Tracker().Position()
	assert.False(t, ok)
}

func TestModel_View(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, FrameMsg(time.Now()))

	view := m.View()
	assert.Equal(t, 23, strings.Count(view, "\n"), "canvas rows plus footer")
	assert.Contains(t, view, "ls-nightsky")
	assert.Contains(t, view, "northern")
	assert.Contains(t, view, "q: quit")

	m, _ = update(t, m, key("p"))
	assert.Contains(t, m.View(), "paused")
}

func TestModel_AccentFromTheme(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "#10b981", m.accent().Hex())
}
