// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nightsky/internal/anim"
	"github.com/litescript/ls-nightsky/internal/field"
	"github.com/litescript/ls-nightsky/internal/geo"
	"github.com/litescript/ls-nightsky/internal/logging"
	"github.com/litescript/ls-nightsky/internal/pointer"
	"github.com/litescript/ls-nightsky/internal/state"
	"github.com/litescript/ls-nightsky/internal/theme"
	"github.com/litescript/ls-nightsky/internal/version"
	"github.com/litescript/ls-nightsky/internal/widget"
)

// Msg types for Bubble Tea
type (
	// FrameMsg drives one animation frame.
	FrameMsg time.Time

	// TickMsg triggers the slow refresh of the moon widget.
	TickMsg time.Time

	// GeoResultMsg delivers the one-shot hemisphere lookup.
	GeoResultMsg struct {
		Result geo.Result
	}
)

// Options configures the root model.
type Options struct {
	FPS    int
	Field  field.Config
	Theme  theme.Source
	Route  string
	Rand   *rand.Rand
	Logger *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	logger *logging.Logger
	theme  theme.Source

	// Engines, shared by pointer so value copies of Model drive the same state
	tracker *pointer.Tracker
	field   *field.Field
	canvas  *Canvas
	loop    *anim.Loop
	cursor  *cursorLayers

	fieldCfg field.Config
	rng      *rand.Rand
	interval time.Duration

	// UI state
	width     int
	height    int
	ready     bool
	paused    bool
	route     string
	nav       []navItem
	hovered   int // index into nav, -1 for none
	overMoon  bool
	widget    widget.Widget
	statusMsg string
	now       func() time.Time
}

// New creates the root model. The field is created on the first
// WindowSizeMsg, when the terminal size is known.
func New(mgr *state.Manager, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	route := opts.Route
	if route == "" {
		route = "/"
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cursor := newCursorLayers(fps)

	tracker := pointer.NewTracker()
	logger = logger.With("view", tracker.ID())
	tracker.OnChange(func(from, to pointer.Mode) {
		logger.Debug("Pointer mode %s -> %s", from, to)
	})

	m := Model{
		state:    mgr,
		logger:   logger,
		theme:    opts.Theme,
		tracker:  tracker,
		canvas:   NewCanvas(0, 0),
		cursor:   &cursor,
		fieldCfg: opts.Field,
		rng:      rng,
		interval: time.Second / time.Duration(fps),
		route:    route,
		hovered:  -1,
		now:      time.Now,
	}
	m.refreshMoon(m.now())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.state.RefreshInterval()),
		frameCmd(m.interval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.teardown()
			return m, tea.Quit
		case "r":
			if m.field != nil {
				m.field.Reinit()
				m.statusMsg = "Starfield reseeded"
			}
		case " ", "p":
			m.paused = !m.paused
		case "h":
			m.toggleHemisphere()
		case "1":
			m.navigate("/")
		case "2":
			m.navigate("/journal")
		case "3":
			m.navigate("/admin")
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.tracker.Leave()
		if m.field != nil {
			m.field.ClearPointer()
		}

	case FrameMsg:
		now := time.Time(msg)
		m.cursor.update(m.tracker)
		if m.loop == nil || m.paused {
			cmds = append(cmds, frameCmd(m.interval))
			break
		}
		if m.loop.Step(now) {
			cmds = append(cmds, frameCmd(m.interval))
		}

	case TickMsg:
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))
		m.refreshMoon(time.Time(msg))

	case GeoResultMsg:
		if m.state.Snapshot().HemisphereSource == state.SourceDefault {
			m.state.UpdateGeo(msg.Result)
		}
		m.refreshMoon(m.now())
	}

	return m, tea.Batch(cmds...)
}

// resize fits the canvas and field to the terminal. The first call creates
// the field and starts the frame loop.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	rows := max(height-1, 0) // footer line
	m.canvas.Resize(width, rows)
	m.nav = navBar(width)
	m.hovered = -1

	w, h := m.canvas.Size()
	if m.field == nil {
		m.field = field.New(m.fieldCfg, w, h, m.rng)
		m.loop = anim.NewLoop(&field.Scene{
			Field:   m.field,
			Surface: m.canvas,
			Accent:  theme.AccentFunc(m.theme),
		})
		m.loop.OnStop(m.tracker.Teardown)
		m.loop.Start(m.now())
		m.logger.Info("Starfield started: %dx%d cells, %d stars", width, rows, len(m.field.Stars()))
		return
	}
	m.field.Resize(w, h)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	// centre of the cell in field units
	x := (float64(msg.X) + 0.5) * cellW
	y := (float64(msg.Y) + 0.5) * cellH
	m.tracker.Move(x, y)
	if m.field != nil {
		m.field.SetPointer(x, y)
	}

	moon := rect{}
	if widget.Visible(m.route) {
		moon = moonBox(m.width)
	}
	target, item := hitTest(m.nav, moon, msg.X, msg.Y)
	m.tracker.Over(target)
	m.overMoon = target.Role == pointer.RoleImage

	m.hovered = -1
	if item != nil {
		for i := range m.nav {
			if m.nav[i].span == item.span {
				m.hovered = i
			}
		}
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || item == nil {
		return
	}
	switch {
	case item.route != "":
		m.navigate(item.route)
	case item.role == pointer.RoleButton:
		m.toggleHemisphere()
	}
}

func (m *Model) navigate(route string) {
	if route == m.route {
		return
	}
	m.route = route
	m.logger.Debug("Route %s (moon visible: %v)", route, widget.Visible(route))
}

func (m *Model) toggleHemisphere() {
	next := geo.Southern
	if m.state.Hemisphere() == geo.Southern {
		next = geo.Northern
	}
	m.state.SetHemisphere(next, state.SourceManual)
	m.statusMsg = "Hemisphere: " + next.String()
	m.refreshMoon(m.now())
}

// refreshMoon rebuilds the widget for t and records the observation.
func (m *Model) refreshMoon(t time.Time) {
	m.widget = widget.New(t, m.state.Hemisphere())
	m.state.ObserveMoon(m.widget.Moon, t)
}

// teardown stops the frame loop; its stop hook detaches the tracker.
func (m *Model) teardown() {
	if m.loop != nil {
		m.loop.Stop()
	} else {
		m.tracker.Teardown()
	}
}

// Tracker exposes the pointer tracker, e.g. for the cursor of another view.
func (m Model) Tracker() *pointer.Tracker {
	return m.tracker
}

// Route returns the current route path.
func (m Model) Route() string {
	return m.route
}

// accent is the theme accent as a blendable colour.
func (m Model) accent() colorful.Color {
	r, g, b := theme.AccentRGB(m.theme)
	return toColorful(field.RGB{R: r, G: g, B: b})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.compose().String() + "\n" + m.renderFooter()
}

// compose stacks the canvas, nav bar, moon and cursor layers.
func (m Model) compose() *Frame {
	f := m.canvas.Frame()
	accent := m.accent()

	var hovered *navItem
	if m.hovered >= 0 && m.hovered < len(m.nav) {
		hovered = &m.nav[m.hovered]
	}
	stampNav(f, m.nav, m.route, hovered, accent)

	if widget.Visible(m.route) {
		stampMoon(f, m.widget, m.overMoon)
	}

	m.cursor.stamp(f, accent, m.tracker.Visual())
	return f
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.accent().Hex()))

	snap := m.state.Snapshot()
	status := accentStyle.Render(m.widget.Moon.Stage.Glyph()) + " " +
		dimStyle.Render(fmt.Sprintf("%s · %s", snap.Hemisphere, m.route))
	if m.paused {
		status += " " + accentStyle.Render("paused")
	}
	if snap.LookupError != nil {
		status += " " + dimStyle.Render("(location unavailable)")
	}

	help := dimStyle.Render("1-3: route | h: hemisphere | r: reseed | space: pause | q: quit")
	parts := []string{"  " + status, help, dimStyle.Render("v" + version.Version)}
	if m.statusMsg != "" {
		parts = append(parts, dimStyle.Render(m.statusMsg))
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Minute
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendGeoResult creates a command that delivers a lookup result.
func SendGeoResult(res geo.Result) tea.Cmd {
	return func() tea.Msg {
		return GeoResultMsg{Result: res}
	}
}
