// Package pointer tracks where the pointer is and whether it is over
// something interactive. It owns no timing: animators read Position and
// Visual on their own clock.
package pointer

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// Mode is the interaction mode derived from the element under the pointer.
type Mode int

const (
	ModeDefault Mode = iota
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "default"
}

// Visual is the cursor appearance an animator should move toward.
type Visual int

const (
	VisualDefault Visual = iota
	VisualHover
)

func (v Visual) String() string {
	if v == VisualHover {
		return "hover"
	}
	return "default"
}

// ChangeFunc is called after the mode changes.
type ChangeFunc func(from, to Mode)

// Tracker holds the pointer state for one mounted view.
type Tracker struct {
	id string

	mu       sync.RWMutex
	x, y     float64
	hasPos   bool
	mode     Mode
	onChange []ChangeFunc
	detached bool
}

// NewTracker returns a tracker with no position and the default mode.
func NewTracker() *Tracker {
	return &Tracker{id: uuid.NewString()}
}

// ID identifies the tracker in log lines.
func (t *Tracker) ID() string {
	return t.id
}

// Move records the latest pointer coordinates. Every event is kept; there
// is no throttling. Non-finite coordinates and moves after Teardown are
// ignored.
func (t *Tracker) Move(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}
	t.x, t.y = x, y
	t.hasPos = true
}

// Leave forgets the position, e.g. when the pointer exits the view.
func (t *Tracker) Leave() {
	t.mu.Lock()
	t.hasPos = false
	t.mu.Unlock()
	t.setMode(ModeDefault)
}

// Over updates the mode from the element now under the pointer.
func (t *Tracker) Over(target HitTarget) {
	t.setMode(Classify(target))
}

func (t *Tracker) setMode(m Mode) {
	t.mu.Lock()
	if t.detached || t.mode == m {
		t.mu.Unlock()
		return
	}
	old := t.mode
	t.mode = m
	hooks := append([]ChangeFunc(nil), t.onChange...)
	t.mu.Unlock()

	for _, fn := range hooks {
		fn(old, m)
	}
}

// Position returns the last recorded coordinates. ok is false until the
// first Move and after Leave or Teardown.
func (t *Tracker) Position() (x, y float64, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.x, t.y, t.hasPos
}

// Mode returns the current interaction mode.
func (t *Tracker) Mode() Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Visual maps the mode to the cursor state to animate toward.
func (t *Tracker) Visual() Visual {
	if t.Mode() == ModeInteractive {
		return VisualHover
	}
	return VisualDefault
}

// OnChange registers fn to run after every mode change.
func (t *Tracker) OnChange(fn ChangeFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}
	t.onChange = append(t.onChange, fn)
}

// Teardown resets the tracker and drops all callbacks. The tracker ignores
// further events.
func (t *Tracker) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detached = true
	t.hasPos = false
	t.mode = ModeDefault
	t.onChange = nil
}
