// Package state provides thread-safe state shared between the terminal UI,
// the headless loop and the HTTP handlers.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-nightsky/internal/astro"
	"github.com/litescript/ls-nightsky/internal/geo"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventStageChange EventType = "STAGE_CHANGE"
	EventHemisphere  EventType = "HEMISPHERE"
	EventGeoFailed   EventType = "GEO_FAILED"
)

// Event represents a notable state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// HemisphereSource records where the current hemisphere came from.
type HemisphereSource string

const (
	SourceDefault HemisphereSource = "default"
	SourceConfig  HemisphereSource = "config"
	SourceGeo     HemisphereSource = "geolocation"
	SourceManual  HemisphereSource = "manual"
)

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	hemisphere geo.Hemisphere
	source     HemisphereSource

	// Last geolocation attempt
	lastLookup     time.Time
	lookupError    error
	lookupDuration time.Duration
	latitude       float64
	located        bool

	// Last observed moon
	moon       astro.MoonPhase
	moonAt     time.Time
	moonKnown  bool
	moonChecks int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration // how often the moon is recomputed
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager. The hemisphere starts Northern.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		source:          SourceDefault,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// SetHemisphere sets the hemisphere explicitly, e.g. from configuration.
func (m *Manager) SetHemisphere(h geo.Hemisphere, src HemisphereSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setHemisphere(h, src, time.Now())
}

func (m *Manager) setHemisphere(h geo.Hemisphere, src HemisphereSource, at time.Time) {
	if h != m.hemisphere {
		m.addEvent(Event{
			Type:      EventHemisphere,
			Timestamp: at,
			From:      m.hemisphere.String(),
			To:        h.String(),
			Detail:    string(src),
		})
	}
	m.hemisphere = h
	m.source = src
}

// UpdateGeo records a geolocation result. A failed lookup leaves the
// hemisphere unchanged.
func (m *Manager) UpdateGeo(res geo.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLookup = res.FetchedAt
	m.lookupError = res.Error
	m.lookupDuration = res.Duration

	if res.Error != nil {
		m.addEvent(Event{
			Type:      EventGeoFailed,
			Timestamp: res.FetchedAt,
			Detail:    res.Error.Error(),
		})
		return
	}
	m.latitude = res.Latitude
	m.located = true
	m.setHemisphere(res.Hemisphere, SourceGeo, res.FetchedAt)
}

// ObserveMoon records the phase computed at t and logs an event when the
// stage differs from the previous observation.
func (m *Manager) ObserveMoon(phase astro.MoonPhase, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.moonKnown && phase.Stage != m.moon.Stage {
		m.addEvent(Event{
			Type:      EventStageChange,
			Timestamp: t,
			From:      m.moon.Stage.String(),
			To:        phase.Stage.String(),
		})
	}
	m.moon = phase
	m.moonAt = t
	m.moonKnown = true
	m.moonChecks++
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Hemisphere       geo.Hemisphere
	HemisphereSource HemisphereSource
	Latitude         float64
	Located          bool
	LastLookup       time.Time
	LookupError      error
	LookupDuration   time.Duration
	Moon             astro.MoonPhase
	MoonAt           time.Time
	MoonKnown        bool
	MoonChecks       int
	Events           []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Hemisphere:       m.hemisphere,
		HemisphereSource: m.source,
		Latitude:         m.latitude,
		Located:          m.located,
		LastLookup:       m.lastLookup,
		LookupError:      m.lookupError,
		LookupDuration:   m.lookupDuration,
		Moon:             m.moon,
		MoonAt:           m.moonAt,
		MoonKnown:        m.moonKnown,
		MoonChecks:       m.moonChecks,
		Events:           m.getEventsOrdered(),
	}
}

// Hemisphere returns the current hemisphere.
func (m *Manager) Hemisphere() geo.Hemisphere {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hemisphere
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}
