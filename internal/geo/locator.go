// Package geo resolves which hemisphere the viewer is in from an IP
// geolocation service. The lookup runs once and fails open to the north.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/litescript/ls-nightsky/internal/logging"
)

const (
	// DefaultURL is a public IP geolocation endpoint returning JSON with a
	// "latitude" field.
	DefaultURL = "https://ipapi.co/json/"

	// DefaultTimeout for the lookup request.
	DefaultTimeout = 5 * time.Second
)

// Hemisphere is north or south of the equator.
type Hemisphere int

const (
	Northern Hemisphere = iota
	Southern
)

func (h Hemisphere) String() string {
	if h == Southern {
		return "southern"
	}
	return "northern"
}

// MarshalText implements encoding.TextMarshaler.
func (h Hemisphere) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// ParseHemisphere accepts "north"/"northern"/"south"/"southern".
func ParseHemisphere(s string) (Hemisphere, error) {
	switch s {
	case "north", "northern", "n":
		return Northern, nil
	case "south", "southern", "s":
		return Southern, nil
	}
	return Northern, fmt.Errorf("unknown hemisphere %q", s)
}

// HemisphereOf returns Southern for negative latitudes.
func HemisphereOf(latitude float64) Hemisphere {
	if latitude < 0 {
		return Southern
	}
	return Northern
}

// Locator looks up the viewer's latitude.
type Locator struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// Option configures a Locator.
type Option func(*Locator)

// WithURL sets the geolocation endpoint.
func WithURL(url string) Option {
	return func(l *Locator) {
		l.url = url
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Locator) {
		l.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Locator) {
		l.client = client
	}
}

// NewLocator creates a locator.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		url:     DefaultURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// URL returns the configured endpoint.
func (l *Locator) URL() string {
	return l.url
}

// Result is the outcome of a lookup.
type Result struct {
	Latitude   float64
	Hemisphere Hemisphere
	FetchedAt  time.Time
	Duration   time.Duration
	Error      error
}

type response struct {
	Latitude *float64 `json:"latitude"`
	Error    bool     `json:"error"`
	Reason   string   `json:"reason"`
}

// Lookup fetches the latitude. On any failure Result.Error is set and the
// hemisphere is Northern.
func (l *Locator) Lookup(ctx context.Context) Result {
	start := time.Now()
	res := Result{FetchedAt: start}

	lat, err := l.fetch(ctx)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	res.Latitude = lat
	res.Hemisphere = HemisphereOf(lat)
	return res
}

func (l *Locator) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ls-nightsky/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("geolocate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode geolocation: %w", err)
	}
	if body.Error {
		return 0, fmt.Errorf("geolocation refused: %s", body.Reason)
	}
	if body.Latitude == nil {
		return 0, errors.New("geolocation response has no latitude")
	}
	lat := *body.Latitude
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, fmt.Errorf("latitude out of range: %v", lat)
	}
	return lat, nil
}

// Resolve performs one lookup and logs a warning on failure. It never
// retries; the returned hemisphere is Northern unless the lookup succeeded
// with a negative latitude.
func Resolve(ctx context.Context, l *Locator, logger *logging.Logger) Result {
	res := l.Lookup(ctx)
	if res.Error != nil {
		logger.Warn("Hemisphere lookup failed, assuming northern: %v", res.Error)
		return res
	}
	logger.Debug("Hemisphere lookup: lat=%.2f (%s) in %v", res.Latitude, res.Hemisphere, res.Duration)
	return res
}
