// Package theme resolves the accent colour used for starfield connection
// lines and the hover cursor.
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// AccentKey is the theme variable holding the accent as "r, g, b".
	AccentKey = "accent-rgb"

	// AccentEnv overrides the accent from the environment.
	AccentEnv = "NIGHTSKY_ACCENT_RGB"

	// DefaultAccent is used when no source defines the accent.
	DefaultAccent = "99, 102, 241"
)

// Source looks up theme variables by key.
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource serves variables from a map, typically the theme section of the
// config file.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource reads the accent from the environment. Other keys are not set.
type EnvSource struct {
	// Getenv defaults to os.LookupEnv.
	Getenv func(string) (string, bool)
}

// Lookup implements Source.
func (e EnvSource) Lookup(key string) (string, bool) {
	if key != AccentKey {
		return "", false
	}
	get := e.Getenv
	if get == nil {
		get = os.LookupEnv
	}
	return get(AccentEnv)
}

// Chain consults sources in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// ParseRGB parses "r, g, b" (spaces optional) into components.
func ParseRGB(s string) (r, g, b uint8, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("parse rgb %q: want 3 components, got %d", s, len(parts))
	}
	var out [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parse rgb %q: %w", s, err)
		}
		out[i] = uint8(n)
	}
	return out[0], out[1], out[2], nil
}

// Accent returns the accent string from src, or DefaultAccent when src is
// nil or does not define one.
func Accent(src Source) string {
	if src != nil {
		if v, ok := src.Lookup(AccentKey); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return DefaultAccent
}

// AccentRGB is Accent parsed into components. Malformed values fall back to
// DefaultAccent.
func AccentRGB(src Source) (r, g, b uint8) {
	r, g, b, err := ParseRGB(Accent(src))
	if err != nil {
		r, g, b, _ = ParseRGB(DefaultAccent)
	}
	return r, g, b
}

// AccentFunc returns a lookup that re-reads src on every call, so the
// accent follows theme changes while an animation runs.
func AccentFunc(src Source) func() (r, g, b uint8) {
	return func() (uint8, uint8, uint8) {
		return AccentRGB(src)
	}
}
