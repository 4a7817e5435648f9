// Package config loads the optional YAML configuration file and maps it onto
// the component configs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-nightsky/internal/field"
	"github.com/litescript/ls-nightsky/internal/geo"
	"github.com/litescript/ls-nightsky/internal/server"
	"github.com/litescript/ls-nightsky/internal/theme"
	"github.com/litescript/ls-nightsky/internal/widget"
)

const (
	MinFPS = 1
	MaxFPS = 60

	MinPopulation = 1
	MaxPopulation = 2000
)

// Config is the whole configuration file.
type Config struct {
	Log    LogConfig         `yaml:"log"`
	UI     UIConfig          `yaml:"ui"`
	Field  FieldConfig       `yaml:"field"`
	Theme  map[string]string `yaml:"theme"`
	Geo    GeoConfig         `yaml:"geo"`
	Server ServerConfig      `yaml:"server"`
	Route  RouteConfig       `yaml:"route"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// UIConfig controls the terminal view.
type UIConfig struct {
	FPS int `yaml:"fps"`
}

// FieldConfig overrides starfield tuning. Zero values keep the defaults.
type FieldConfig struct {
	Population     int      `yaml:"population"`
	NearDepth      float64  `yaml:"near_depth"`
	AttractRadius  float64  `yaml:"attract_radius"`
	AttractForce   float64  `yaml:"attract_force"`
	ConnectRadius  float64  `yaml:"connect_radius"`
	ParallaxFactor *float64 `yaml:"parallax_factor"`
	TrailAlpha     float64  `yaml:"trail_alpha"`
	Background     string   `yaml:"background"`
	Twinkle        *bool    `yaml:"twinkle"`
}

// GeoConfig controls the hemisphere lookup.
type GeoConfig struct {
	Enabled    bool          `yaml:"enabled"`
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	Hemisphere string        `yaml:"hemisphere"` // fixed north/south; skips the lookup
}

// ServerConfig controls the HTTP endpoint.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	LitColor  string `yaml:"lit_color"`
	DarkColor string `yaml:"dark_color"`
}

// RouteConfig is the page route the widget is displayed on.
type RouteConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		UI:  UIConfig{FPS: 30},
		Geo: GeoConfig{
			Enabled: true,
			URL:     geo.DefaultURL,
			Timeout: geo.DefaultTimeout,
		},
		Server: ServerConfig{
			Addr:      server.DefaultAddr,
			LitColor:  widget.DefaultColors.Lit,
			DarkColor: widget.DefaultColors.Dark,
		},
		Route: RouteConfig{Path: "/"},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps numeric ranges and rejects values that cannot be used.
func (c *Config) Validate() error {
	c.UI.FPS = clampInt(c.UI.FPS, MinFPS, MaxFPS)
	if c.Field.Population != 0 {
		c.Field.Population = clampInt(c.Field.Population, MinPopulation, MaxPopulation)
	}
	if c.Field.TrailAlpha < 0 || c.Field.TrailAlpha > 1 {
		return fmt.Errorf("field.trail_alpha %v outside [0,1]", c.Field.TrailAlpha)
	}
	if c.Field.NearDepth < 0 || c.Field.NearDepth > 1 {
		return fmt.Errorf("field.near_depth %v outside [0,1]", c.Field.NearDepth)
	}
	if c.Field.Background != "" {
		if _, _, _, err := theme.ParseRGB(c.Field.Background); err != nil {
			return fmt.Errorf("field.background: %w", err)
		}
	}
	if c.Geo.Hemisphere != "" {
		if _, err := geo.ParseHemisphere(c.Geo.Hemisphere); err != nil {
			return fmt.Errorf("geo.hemisphere: %w", err)
		}
	}
	if v, ok := c.Theme[theme.AccentKey]; ok {
		if _, _, _, err := theme.ParseRGB(v); err != nil {
			return fmt.Errorf("theme.%s: %w", theme.AccentKey, err)
		}
	}
	if c.Route.Path == "" {
		c.Route.Path = "/"
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// FieldConfig maps the field section onto field.DefaultConfig.
func (c *Config) FieldConfig() field.Config {
	fc := field.DefaultConfig()
	f := c.Field
	if f.Population > 0 {
		fc.Population = f.Population
	}
	if f.NearDepth > 0 {
		fc.NearDepth = f.NearDepth
	}
	if f.AttractRadius > 0 {
		fc.AttractRadius = f.AttractRadius
	}
	if f.AttractForce > 0 {
		fc.AttractForce = f.AttractForce
	}
	if f.ConnectRadius > 0 {
		fc.ConnectRadius = f.ConnectRadius
	}
	if f.ParallaxFactor != nil {
		fc.ParallaxFactor = *f.ParallaxFactor
	}
	if f.TrailAlpha > 0 {
		fc.TrailAlpha = f.TrailAlpha
	}
	if f.Background != "" {
		if r, g, b, err := theme.ParseRGB(f.Background); err == nil {
			fc.Background = field.RGB{R: r, G: g, B: b}
		}
	}
	if f.Twinkle != nil {
		fc.Twinkle = *f.Twinkle
	}
	return fc
}

// ThemeSource consults the environment first, then the theme section.
func (c *Config) ThemeSource() theme.Source {
	return theme.Chain{theme.EnvSource{}, theme.MapSource(c.Theme)}
}

// FixedHemisphere returns the configured hemisphere, if one is set.
func (c *Config) FixedHemisphere() (geo.Hemisphere, bool) {
	if c.Geo.Hemisphere == "" {
		return geo.Northern, false
	}
	h, err := geo.ParseHemisphere(c.Geo.Hemisphere)
	return h, err == nil
}

// Locator builds the geolocation client.
func (c *Config) Locator() *geo.Locator {
	opts := []geo.Option{}
	if c.Geo.URL != "" {
		opts = append(opts, geo.WithURL(c.Geo.URL))
	}
	if c.Geo.Timeout > 0 {
		opts = append(opts, geo.WithTimeout(c.Geo.Timeout))
	}
	return geo.NewLocator(opts...)
}

// ServerConfig maps the server section.
func (c *Config) ServerConfig() server.Config {
	return server.Config{
		Addr:   c.Server.Addr,
		Colors: widget.Colors{Lit: c.Server.LitColor, Dark: c.Server.DarkColor},
	}
}

// FrameInterval is the animation tick period for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	fps := clampInt(c.UI.FPS, MinFPS, MaxFPS)
	return time.Second / time.Duration(fps)
}
