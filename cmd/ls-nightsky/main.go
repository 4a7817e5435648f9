// Command ls-nightsky is a terminal night sky: a drifting starfield that
// reacts to the mouse, with a moon widget showing tonight's phase.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-nightsky/internal/config"
	"github.com/litescript/ls-nightsky/internal/geo"
	"github.com/litescript/ls-nightsky/internal/logging"
	"github.com/litescript/ls-nightsky/internal/render"
	"github.com/litescript/ls-nightsky/internal/server"
	"github.com/litescript/ls-nightsky/internal/state"
	"github.com/litescript/ls-nightsky/internal/theme"
	"github.com/litescript/ls-nightsky/internal/ui"
	"github.com/litescript/ls-nightsky/internal/widget"
)

// CLI flags for headless mode
var (
	moonMode      bool
	nowMode       bool
	jsonPath      string
	svgSize       int
	pngPath       string
	pngWidth      int
	pngHeight     int
	pngFrames     int
	serveMode     bool
	watchInterval time.Duration
	atFlag        string
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Log file for the TUI (rotated)")
	fps := flag.Int("fps", 0, "Animation frames per second (1-60)")
	route := flag.String("route", "", "Page route the widget is shown on (hidden under /admin)")
	hemisphere := flag.String("hemisphere", "", "Fix the hemisphere (north, south) and skip the lookup")
	noGeo := flag.Bool("no-geo", false, "Skip the hemisphere lookup")
	geoURL := flag.String("geo-url", "", "Geolocation endpoint")
	addr := flag.String("addr", "", "HTTP listen address for -serve")
	flag.BoolVar(&moonMode, "moon", false, "Print the moon widget as text")
	flag.BoolVar(&nowMode, "now", false, "Single-line moon summary")
	flag.StringVar(&jsonPath, "json", "", "Export the widget as JSON to file (use - for stdout)")
	flag.IntVar(&svgSize, "svg", 0, "Print the moon as an SVG of this size")
	flag.StringVar(&pngPath, "png", "", "Render a starfield snapshot PNG to file")
	flag.IntVar(&pngWidth, "png-width", 1280, "Snapshot width in pixels")
	flag.IntVar(&pngHeight, "png-height", 720, "Snapshot height in pixels")
	flag.IntVar(&pngFrames, "frames", 120, "Simulation frames before the snapshot")
	flag.BoolVar(&serveMode, "serve", false, "Serve the widget over HTTP")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat text output at interval (e.g., 1m)")
	flag.StringVar(&atFlag, "at", "", "Compute for this RFC3339 time instead of now")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the file
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *fps > 0 {
		cfg.UI.FPS = *fps
	}
	if *route != "" {
		cfg.Route.Path = *route
	}
	if *hemisphere != "" {
		cfg.Geo.Hemisphere = *hemisphere
	}
	if *noGeo {
		cfg.Geo.Enabled = false
	}
	if *geoURL != "" {
		cfg.Geo.URL = *geoURL
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	at := time.Time{}
	if atFlag != "" {
		at, err = time.Parse(time.RFC3339, atFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -at: %v\n", err)
			os.Exit(1)
		}
	}

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateMgr := state.NewManager(stateCfg)

	level := logging.ParseLevel(cfg.Log.Level)
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	// The TUI needs a terminal; without one fall back to the text widget.
	headless := moonMode || nowMode || jsonPath != "" || svgSize > 0 || pngPath != "" || serveMode
	if !headless && !isTTY {
		moonMode = true
		headless = true
	}

	if headless {
		logger := logging.New(level)
		defer logger.Close()

		if serveMode {
			runServer(ctx, cfg, stateMgr, logger)
			return
		}
		resolveHemisphere(ctx, cfg, stateMgr, logger)
		if err := runHeadless(ctx, cfg, stateMgr, at, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Alt screen owns stderr; log to a file
	logger := tuiLogger(cfg, level)
	defer logger.Close()

	fixed := applyFixedHemisphere(cfg, stateMgr)

	model := ui.New(stateMgr, ui.Options{
		FPS:    cfg.UI.FPS,
		Field:  cfg.FieldConfig(),
		Theme:  cfg.ThemeSource(),
		Route:  cfg.Route.Path,
		Logger: logger,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	// One-shot lookup in background
	if !fixed && cfg.Geo.Enabled {
		go func() {
			res := geo.Resolve(ctx, cfg.Locator(), logger)
			p.Send(ui.GeoResultMsg{Result: res})
		}()
	}

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// tuiLogger opens the rotating log file, defaulting to the user cache dir.
func tuiLogger(cfg *config.Config, level logging.Level) *logging.Logger {
	path := cfg.Log.File
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return logging.Discard()
		}
		path = filepath.Join(dir, "ls-nightsky", "ls-nightsky.log")
	}
	return logging.NewFile(level, logging.FileOptions{
		Path:       path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
}

// applyFixedHemisphere applies a configured hemisphere and reports whether
// one was set.
func applyFixedHemisphere(cfg *config.Config, stateMgr *state.Manager) bool {
	h, ok := cfg.FixedHemisphere()
	if ok {
		stateMgr.SetHemisphere(h, state.SourceConfig)
	}
	return ok
}

// resolveHemisphere sets the hemisphere before headless output, looking it
// up when it is not fixed.
func resolveHemisphere(ctx context.Context, cfg *config.Config, stateMgr *state.Manager, logger *logging.Logger) {
	if applyFixedHemisphere(cfg, stateMgr) || !cfg.Geo.Enabled {
		return
	}
	stateMgr.UpdateGeo(geo.Resolve(ctx, cfg.Locator(), logger))
}

func runServer(ctx context.Context, cfg *config.Config, stateMgr *state.Manager, logger *logging.Logger) {
	if !applyFixedHemisphere(cfg, stateMgr) && cfg.Geo.Enabled {
		go func() {
			stateMgr.UpdateGeo(geo.Resolve(ctx, cfg.Locator(), logger))
		}()
	}

	srv := server.New(cfg.ServerConfig(), stateMgr, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, cfg *config.Config, stateMgr *state.Manager, at time.Time, logger *logging.Logger) error {
	now := func() time.Time {
		if !at.IsZero() {
			return at
		}
		return time.Now()
	}

	outputOnce := func() error {
		t := now()
		w := widget.New(t, stateMgr.Hemisphere())
		stateMgr.ObserveMoon(w.Moon, t)

		if nowMode {
			fmt.Println(w.Text())
		}

		if moonMode {
			if !widget.Visible(cfg.Route.Path) {
				logger.Info("Moon widget hidden on route %s", cfg.Route.Path)
			} else if err := widget.ExportWidget(w).WriteText(os.Stdout); err != nil {
				return fmt.Errorf("write text: %w", err)
			}
		}

		if svgSize > 0 {
			colors := cfg.ServerConfig().Colors
			fmt.Println(w.SVG(svgSize, colors))
		}

		// Export JSON if requested
		if jsonPath != "" {
			export := widget.ExportWidget(w).WithRoute(cfg.Route.Path)
			if err := writeTo(jsonPath, export.WriteJSON); err != nil {
				return fmt.Errorf("write JSON: %w", err)
			}
		}

		if pngPath != "" {
			if err := writePNG(cfg, w); err != nil {
				return fmt.Errorf("write PNG: %w", err)
			}
			logger.Info("Wrote %dx%d snapshot to %s", pngWidth, pngHeight, pngPath)
		}
		return nil
	}

	// Single run
	if watchInterval == 0 || !at.IsZero() {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !nowMode {
				fmt.Println() // Blank line between outputs (except now mode)
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writePNG renders the starfield snapshot with the moon on top.
func writePNG(cfg *config.Config, w widget.Widget) error {
	opts := render.SceneOptions{
		Width:  pngWidth,
		Height: pngHeight,
		Frames: pngFrames,
		Field:  cfg.FieldConfig(),
		Accent: theme.AccentFunc(cfg.ThemeSource()),
	}
	if widget.Visible(cfg.Route.Path) {
		sil := w.Silhouette
		opts.Moon = &sil
	}
	s, err := render.Scene(opts)
	if err != nil {
		return err
	}
	return writeTo(pngPath, s.WritePNG)
}

// writeTo runs write against stdout for "-" or a created file otherwise.
func writeTo(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
