// Package server exposes the moon widget over HTTP so a web page can embed
// it: JSON for scripts, SVG and PNG for direct use.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/litescript/ls-nightsky/internal/geo"
	"github.com/litescript/ls-nightsky/internal/logging"
	"github.com/litescript/ls-nightsky/internal/render"
	"github.com/litescript/ls-nightsky/internal/state"
	"github.com/litescript/ls-nightsky/internal/widget"
)

const (
	DefaultAddr  = "127.0.0.1:8787"
	DefaultSize  = 128
	MinImageSize = 16
	MaxImageSize = 1024
)

// Config holds server settings.
type Config struct {
	Addr   string
	Colors widget.Colors
}

// DefaultConfig returns the stock server settings.
func DefaultConfig() Config {
	return Config{
		Addr:   DefaultAddr,
		Colors: widget.DefaultColors,
	}
}

// Server serves the widget endpoints. Handlers only read shared state.
type Server struct {
	cfg    Config
	state  *state.Manager
	logger *logging.Logger
	now    func() time.Time
	router *mux.Router
}

// New creates a server reading the hemisphere from mgr.
func New(cfg Config, mgr *state.Manager, logger *logging.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		cfg:    cfg,
		state:  mgr,
		logger: logger,
		now:    time.Now,
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logMiddleware)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/moon", s.handleMoonJSON).Methods(http.MethodGet)
	router.HandleFunc("/moon.svg", s.handleMoonSVG).Methods(http.MethodGet)
	router.HandleFunc("/moon.png", s.handleMoonPNG).Methods(http.MethodGet)

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          zap.NewStdLog(s.logger.Zap()),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving moon widget on http://%s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("%s %s -> %d in %v", r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
	})
}

// widgetFor builds the widget from the query: t (RFC 3339, default now) and
// hemisphere (north/south, default from state).
func (s *Server) widgetFor(r *http.Request) (widget.Widget, error) {
	q := r.URL.Query()

	at := s.now()
	if v := q.Get("t"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return widget.Widget{}, errors.New("bad t: want RFC 3339 timestamp")
		}
		at = t
	}

	h := geo.Northern
	if s.state != nil {
		h = s.state.Hemisphere()
	}
	if v := q.Get("hemisphere"); v != "" {
		parsed, err := geo.ParseHemisphere(v)
		if err != nil {
			return widget.Widget{}, errors.New("bad hemisphere: want north or south")
		}
		h = parsed
	}
	return widget.New(at, h), nil
}

func parseSize(r *http.Request) (int, error) {
	v := r.URL.Query().Get("size")
	if v == "" {
		return DefaultSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < MinImageSize || n > MaxImageSize {
		return 0, fmt.Errorf("bad size: want %d..%d", MinImageSize, MaxImageSize)
	}
	return n, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleMoonJSON(w http.ResponseWriter, r *http.Request) {
	wd, err := s.widgetFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	export := widget.ExportWidget(wd)
	if path := r.URL.Query().Get("path"); path != "" {
		export.WithRoute(path)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w); err != nil {
		s.logger.Warn("Write moon JSON: %v", err)
	}
}

func (s *Server) handleMoonSVG(w http.ResponseWriter, r *http.Request) {
	wd, err := s.widgetFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := parseSize(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=300")
	fmt.Fprint(w, wd.SVG(size, s.cfg.Colors))
}

func (s *Server) handleMoonPNG(w http.ResponseWriter, r *http.Request) {
	wd, err := s.widgetFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := parseSize(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	surf, err := render.NewSurface(size, size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	half := float64(size) / 2
	render.DrawMoon(surf, wd.Silhouette, half, half, half, render.DefaultMoonStyle)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=300")
	if err := surf.WritePNG(w); err != nil {
		s.logger.Warn("Write moon PNG: %v", err)
	}
}
