package serve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Config configures the HTTP surface.
type Config struct {
	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// CheckOrigin validates WebSocket upgrade origins. If nil, same-origin
	// requests are accepted.
	CheckOrigin func(r *http.Request) bool

	// PingInterval is the WebSocket keepalive interval (default 30s).
	PingInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run (default 5s).
	ShutdownTimeout time.Duration
}

// Option configures the server.
type Option func(*Config)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = check
	}
}

// WithPingInterval sets the WebSocket keepalive interval.
func WithPingInterval(d time.Duration) Option {
	return func(c *Config) {
		c.PingInterval = d
	}
}

// Server exposes a router over HTTP: a resolution endpoint that answers
// what any href would resolve to, the route table, and a WebSocket feed of
// settled navigations.
//
// Resolution goes through Preload, so serving a request never disturbs the
// router's current route.
type Server struct {
	router   *router.Router
	logger   *slog.Logger
	feed     *feed
	shutdown time.Duration
	detach   func()
}

// New builds a Server around r and subscribes its navigation feed. Call it
// before the first navigation settles; the hook registration window closes
// after that.
func New(r *router.Router, opts ...Option) *Server {
	cfg := Config{
		PingInterval:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		router:   r,
		logger:   cfg.Logger,
		feed:     newFeed(cfg.Logger, cfg.CheckOrigin, cfg.PingInterval),
		shutdown: cfg.ShutdownTimeout,
	}
	s.detach = r.After(s.feed.afterHook)
	return s
}

// Close unsubscribes the navigation feed and disconnects its clients.
func (s *Server) Close() {
	s.detach()
	s.feed.close()
}

// Handler returns the HTTP handler for mounting in an external mux.
//
// Routes:
//   - GET /resolve?href=... → resolution snapshot for the href
//   - GET /routes → registered route patterns
//   - GET /feed → WebSocket feed of settled navigations
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/resolve", s.handleResolve)
	r.Get("/routes", s.handleRoutes)
	r.Get("/feed", s.feed.handleUpgrade)
	return r
}

// Run serves the handler on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving navigation api", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Close()
		shCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		return srv.Shutdown(shCtx)
	})
	return g.Wait()
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	href := r.URL.Query().Get("href")
	if href == "" {
		http.Error(w, "missing href parameter", http.StatusBadRequest)
		return
	}

	want, err := s.router.Href(href)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.router.Preload(r.Context(), href)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// An unmatched preload hands back the current route instead of a fresh
	// snapshot; tell them apart by the href it settled on.
	if res.Href != want {
		http.Error(w, "no route matches", http.StatusNotFound)
		return
	}

	writeJSON(w, s.logger, snapshotEvent(res))
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	paths := s.router.Paths()
	sort.Strings(paths)
	writeJSON(w, s.logger, map[string]any{"routes": paths})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}
