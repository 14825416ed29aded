// Package network serves generated languages over an HTTP JSON API and a
// server-sent events feed.
package network

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/memory"
)

const (
	defaultServerHost    = "localhost"
	defaultWebServerPort = "7070"
	defaultHistory       = 100
	defaultSentences     = 5
	maxSentences         = 100
	shutdownTimeout      = 5 * time.Second
)

type serverConfig struct {
	addr      string
	host      string
	port      string
	history   int
	sentences int
	origins   []string
}

func newConfigWithOpts(opts ...func(*serverConfig)) *serverConfig {
	cfg := &serverConfig{
		host:      defaultServerHost,
		port:      defaultWebServerPort,
		history:   defaultHistory,
		sentences: defaultSentences,
		origins:   []string{"*"},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.addr == "" {
		cfg.addr = net.JoinHostPort(cfg.host, cfg.port)
	}

	return cfg
}

func WithAddr(addr string) func(*serverConfig) {
	return func(cfg *serverConfig) {
		cfg.addr = addr
	}
}

func WithPort(port string) func(*serverConfig) {
	return func(cfg *serverConfig) {
		cfg.port = port
	}
}

// WithHistory sets how many generations the server remembers.
func WithHistory(n int) func(*serverConfig) {
	return func(cfg *serverConfig) {
		cfg.history = n
	}
}

// WithSentences sets how many example sentences a new generation gets.
func WithSentences(n int) func(*serverConfig) {
	return func(cfg *serverConfig) {
		cfg.sentences = n
	}
}

func WithAllowedOrigins(origins ...string) func(*serverConfig) {
	return func(cfg *serverConfig) {
		cfg.origins = origins
	}
}

// Server keeps recent generations in memory and serves them.
type Server struct {
	config   *serverConfig
	defaults config.Config
	store    *memory.Store[conlang.Generation]
	events   *Broadcaster[conlang.Summary]
	logger   *log.Logger
}

// NewServer returns a Server that generates languages from defaults
// overlaid with each request's configuration.
func NewServer(
	defaults config.Config,
	logger *log.Logger,
	opts ...func(*serverConfig),
) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := newConfigWithOpts(opts...)

	store, err := memory.NewStore(cfg.history, conlang.Generation.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to make generation store")
	}

	return &Server{
		config:   cfg,
		defaults: defaults,
		store:    store,
		events:   NewBroadcaster[conlang.Summary](logger),
		logger:   logger,
	}, nil
}

// Handler returns the API routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/generations", s.createGeneration)
	mux.HandleFunc("GET /api/generations", s.listGenerations)
	mux.HandleFunc("GET /api/generations/{id}", s.getGeneration)
	mux.HandleFunc("GET /api/generations/{id}/sentences", s.getSentences)
	mux.HandleFunc("GET /api/generations/{id}/export.csv", s.exportCSV)
	mux.HandleFunc("GET /api/generations/{id}/export.json", s.exportJSON)
	mux.HandleFunc("GET /api/generations/{id}/words/{roman}", s.getWord)
	mux.HandleFunc("GET /api/romanize", s.romanize)
	mux.HandleFunc("GET /api/assimilate", s.assimilate)
	mux.HandleFunc("GET /api/events", s.events.Serve(s.history))

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		s.logger.Infof("Starting web service on %s", s.config.addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "failed to serve http")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return errors.Wrap(err, "failed to shut down http server")
	}

	return nil
}

// history lists stored generation summaries oldest first.
func (s *Server) history() []conlang.Summary {
	recent := s.store.Recent(0)
	out := make([]conlang.Summary, len(recent))

	for i, g := range recent {
		out[len(recent)-1-i] = g.Summary()
	}

	return out
}
