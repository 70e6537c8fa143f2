package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/influxmock/pkg/logging"
	"github.com/getmockd/influxmock/pkg/metrics"
	"github.com/getmockd/influxmock/pkg/simulation"
)

// EngineController is the interface the API uses to control the data
// plane. It is implemented by engine.Server.
type EngineController interface {
	Start() error
	Stop() error
	IsRunning() bool
	Addr() string
	Uptime() time.Duration
	State() *simulation.State
	Metrics() *metrics.Set
}

// Server is the management API server.
type Server struct {
	engine     EngineController
	addr       string
	handler    http.Handler
	log        *slog.Logger
	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a management server for engine listening on addr.
func NewServer(engine EngineController, addr string) *Server {
	s := &Server{
		engine: engine,
		addr:   addr,
		log:    logging.Nop(),
	}
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = mux
	return s
}

// SetLogger sets the logger.
func (s *Server) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// Handler returns the management routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start opens the listener and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpServer != nil {
		return errors.New("management API is already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("management API server error", "error", err)
		}
	}()
	s.httpServer = srv
	s.listener = ln
	s.log.Info("management API listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.listener = nil
	return err
}

// Addr returns the listen address, or "" when not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /start", s.handleStart)
	mux.HandleFunc("GET /stop", s.handleStop)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /log", s.handleLog)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
}
