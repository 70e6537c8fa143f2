package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/influxmock/pkg/config"
	"github.com/getmockd/influxmock/pkg/logging"
	"github.com/getmockd/influxmock/pkg/metrics"
	"github.com/getmockd/influxmock/pkg/simulation"
)

// Lifecycle errors.
var (
	ErrAlreadyRunning = errors.New("server is already running")
	ErrNotRunning     = errors.New("server is not running")
)

// shutdownTimeout bounds how long Stop waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server runs the data plane listener. It can be started and stopped any
// number of times; every stop resets the simulation state.
type Server struct {
	cfg         *config.ServerConfiguration
	state       *simulation.State
	handler     *Handler
	httpHandler http.Handler
	metrics     *metrics.Set
	log         *slog.Logger
	handlerOpts []HandlerOption

	// serial admits one data plane request at a time.
	serial sync.Mutex

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHandlerOptions passes opts to the data plane Handler.
func WithHandlerOptions(opts ...HandlerOption) ServerOption {
	return func(s *Server) {
		s.handlerOpts = append(s.handlerOpts, opts...)
	}
}

// NewServer creates a stopped Server for cfg.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = simulation.NewState(cfg.Org(), cfg.Credentials.Bucket)
	s.metrics = metrics.New(func() float64 { return float64(s.state.PointCount()) })
	metrics.RegisterRuntime(s.metrics.Registry, time.Now())

	handlerOpts := append([]HandlerOption{
		WithHandlerLogger(logging.Component(s.log, "handler")),
		WithMetrics(s.metrics),
	}, s.handlerOpts...)
	s.handler = NewHandler(cfg.Credentials, s.state, handlerOpts...)
	s.httpHandler = Chain(s.handler,
		RequestIDMiddleware,
		SerializeMiddleware(&s.serial),
		AccessLogMiddleware(logging.Component(s.log, "access")),
		MetricsMiddleware(s.metrics),
		GzipMiddleware,
	)
	return s
}

// Start opens the listener and serves requests in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	addr := net.JoinHostPort(s.cfg.BindAddress, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.httpHandler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.httpServer = srv
	s.listener = ln
	s.running = true
	s.startTime = time.Now()
	s.log.Info("data plane started", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the listener down and resets the simulation state.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("HTTP shutdown: %w", err)
		_ = s.httpServer.Close()
	}

	// A request outliving the shutdown timeout still holds serial.
	s.serial.Lock()
	s.state.Reset()
	s.serial.Unlock()

	s.httpServer = nil
	s.listener = nil
	s.running = false
	s.log.Info("data plane stopped")
	return shutdownErr
}

// IsRunning reports whether the listener is open.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the listen address, or "" when stopped.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Uptime returns how long the listener has been open, 0 when stopped.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startTime)
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfiguration {
	return s.cfg
}

// State returns the simulation state.
func (s *Server) State() *simulation.State {
	return s.state
}

// Metrics returns the data plane metrics.
func (s *Server) Metrics() *metrics.Set {
	return s.metrics
}

// Handler returns the fully wrapped data plane handler.
func (s *Server) Handler() http.Handler {
	return s.httpHandler
}
