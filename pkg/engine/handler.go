package engine

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/influxmock/pkg/chaos"
	"github.com/getmockd/influxmock/pkg/config"
	"github.com/getmockd/influxmock/pkg/fixtures"
	"github.com/getmockd/influxmock/pkg/httputil"
	"github.com/getmockd/influxmock/pkg/logging"
	"github.com/getmockd/influxmock/pkg/metrics"
	"github.com/getmockd/influxmock/pkg/simulation"
)

// okPage is the body of the health endpoints.
const okPage = "<html><body><h1>OK</h1></body></html>"

// Handler serves the emulated database API on top of a simulation.State.
type Handler struct {
	creds   config.Credentials
	state   *simulation.State
	catalog *fixtures.Catalog
	metrics *metrics.Set
	sleep   chaos.Sleeper
	log     *slog.Logger
	mux     *http.ServeMux
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the handler's logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithCatalog replaces the default fixture catalog.
func WithCatalog(c *fixtures.Catalog) HandlerOption {
	return func(h *Handler) {
		if c != nil {
			h.catalog = c
		}
	}
}

// WithSleeper replaces the function used to delay query responses.
func WithSleeper(sleep chaos.Sleeper) HandlerOption {
	return func(h *Handler) {
		if sleep != nil {
			h.sleep = sleep
		}
	}
}

// WithMetrics makes the handler count directives and written points.
func WithMetrics(m *metrics.Set) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a handler that accepts creds and mutates state.
func NewHandler(creds config.Credentials, state *simulation.State, opts ...HandlerOption) *Handler {
	h := &Handler{
		creds:   creds,
		state:   state,
		catalog: fixtures.Default(),
		sleep:   chaos.Sleep,
		log:     logging.Nop(),
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.routes()
	return h
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /ready", h.handleReady)
	h.mux.HandleFunc("GET /health", h.handleReady)
	h.mux.HandleFunc("GET /ping", h.handlePing)
	h.mux.HandleFunc("GET /test/user-agent", h.handleUserAgent)

	h.mux.HandleFunc("POST /api/v2/write", h.handleWriteV2)
	h.mux.HandleFunc("POST /write", h.handleWriteV1)
	h.mux.HandleFunc("POST /api/v2/delete", h.requireToken(h.handleDelete))
	h.mux.HandleFunc("POST /api/v2/query", h.handleQuery)

	h.mux.HandleFunc("GET /api/v2/buckets", h.requireToken(h.handleListBuckets))
	h.mux.HandleFunc("GET /api/v2/buckets/{id}", h.requireToken(h.handleGetBucket))
	h.mux.HandleFunc("POST /api/v2/buckets", h.requireToken(h.handleCreateBucket))
	h.mux.HandleFunc("DELETE /api/v2/buckets/{id}", h.requireToken(h.handleDeleteBucket))
	h.mux.HandleFunc("DELETE /api/v2/buckets", h.handleDeleteBucketNoID)

	h.mux.HandleFunc("GET /api/v2/orgs", h.requireToken(h.handleListOrgs))
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// State returns the simulation state the handler mutates.
func (h *Handler) State() *simulation.State {
	return h.state
}

// SetLogger replaces the handler's logger.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log == nil {
		log = logging.Nop()
	}
	h.log = log
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	h.state.SetUserAgent(r.UserAgent())
	httputil.WriteHTML(w, http.StatusOK, okPage)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	h.state.SetUserAgent(r.UserAgent())
	if r.URL.Query().Get("verbose") == "true" {
		httputil.WriteHTML(w, http.StatusOK, okPage)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUserAgent(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteText(w, http.StatusOK, h.state.UserAgent())
}
