package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getmockd/influxmock/pkg/engine"
	"github.com/getmockd/influxmock/pkg/httputil"
)

func (s *Server) handleStart(w http.ResponseWriter, _ *http.Request) {
	err := s.engine.Start()
	switch {
	case errors.Is(err, engine.ErrAlreadyRunning):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.log.Error("starting data plane", "error", err)
		httputil.WriteText(w, http.StatusInternalServerError, err.Error())
	default:
		httputil.WriteText(w, http.StatusCreated, "Listening on http://"+s.engine.Addr())
	}
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	err := s.engine.Stop()
	switch {
	case errors.Is(err, engine.ErrNotRunning):
		w.WriteHeader(http.StatusNotFound)
	case err != nil:
		// The listener is closed and the state reset even when the
		// graceful shutdown timed out.
		s.log.Warn("stopping data plane", "error", err)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	if s.engine.IsRunning() {
		httputil.WriteText(w, http.StatusOK, "running")
		return
	}
	httputil.WriteText(w, http.StatusNotFound, "stopped")
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	state := s.engine.State()
	pending := state.PendingEffects()
	httputil.WriteOK(w, StateResponse{
		Running:        s.engine.IsRunning(),
		Addr:           s.engine.Addr(),
		UptimeSeconds:  int64(s.engine.Uptime().Seconds()),
		Points:         state.PointCount(),
		Buckets:        state.Buckets().Len(),
		PermanentError: state.PermanentCode(),
		PendingDelayMs: pending.Delay.Milliseconds(),
		PendingChunked: pending.Chunked,
		LastUserAgent:  state.UserAgent(),
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteInvalid(w, fmt.Sprintf("failed to read request body: %v", err))
		return
	}
	s.log.Info(fmt.Sprintf("===%s=====", body))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.engine.Metrics().Registry.Handler().ServeHTTP(w, r)
}
