package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getmockd/influxmock/pkg/annotatedcsv"
	"github.com/getmockd/influxmock/pkg/chaos"
	"github.com/getmockd/influxmock/pkg/fixtures"
	"github.com/getmockd/influxmock/pkg/httputil"
)

// Content types of query responses.
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeJSON = "application/json"
)

// queryRequest is the body of POST /api/v2/query.
type queryRequest struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	if org := r.URL.Query().Get("org"); org != "" && !h.state.Org().Matches(org) {
		httputil.WriteNotFound(w, fmt.Sprintf("organization name %q not found", org))
		return
	}
	if !h.checkToken(w, r) {
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteInvalid(w, fmt.Sprintf("failed to decode request body: %v", err))
		return
	}

	body, status, err := h.queryBody(req.Query)
	if err != nil {
		h.log.Error("encoding query result", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	effects := h.state.TakeQueryEffects()
	if effects.Delay > 0 {
		h.log.Info("delaying query", "delay", effects.Delay)
		h.sleep(effects.Delay)
	}

	if len(body) == 0 {
		w.WriteHeader(status)
		return
	}
	if json.Valid(body) {
		w.Header().Set("Content-Type", contentTypeJSON)
	} else {
		w.Header().Set("Content-Type", contentTypeCSV)
	}
	if effects.Chunked {
		h.log.Info("chunked query response", "bytes", len(body))
		if err := chaos.WriteChunked(w, status, body, chaos.DefaultChunkParts); err != nil {
			h.log.Warn("chunked write failed", "error", err)
		}
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// queryBody returns the response to a query text: a fixture for
// "testquery-<name>", otherwise the stored points as annotated CSV.
func (h *Handler) queryBody(query string) ([]byte, int, error) {
	if name, ok := fixtures.ParseQuery(query); ok {
		f, known := h.catalog.Lookup(name)
		if !known {
			h.log.Warn("unknown fixture", "fixture", name)
		}
		h.log.Info("query", "fixture", name)
		return []byte(f.Body), f.Status, nil
	}

	points := h.state.Points()
	h.log.Info("query", "points", len(points))
	if len(points) == 0 {
		return nil, http.StatusOK, nil
	}
	body, err := annotatedcsv.EncodePoints(points)
	return body, http.StatusOK, err
}
