package engine

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/getmockd/influxmock/pkg/chaos"
	"github.com/getmockd/influxmock/pkg/httputil"
	"github.com/getmockd/influxmock/pkg/lineprotocol"
	"github.com/getmockd/influxmock/pkg/simulation"
)

var (
	precisionsV2 = []string{"ns", "us", "ms", "s"}
	precisionsV1 = []string{"ns", "u", "ms", "s"}
)

func (h *Handler) handleWriteV2(w http.ResponseWriter, r *http.Request) {
	if !h.checkWriteParams(w, r) || !h.checkToken(w, r) {
		return
	}
	payload, ok := readBody(w, r)
	if !ok {
		return
	}
	h.respondWrite(w, "v2", h.state.ApplyWriteV2(lineprotocol.Parse(payload)))
}

func (h *Handler) handleWriteV1(w http.ResponseWriter, r *http.Request) {
	if !h.checkWriteParamsV1(w, r) {
		return
	}
	payload, ok := readBody(w, r)
	if !ok {
		return
	}
	h.respondWrite(w, "v1", h.state.ApplyWriteV1(lineprotocol.Parse(payload)))
}

func (h *Handler) handleDelete(w http.ResponseWriter, _ *http.Request) {
	h.log.Info("deleting points", "points", h.state.PointCount())
	h.state.DeleteAll()
	httputil.WriteNoContent(w)
}

// checkWriteParams validates org, bucket and precision of a v2 write.
func (h *Handler) checkWriteParams(w http.ResponseWriter, r *http.Request) bool {
	q := r.URL.Query()
	org, bucket := q.Get("org"), q.Get("bucket")
	switch {
	case !h.state.Org().Matches(org):
		httputil.WriteNotFound(w, fmt.Sprintf("organization name %q not found", org))
		return false
	case bucket != h.creds.Bucket:
		httputil.WriteNotFound(w, fmt.Sprintf("bucket %q not found", bucket))
		return false
	case q.Has("precision") && !slices.Contains(precisionsV2, q.Get("precision")):
		httputil.WriteBadRequest(w, fmt.Sprintf("precision %q is not valid", q.Get("precision")))
		return false
	}
	return true
}

// checkWriteParamsV1 validates database, precision and credentials of a
// v1 write. v1 errors other than the database check are plain text.
func (h *Handler) checkWriteParamsV1(w http.ResponseWriter, r *http.Request) bool {
	q := r.URL.Query()
	db := q.Get("db")
	switch {
	case db != h.creds.Database:
		httputil.WriteNotFound(w, fmt.Sprintf("database %q not found", db))
		return false
	case q.Has("precision") && !slices.Contains(precisionsV1, q.Get("precision")):
		httputil.WriteText(w, http.StatusBadRequest, fmt.Sprintf("precision %q is not valid", q.Get("precision")))
		return false
	case !h.legacyAuthorized(q.Get("u"), q.Get("p")):
		httputil.WriteText(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

func (h *Handler) respondWrite(w http.ResponseWriter, api string, res simulation.WriteResult) {
	h.recordWrite(res)

	log := h.log.With("api", api)
	switch {
	case res.Permanent:
		log.Info("permanent error", "status", res.Status)
	case res.Directive != "" && !res.Known:
		log.Warn("unknown directive", "directive", res.Directive)
	case res.Directive != "":
		log.Info("directive applied", "directive", res.Directive, "status", res.StatusCode())
	}
	log.Debug("write", "points", res.Stored)

	status := res.StatusCode()
	if status == http.StatusNoContent {
		httputil.WriteNoContent(w)
		return
	}
	if !res.Succeeded() {
		log.Info("write rejected", "status", status)
	}
	chaos.WriteRetryable(w, status, res.RetryAfter, res.Body)
}

func (h *Handler) recordWrite(res simulation.WriteResult) {
	if h.metrics == nil {
		return
	}
	if res.Directive != "" {
		label := res.Directive
		if !res.Known {
			label = "unknown"
		}
		_ = h.metrics.DirectivesTotal.Inc(label)
	}
	if res.Stored > 0 {
		_ = h.metrics.PointsWrittenTotal.Add(float64(res.Stored))
	}
}

// readBody reads the whole request body, answering 400 when it cannot.
func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteInvalid(w, fmt.Sprintf("failed to read request body: %v", err))
		return "", false
	}
	return string(data), true
}
