package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getmockd/influxmock/pkg/httputil"
	"github.com/getmockd/influxmock/pkg/simulation"
)

// Bucket representation on the wire. id comes first: clients scan the
// body for the first "id" property.
type bucketResponse struct {
	ID             string          `json:"id"`
	OrgID          string          `json:"orgID"`
	Type           string          `json:"type"`
	Name           string          `json:"name"`
	RetentionRules []retentionRule `json:"retentionRules"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type retentionRule struct {
	Type         string `json:"type,omitempty"`
	EverySeconds int64  `json:"everySeconds"`
}

type bucketsResponse struct {
	Buckets []bucketResponse `json:"buckets"`
}

type createBucketRequest struct {
	Name           string          `json:"name"`
	OrgID          string          `json:"orgID"`
	RetentionRules []retentionRule `json:"retentionRules"`
}

type orgResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type orgsResponse struct {
	Orgs []orgResponse `json:"orgs"`
}

func toBucketResponse(b simulation.Bucket) bucketResponse {
	rules := []retentionRule{}
	if b.Expire > 0 {
		rules = append(rules, retentionRule{Type: "expire", EverySeconds: b.Expire})
	}
	return bucketResponse{
		ID:             b.ID,
		OrgID:          b.OrgID,
		Type:           "user",
		Name:           b.Name,
		RetentionRules: rules,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}

func toBucketsResponse(buckets []simulation.Bucket) bucketsResponse {
	out := bucketsResponse{Buckets: make([]bucketResponse, 0, len(buckets))}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, toBucketResponse(b))
	}
	return out
}

// handleListBuckets lists buckets, optionally filtered by ?id= or ?name=.
func (h *Handler) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	buckets := h.state.Buckets()
	switch {
	case q.Has("id"):
		b, err := buckets.Get(q.Get("id"))
		if err != nil {
			writeBucketError(w, err, q.Get("id"))
			return
		}
		httputil.WriteOK(w, toBucketsResponse([]simulation.Bucket{b}))
	case q.Get("name") != "":
		var found []simulation.Bucket
		if b, ok := buckets.FindByName(q.Get("name")); ok {
			found = append(found, b)
		}
		httputil.WriteOK(w, toBucketsResponse(found))
	default:
		httputil.WriteOK(w, toBucketsResponse(buckets.List()))
	}
}

func (h *Handler) handleGetBucket(w http.ResponseWriter, r *http.Request) {
	bucketID := r.PathValue("id")
	b, err := h.state.Buckets().Get(bucketID)
	if err != nil {
		writeBucketError(w, err, bucketID)
		return
	}
	httputil.WriteOK(w, toBucketResponse(b))
}

func (h *Handler) handleCreateBucket(w http.ResponseWriter, r *http.Request) {
	var req createBucketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteInvalid(w, fmt.Sprintf("failed to decode request body: %v", err))
		return
	}
	var expire int64
	if len(req.RetentionRules) > 0 {
		expire = req.RetentionRules[0].EverySeconds
	}

	b, err := h.state.Buckets().Create(req.Name, req.OrgID, expire)
	switch {
	case errors.Is(err, simulation.ErrBucketNameRequired):
		httputil.WriteInvalid(w, "bucket name is required")
		return
	case errors.Is(err, simulation.ErrOrgMismatch):
		httputil.WriteNotFound(w, fmt.Sprintf("organization %q not found", req.OrgID))
		return
	case errors.Is(err, simulation.ErrBucketExists):
		httputil.WriteConflict(w, fmt.Sprintf("bucket with name %s already exists", req.Name))
		return
	case err != nil:
		httputil.WriteError(w, http.StatusInternalServerError, "internal error", err.Error())
		return
	}
	h.log.Info("bucket created", "id", b.ID, "name", b.Name, "expire", b.Expire)
	httputil.WriteCreated(w, toBucketResponse(b))
}

func (h *Handler) handleDeleteBucket(w http.ResponseWriter, r *http.Request) {
	bucketID := r.PathValue("id")
	if err := h.state.Buckets().Delete(bucketID); err != nil {
		writeBucketError(w, err, bucketID)
		return
	}
	h.log.Info("bucket deleted", "id", bucketID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteBucketNoID(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteMethodNotAllowed(w, "bucket id is required")
}

func (h *Handler) handleListOrgs(w http.ResponseWriter, r *http.Request) {
	out := orgsResponse{Orgs: []orgResponse{}}
	for _, o := range h.state.Org().Filter(r.URL.Query().Get("org")) {
		out.Orgs = append(out.Orgs, orgResponse{ID: o.ID, Name: o.Name})
	}
	httputil.WriteOK(w, out)
}

func writeBucketError(w http.ResponseWriter, err error, bucketID string) {
	switch {
	case errors.Is(err, simulation.ErrInvalidBucketID):
		httputil.WriteInvalid(w, "invalid id")
	case errors.Is(err, simulation.ErrBucketNotFound):
		httputil.WriteNotFound(w, fmt.Sprintf("bucket %q not found", bucketID))
	default:
		httputil.WriteError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
