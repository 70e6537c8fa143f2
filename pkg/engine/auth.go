package engine

import (
	"net/http"

	"github.com/getmockd/influxmock/pkg/httputil"
)

// tokenScheme prefixes the API token in the Authorization header.
const tokenScheme = "Token "

// checkToken enforces the v2 credentials. Both are optional: a request
// without an Authorization header or without a u/p pair is accepted. It
// writes the 401 response and returns false when a credential is wrong.
func (h *Handler) checkToken(w http.ResponseWriter, r *http.Request) bool {
	if auth := r.Header.Get("Authorization"); auth != "" && auth != tokenScheme+h.creds.Token {
		h.log.Debug("rejected token", "path", r.URL.Path)
		httputil.WriteUnauthorized(w)
		return false
	}
	q := r.URL.Query()
	// Lenient like the reference server: one matching value is enough.
	if q.Has("u") && q.Has("p") && !h.legacyAuthorized(q.Get("u"), q.Get("p")) {
		h.log.Debug("rejected user/password", "path", r.URL.Path, "user", q.Get("u"))
		httputil.WriteUnauthorized(w)
		return false
	}
	return true
}

// legacyAuthorized reports whether a v1 user/password pair is accepted.
// The pair is refused only when neither value matches.
func (h *Handler) legacyAuthorized(user, password string) bool {
	return user == h.creds.Username || password == h.creds.Password
}

func (h *Handler) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.checkToken(w, r) {
			next(w, r)
		}
	}
}
