package chaos

import (
	"net/http"
	"strconv"

	"github.com/getmockd/influxmock/pkg/httputil"
)

// SetRetryAfter sets the Retry-After header to seconds. Non-positive
// values leave the header unset so the client falls back to its default.
func SetRetryAfter(h http.Header, seconds int) {
	if seconds > 0 {
		h.Set("Retry-After", strconv.Itoa(seconds))
	}
}

// WriteRetryable writes a rejection with a plain text body.
func WriteRetryable(w http.ResponseWriter, statusCode, retryAfter int, body string) {
	SetRetryAfter(w.Header(), retryAfter)
	httputil.WriteText(w, statusCode, body)
}
