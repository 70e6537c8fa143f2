package chaos

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteRetryable(t *testing.T) {
	t.Parallel()

	t.Run("with retry-after", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()

		WriteRetryable(w, http.StatusTooManyRequests, 10, "Limit exceeded")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "10", w.Header().Get("Retry-After"))
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "Limit exceeded", w.Body.String())
	})

	t.Run("without retry-after", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()

		WriteRetryable(w, http.StatusServiceUnavailable, 0, "Server overloaded")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		_, ok := w.Header()["Retry-After"]
		assert.False(t, ok)
	})
}

func TestWriteRetryable_EmptyBody(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()

	WriteRetryable(w, http.StatusTooManyRequests, 0, "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Empty(t, w.Header().Get("Content-Type"))
	assert.Zero(t, w.Body.Len())
}
