package engine

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/influxmock/pkg/httputil"
)

func TestWriteV2_StoresPoint(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, writeV2URL, "cpu,host=a value=1\n")
	require.Equal(t, http.StatusNoContent, rec.Code)

	points := h.State().Points()
	require.Len(t, points, 1)
	assert.Equal(t, "cpu", points[0].Measurement)
	assert.Equal(t, "a", points[0].Tags.Value("host"))
	assert.Equal(t, "1", points[0].Fields.Value("value"))
}

func TestWriteV2_ParamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		status  int
		code    string
		message string
	}{
		{
			name:    "wrong org",
			target:  "/api/v2/write?org=other&bucket=my-bucket",
			status:  http.StatusNotFound,
			code:    httputil.CodeNotFound,
			message: `organization name "other" not found`,
		},
		{
			name:    "missing org",
			target:  "/api/v2/write?bucket=my-bucket",
			status:  http.StatusNotFound,
			code:    httputil.CodeNotFound,
			message: `organization name "" not found`,
		},
		{
			name:    "wrong bucket",
			target:  "/api/v2/write?org=my-org&bucket=nope",
			status:  http.StatusNotFound,
			code:    httputil.CodeNotFound,
			message: `bucket "nope" not found`,
		},
		{
			name:    "bad precision",
			target:  writeV2URL + "&precision=u",
			status:  http.StatusBadRequest,
			code:    "bad request ",
			message: `precision "u" is not valid`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			rec := do(t, h, http.MethodPost, tt.target, "cpu value=1")
			assert.Equal(t, tt.status, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.message, e.Message)
			assert.Zero(t, h.State().PointCount())
		})
	}
}

func TestWriteV2_Precisions(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"ns", "us", "ms", "s"} {
		t.Run(p, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			rec := do(t, h, http.MethodPost, writeV2URL+"&precision="+p, "cpu value=1 1")
			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
}

func TestWriteV2_Authentication(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		headers []string
		status  int
	}{
		{"no credentials", writeV2URL, nil, http.StatusNoContent},
		{"valid token", writeV2URL, []string{"Authorization", "Token 1234567890"}, http.StatusNoContent},
		{"wrong token", writeV2URL, []string{"Authorization", "Token nope"}, http.StatusUnauthorized},
		{"wrong scheme", writeV2URL, []string{"Authorization", "Bearer 1234567890"}, http.StatusUnauthorized},
		{"valid user pair", writeV2URL + "&u=user&p=my+secret+pass", nil, http.StatusNoContent},
		{"wrong user pair", writeV2URL + "&u=bob&p=secret", nil, http.StatusUnauthorized},
		{"only password matches", writeV2URL + "&u=bob&p=my+secret+pass", nil, http.StatusNoContent},
		{"user without password", writeV2URL + "&u=bob", nil, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			rec := do(t, h, http.MethodPost, tt.target, "cpu value=1", tt.headers...)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"code":"unauthorized","message":"unauthorized access"}`, rec.Body.String())
			}
		})
	}
}

func TestWriteV2_Directives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		status     int
		respBody   string
		retryAfter string
		stored     int
	}{
		{"429 with retry", "cpu,direction=429-1 value=1\n", http.StatusTooManyRequests, "Limit exceeded", "10", 0},
		{"429 without retry", "cpu,direction=429-2 value=1\n", http.StatusTooManyRequests, "Limit exceeded", "", 0},
		{"503 with retry", "cpu,direction=503-1 value=1\n", http.StatusServiceUnavailable, "Server overloaded", "10", 0},
		{"503 without retry", "cpu,direction=503-2 value=1\n", http.StatusServiceUnavailable, "Server overloaded", "", 0},
		{"status", "cpu,direction=status,x-code=418 value=1\ncpu value=2\n", http.StatusTeapot, "bad request", "", 0},
		{"chunked", "cpu,direction=chunked value=1\ncpu value=2\n", http.StatusNoContent, "", "", 1},
		{"timeout", "cpu,direction=timeout,timeout=2 value=1\n", http.StatusNoContent, "", "", 0},
		{"unknown", "cpu,direction=sideways value=1\ncpu value=2\n", http.StatusNoContent, "", "", 1},
		{"not first point", "cpu value=1\ncpu,direction=429-1 value=2\n", http.StatusNoContent, "", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			rec := do(t, h, http.MethodPost, writeV2URL, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.respBody, rec.Body.String())
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))
			assert.Equal(t, tt.stored, h.State().PointCount())
		})
	}
}

func TestWriteV2_DeleteAll(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, writeV2URL, "cpu value=1\ncpu value=2\n").Code)
	require.Equal(t, 2, h.State().PointCount())

	rec := do(t, h, http.MethodPost, writeV2URL, "x,direction=delete-all a=1\nmem value=3\n")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	points := h.State().Points()
	require.Len(t, points, 1)
	assert.Equal(t, "mem", points[0].Measurement)
	assert.False(t, points[0].Tags.Has("direction"))
}

func TestWriteV2_PermanentError(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, writeV2URL, "cpu,direction=permanent-set,x-code=503 value=1\n")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "bad request", rec.Body.String())

	for _, body := range []string{"cpu value=1\n", "", "cpu,direction=delete-all value=1\n"} {
		rec = do(t, h, http.MethodPost, writeV2URL, body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "body %q", body)
		assert.Equal(t, "Internal server error", rec.Body.String())
	}
	assert.Zero(t, h.State().PointCount())

	rec = do(t, h, http.MethodPost, writeV2URL, "cpu,direction=permanent-unset value=1\ncpu value=2\n")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, h.State().PointCount())

	rec = do(t, h, http.MethodPost, writeV2URL, "cpu value=3\n")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, h.State().PointCount())
}

func TestWriteV2_PermanentErrorDoesNotBlockV1(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	do(t, h, http.MethodPost, writeV2URL, "cpu,direction=permanent-set,x-code=500 value=1\n")
	rec := do(t, h, http.MethodPost, writeV1URL, "cpu value=1\n")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWriteV2_EmptyBody(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, writeV2URL, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, h.State().PointCount())
}

func TestWriteV1(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		body     string
		status   int
		respBody string
		stored   int
	}{
		{"stores points", writeV1URL, "cpu value=1\ncpu value=2\n", http.StatusNoContent, "", 2},
		{"precision u", writeV1URL + "&precision=u", "cpu value=1 1\n", http.StatusNoContent, "", 1},
		{"precision us rejected", writeV1URL + "&precision=us", "cpu value=1\n", http.StatusBadRequest, `precision "us" is not valid`, 0},
		{"no credentials", "/write?db=my-db", "cpu value=1\n", http.StatusUnauthorized, "unauthorized", 0},
		{"both credentials wrong", "/write?db=my-db&u=bob&p=x", "cpu value=1\n", http.StatusUnauthorized, "unauthorized", 0},
		{"user matches", "/write?db=my-db&u=user&p=my+secret+password", "cpu value=1\n", http.StatusNoContent, "", 1},
		{"password matches", "/write?db=my-db&u=admin&p=my+secret+pass", "cpu value=1\n", http.StatusNoContent, "", 1},
		{"directive 400", writeV1URL, "cpu,direction=400 value=1\ncpu value=2\n", http.StatusBadRequest, "bad request", 0},
		{"directive 500", writeV1URL, "cpu,direction=500 value=1\ncpu value=2\n", http.StatusInternalServerError, "internal server error", 0},
		{"v2 directive ignored", writeV1URL, "cpu,direction=429-1 value=1\ncpu value=2\n", http.StatusNoContent, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.respBody, rec.Body.String())
			assert.Equal(t, tt.stored, h.State().PointCount())
		})
	}
}

func TestWriteV1_WrongDatabase(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/write?db=other&u=user&p=x", "cpu value=1\n")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, `database "other" not found`, e.Message)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	do(t, h, http.MethodPost, writeV2URL, "cpu value=1\n")
	_, err := h.State().Buckets().Create("extra", h.State().Org().ID, 0)
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/v2/delete?org=my-org&bucket=my-bucket", `{"start":"1970-01-01T00:00:00Z","stop":"2100-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, h.State().PointCount())
	assert.Equal(t, 1, h.State().Buckets().Len())

	rec = do(t, h, http.MethodPost, "/api/v2/delete", "", "Authorization", "Token bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
