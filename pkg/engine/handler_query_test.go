package engine

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/influxmock/pkg/annotatedcsv"
	"github.com/getmockd/influxmock/pkg/fixtures"
)

func TestQuery_Fixtures(t *testing.T) {
	t.Parallel()

	catalog := fixtures.Default()
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)
			want, _ := catalog.Lookup(name)

			rec := query(t, h, "testquery-"+name)
			assert.Equal(t, want.Status, rec.Code)
			assert.Equal(t, want.Body, rec.Body.String())
		})
	}
}

func TestQuery_ContentType(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	rec := query(t, h, "testquery-singleTable")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeCSV, rec.Header().Get("Content-Type"))

	rec = query(t, h, "testquery-flux-error")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contentTypeJSON, rec.Header().Get("Content-Type"))
}

func TestQuery_UnknownFixture(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := query(t, h, "testquery-nothing-here")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = query(t, h, "testquery-unknown-error")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestQuery_EmptyStore(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := query(t, h, `from(bucket:"my-bucket") |> range(start: -1h)`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestQuery_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	payload := "cpu,host=a,region=eu usage=0.5,count=3i 1600000000\n" +
		"mem,host=b free=128i 1600000001\n"
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, writeV2URL, payload).Code)

	rec := query(t, h, "select")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "#datatype,"))
	assert.True(t, strings.HasSuffix(rec.Body.String(), "\r\n"))

	table, err := annotatedcsv.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"measurement", "host", "region", "usage", "count", "free", "timestamp"}, table.ColumnNames())
	assert.Equal(t, [][]string{
		{"cpu", "a", "eu", "0.5", "3", "", "1600000000"},
		{"mem", "b", "", "", "", "128", "1600000001"},
	}, table.Rows)
}

func TestQuery_OrgMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/v2/query?org=other", `{"query":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `organization name "other" not found`, decodeError(t, rec).Message)

	rec = do(t, h, http.MethodPost, "/api/v2/query", `{"query":"testquery-singleTable"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuery_BadBody(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, queryURL, `{"query":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid", decodeError(t, rec).Code)
}

func TestQuery_Unauthorized(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, queryURL, `{"query":"x"}`, "Authorization", "Token wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuery_DelayConsumedOnce(t *testing.T) {
	t.Parallel()

	sleeper := &sleepRecorder{}
	h := newTestHandler(t, WithSleeper(sleeper.Sleep))

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, writeV2URL, "cpu,direction=timeout,timeout=3 value=1\ncpu value=2\n").Code)

	rec := query(t, h, "select")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []time.Duration{3 * time.Second}, sleeper.Calls())

	query(t, h, "select")
	assert.Len(t, sleeper.Calls(), 1)
}

func TestQuery_InvalidTimeoutIgnored(t *testing.T) {
	t.Parallel()

	sleeper := &sleepRecorder{}
	h := newTestHandler(t, WithSleeper(sleeper.Sleep))
	do(t, h, http.MethodPost, writeV2URL, "cpu,direction=timeout,timeout=soon value=1\n")
	query(t, h, "testquery-singleTable")
	assert.Empty(t, sleeper.Calls())
}

func TestQuery_Chunked(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	post := func(path, body string) *http.Response {
		t.Helper()
		resp, err := srv.Client().Post(srv.URL+path, "text/plain", strings.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	plain := post(queryURL, `{"query":"testquery-singleTable"}`)
	plainBody, err := io.ReadAll(plain.Body)
	require.NoError(t, err)
	assert.Empty(t, plain.TransferEncoding)

	require.Equal(t, http.StatusNoContent, post(writeV2URL, "cpu,direction=chunked value=1\n").StatusCode)

	chunked := post(queryURL, `{"query":"testquery-singleTable"}`)
	chunkedBody, err := io.ReadAll(chunked.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"chunked"}, chunked.TransferEncoding)
	assert.True(t, bytes.Equal(plainBody, chunkedBody))

	again := post(queryURL, `{"query":"testquery-singleTable"}`)
	_, err = io.ReadAll(again.Body)
	require.NoError(t, err)
	assert.Empty(t, again.TransferEncoding)
}

func TestQuery_ChunkedResetByNextWrite(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	do(t, h, http.MethodPost, writeV2URL, "cpu,direction=chunked value=1\n")
	assert.True(t, h.State().PendingEffects().Chunked)

	do(t, h, http.MethodPost, writeV2URL, "cpu value=1\n")
	assert.False(t, h.State().PendingEffects().Chunked)
}
