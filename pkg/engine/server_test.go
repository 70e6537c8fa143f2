package engine

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/influxmock/pkg/config"
	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Port = 0
	cfg.BindAddress = "127.0.0.1"
	srv := NewServer(cfg)
	t.Cleanup(func() { _ = srv.Stop() })
	return srv
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil)
		require.NotNil(t, srv)
		assert.Equal(t, config.DefaultPort, srv.Config().Port)
		assert.False(t, srv.IsRunning())
		assert.Empty(t, srv.Addr())
		assert.Zero(t, srv.Uptime())
	})

	t.Run("nil logger keeps nop logger", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil, WithLogger(nil))
		assert.NotNil(t, srv.log)
	})
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.NoError(t, srv.Start())
	assert.True(t, srv.IsRunning())
	assert.ErrorIs(t, srv.Start(), ErrAlreadyRunning)

	base := "http://" + srv.Addr()
	resp, err := http.Get(base + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	resp, err = http.Post(base+writeV2URL, "text/plain", strings.NewReader("cpu,direction=permanent-set,x-code=503 value=1\n"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	assert.Empty(t, srv.Addr())
	assert.Zero(t, srv.State().PermanentCode())
	assert.ErrorIs(t, srv.Stop(), ErrNotRunning)

	require.NoError(t, srv.Start())
	resp, err = http.Post("http://"+srv.Addr()+writeV2URL, "text/plain", strings.NewReader("cpu value=1\n"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServer_StopResetsState(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.NoError(t, srv.Start())

	state := srv.State()
	_, err := state.Buckets().Create("tmp", state.Org().ID, 0)
	require.NoError(t, err)
	resp, err := http.Post("http://"+srv.Addr()+writeV2URL, "text/plain", strings.NewReader("cpu value=1\ncpu,direction=chunked value=1\n"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, 2, state.PointCount())

	require.NoError(t, srv.Stop())
	assert.Zero(t, state.PointCount())
	assert.Equal(t, 1, state.Buckets().Len())
	assert.Equal(t, "", state.UserAgent())
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	first := newTestServer(t)
	require.NoError(t, first.Start())

	cfg := config.Default()
	cfg.BindAddress = "127.0.0.1"
	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	second := NewServer(cfg)
	require.Error(t, second.Start())
	assert.False(t, second.IsRunning())
}

func TestServer_GzipWrite(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.NoError(t, srv.Start())

	req, err := http.NewRequest(http.MethodPost, "http://"+srv.Addr()+writeV2URL, strings.NewReader(string(gzipped(t, "cpu value=1\nmem value=2\n"))))
	require.NoError(t, err)
	req.Header.Set("Content-Encoding", "gzip")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 2, srv.State().PointCount())
	assert.Equal(t, float64(2), srv.Metrics().PointsWrittenTotal.Value())
}

func TestServer_StopResetsAfterInFlightRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.NoError(t, srv.Start())

	// Hold the request slot the way a handler still running would.
	srv.serial.Lock()
	stopped := make(chan error, 1)
	go func() { stopped <- srv.Stop() }()

	select {
	case err := <-stopped:
		srv.serial.Unlock()
		t.Fatalf("Stop returned while a request was in flight: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	srv.State().ApplyWriteV2(lineprotocol.Parse("cpu,host=a value=1\n"))
	srv.serial.Unlock()

	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.False(t, srv.IsRunning())
	assert.Zero(t, srv.State().PointCount())
}
