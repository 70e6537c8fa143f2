package cli

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/getmockd/influxmock/pkg/config"
	"github.com/getmockd/influxmock/pkg/engine"
	"github.com/getmockd/influxmock/pkg/engine/api"
)

// execute runs the root command with args and returns stdout. Commands
// share package-level flag state, so tests using it do not run in
// parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	managementURL = DefaultManagementURL
	jsonOutput = false
	for _, name := range []string{"json", "management-url"} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// newManagement serves a management API over a data plane bound to an
// ephemeral loopback port.
func newManagement(t *testing.T) (*httptest.Server, *engine.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Port = 0
	cfg.BindAddress = "127.0.0.1"
	eng := engine.NewServer(cfg)
	t.Cleanup(func() { _ = eng.Stop() })

	srv := httptest.NewServer(api.NewServer(eng, "127.0.0.1:0").Handler())
	t.Cleanup(srv.Close)
	return srv, eng
}
