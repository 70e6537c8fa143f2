// Package config defines the runtime configuration of the mock server and
// loads it from defaults, a YAML or JSON file and the environment.
//
// Precedence, lowest first: defaults, file (--config or INFLUXMOCK_CONFIG),
// environment, command line flags. Load applies the first three; the CLI
// applies flags that were explicitly set. Sources records where each
// non-default value came from.
package config
