package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig         = "INFLUXMOCK_CONFIG"
	EnvPort           = "INFLUXMOCK_PORT"
	EnvManagementPort = "INFLUXMOCK_MANAGEMENT_PORT"
	EnvBindAddress    = "INFLUXMOCK_BIND_ADDRESS"
	EnvToken          = "INFLUXMOCK_TOKEN"
	EnvAutoStart      = "INFLUXMOCK_AUTOSTART"
	EnvLogLevel       = "INFLUXMOCK_LOG_LEVEL"
	EnvLogFormat      = "INFLUXMOCK_LOG_FORMAT"
)

// ApplyEnv overrides cfg with the environment variables that are set.
func ApplyEnv(cfg *ServerConfiguration) error {
	if err := envInt(cfg, EnvPort, "port", &cfg.Port); err != nil {
		return err
	}
	if err := envInt(cfg, EnvManagementPort, "managementPort", &cfg.ManagementPort); err != nil {
		return err
	}
	envString(cfg, EnvBindAddress, "bindAddress", &cfg.BindAddress)
	envString(cfg, EnvToken, "credentials.token", &cfg.Credentials.Token)
	envString(cfg, EnvLogLevel, "logging.level", &cfg.Logging.Level)
	envString(cfg, EnvLogFormat, "logging.format", &cfg.Logging.Format)

	if v := os.Getenv(EnvAutoStart); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoStart, err)
		}
		cfg.AutoStart = b
		cfg.SetSource("autoStart", SourceEnv)
	}
	return nil
}

func envInt(cfg *ServerConfiguration, name, field string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	cfg.SetSource(field, SourceEnv)
	return nil
}

func envString(cfg *ServerConfiguration, name, field string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
		cfg.SetSource(field, SourceEnv)
	}
}
