package config

import (
	"fmt"
	"strings"

	"github.com/getmockd/influxmock/internal/id"
	"github.com/getmockd/influxmock/pkg/logging"
)

// ValidationError describes an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks ports, credentials and logging settings.
func (c *ServerConfiguration) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return &ValidationError{Field: "port", Message: "port must be between 1 and 65535"}
	}
	if c.ManagementPort <= 0 || c.ManagementPort > 65535 {
		return &ValidationError{Field: "managementPort", Message: "port must be between 1 and 65535"}
	}
	if c.Port == c.ManagementPort {
		return &ValidationError{Field: "managementPort", Message: fmt.Sprintf("must differ from port %d", c.Port)}
	}
	if c.ReadTimeout < 0 {
		return &ValidationError{Field: "readTimeout", Message: "must be >= 0"}
	}
	if c.WriteTimeout < 0 {
		return &ValidationError{Field: "writeTimeout", Message: "must be >= 0"}
	}

	creds := c.Credentials
	if !id.IsShort(creds.OrgID) || !id.IsHex(creds.OrgID) {
		return &ValidationError{Field: "credentials.orgID", Message: fmt.Sprintf("%q is not a %d character hex id", creds.OrgID, id.ShortLen)}
	}
	required := []struct{ field, value string }{
		{"credentials.orgName", creds.OrgName},
		{"credentials.bucket", creds.Bucket},
		{"credentials.database", creds.Database},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Message: "must not be empty"}
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if f := c.Logging.Format; f != "" && !strings.EqualFold(f, string(logging.FormatText)) && !strings.EqualFold(f, string(logging.FormatJSON)) {
		return &ValidationError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", f)}
	}
	return nil
}
