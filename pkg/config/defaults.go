package config

import "github.com/getmockd/influxmock/pkg/simulation"

// Defaults of the reference test server.
const (
	DefaultPort           = 999
	DefaultManagementPort = 998
	DefaultDatabase       = "my-db"
	DefaultToken          = "1234567890"
	DefaultUsername       = "user"
	DefaultPassword       = "my secret pass"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Default returns the configuration the client test suites expect.
func Default() *ServerConfiguration {
	return &ServerConfiguration{
		Port:           DefaultPort,
		ManagementPort: DefaultManagementPort,
		Credentials: Credentials{
			OrgName:  simulation.DefaultOrgName,
			OrgID:    simulation.DefaultOrgID,
			Bucket:   simulation.DefaultBucket,
			Database: DefaultDatabase,
			Token:    DefaultToken,
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Sources: make(map[string]string),
	}
}

// Org returns the organization described by the credentials.
func (c *ServerConfiguration) Org() simulation.Org {
	return simulation.Org{ID: c.Credentials.OrgID, Name: c.Credentials.OrgName}
}

// SetSource records that field was set by source.
func (c *ServerConfiguration) SetSource(field, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[field] = source
}

// Source returns where field was set, SourceDefault when it never was.
func (c *ServerConfiguration) Source(field string) string {
	if s, ok := c.Sources[field]; ok {
		return s
	}
	return SourceDefault
}
