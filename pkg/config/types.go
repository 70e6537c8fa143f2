package config

// Value sources recorded in ServerConfiguration.Sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// ServerConfiguration defines the mock server runtime settings.
type ServerConfiguration struct {
	// Port is the data plane port emulating the database API.
	Port int `json:"port" yaml:"port"`
	// ManagementPort serves /start, /stop, /status and /log.
	ManagementPort int `json:"managementPort" yaml:"managementPort"`
	// BindAddress is the interface both listeners bind to ("" = all).
	BindAddress string `json:"bindAddress,omitempty" yaml:"bindAddress,omitempty"`
	// ReadTimeout is the HTTP read timeout in seconds (0 = none)
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds (0 = none). A
	// value below an injected query delay cuts that response short.
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	// AutoStart starts the data plane without waiting for /start.
	AutoStart bool `json:"autoStart,omitempty" yaml:"autoStart,omitempty"`

	Credentials Credentials   `json:"credentials" yaml:"credentials"`
	Logging     LoggingConfig `json:"logging" yaml:"logging"`

	// Sources maps a field name to the source that last set it.
	Sources map[string]string `json:"-" yaml:"-"`
}

// Credentials are the identities the data plane accepts.
type Credentials struct {
	OrgName  string `json:"orgName" yaml:"orgName"`
	OrgID    string `json:"orgID" yaml:"orgID"`
	Bucket   string `json:"bucket" yaml:"bucket"`
	Database string `json:"database" yaml:"database"`
	Token    string `json:"token" yaml:"token"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// File, when set, receives a copy of the log output.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}
