package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError reports a configuration file that cannot be used.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// Load builds the configuration from defaults, the file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*ServerConfiguration, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML (or JSON) file at path into cfg. Keys absent
// from the file keep their current value.
func LoadFile(cfg *ServerConfiguration, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return Parse(cfg, path, data)
}

// Parse merges the YAML document data into cfg. path is only used in
// error messages.
func Parse(cfg *ServerConfiguration, path string, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ConfigError{Path: path, Message: err.Error()}
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ConfigError{Path: path, Message: "top level must be a mapping"}
	}
	if err := root.Decode(cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return &ConfigError{Path: path, Message: typeErr.Error()}
		}
		return &ConfigError{Path: path, Message: err.Error()}
	}
	for _, key := range mappingKeys(root, "") {
		cfg.SetSource(key, SourceFile)
	}
	return nil
}

// mappingKeys lists the dotted keys of scalar values in n.
func mappingKeys(n *yaml.Node, prefix string) []string {
	var keys []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := prefix + n.Content[i].Value
		if v := n.Content[i+1]; v.Kind == yaml.MappingNode {
			keys = append(keys, mappingKeys(v, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
