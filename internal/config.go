package internal

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the operator-level settings for reaching the management
// broker. Flags override anything read from the file.
type Config struct {
	Broker  BrokerConfig `yaml:"broker"`
	Audit   AuditConfig  `yaml:"audit"`
	Verbose bool         `yaml:"verbose"`
}

type BrokerConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfigPath returns ~/.rds-session.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rds-session.yaml"), nil
}

// DefaultAuditPath returns ~/.rds-session-audit.db.
func DefaultAuditPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rds-session-audit.db"), nil
}

// LoadConfig reads a yaml config file, overlaying it on defaults. A
// missing file is not an error: the defaults are returned as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Broker: BrokerConfig{
			URL:     "http://127.0.0.1:8440",
			Timeout: 30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}
