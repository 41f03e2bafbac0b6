package internal

import "fmt"

// BrokerError represents a failure of one management broker operation.
// The broker's own error text is wrapped verbatim; no local retry or
// translation happens on top of it.
type BrokerError struct {
	Op        string // "sessions", "disconnect", "logoff", "message", "whoami"
	Host      string // empty for host-less operations
	SessionID string
	Err       error
}

func (e *BrokerError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("broker error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("broker error: %s %s:%s: %v", e.Op, e.Host, e.SessionID, e.Err)
}

func (e *BrokerError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading or validating the config file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
