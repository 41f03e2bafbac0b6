package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/rds-session/internal"
)

// TempAuditPath returns a path for a throwaway audit database.
func TempAuditPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "audit.db")
}

// WriteConfig writes a yaml config file into a temp dir and returns its path.
func WriteConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rds-session.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// Sessions builds a small fixed session set used across tests.
func Sessions() []internal.SessionRecord {
	return []internal.SessionRecord{
		{Host: "rds-01", User: "alice", SessionID: "3", State: internal.StateActive, IdleMinutes: 0},
		{Host: "rds-01", User: "bob", SessionID: "7", State: internal.StateIdle, IdleMinutes: 42},
		{Host: "rds-02", User: "Bobby", SessionID: "2", State: internal.StateDisconnected, IdleMinutes: 300},
		{Host: "rds-02", User: "carol", SessionID: "5", State: internal.StateConnected, IdleMinutes: 1},
	}
}
