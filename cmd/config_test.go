package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iksnae/rds-session/internal"
	"github.com/iksnae/rds-session/testutil"
)

func TestConfigFileDrivesBrokerAndAudit(t *testing.T) {
	srv := newActionServer(t)
	auditPath := testutil.TempAuditPath(t)

	cfgPath := testutil.WriteConfig(t, fmt.Sprintf(`broker:
  url: %s
audit:
  enabled: true
  path: %s
`, srv.URL, auditPath))

	rootCmd.SetArgs([]string{"disconnect", "--state", "Disconnected", "--config", cfgPath, "--yes"})
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("disconnect with config file error = %v", err)
	}

	if posts := srv.Posts(); len(posts) != 2 {
		t.Fatalf("got %d broker posts, want 2: %v", len(posts), posts)
	}

	// Both executed disconnects must be in the audit trail.
	audit, err := internal.OpenAuditLog(auditPath)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	defer audit.Close()
	entries, err := audit.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("audit has %d entries, want 2: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Action != "disconnect" {
			t.Errorf("audit action = %q, want disconnect", e.Action)
		}
	}

	resetFilterFlags()
}
