package internal

import (
	"path/filepath"
	"testing"
)

func TestAuditLog_RecordAndEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	audit, err := OpenAuditLog(path)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	defer audit.Close()

	audit.Record("disconnect", SessionRecord{Host: "rds-01", User: "alice", SessionID: "3"})
	audit.Record("logoff", SessionRecord{Host: "rds-02", User: "bob", SessionID: "7"})

	entries, err := audit.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d rows, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Action != "logoff" || entries[0].Host != "rds-02" {
		t.Errorf("entries[0] = %+v, want the logoff row", entries[0])
	}
	if entries[1].Action != "disconnect" || entries[1].User != "alice" {
		t.Errorf("entries[1] = %+v, want the disconnect row", entries[1])
	}
	if entries[0].At == "" {
		t.Error("audit entry missing timestamp")
	}
}

func TestAuditLog_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	audit, err := OpenAuditLog(path)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	audit.Record("message", SessionRecord{Host: "rds-01", User: "carol", SessionID: "5"})
	if err := audit.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenAuditLog(path)
	if err != nil {
		t.Fatalf("OpenAuditLog() reopen error = %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "message" {
		t.Errorf("Entries() after reopen = %+v, want the message row", entries)
	}
}

func TestAuditLog_NilIsSafe(t *testing.T) {
	var audit *AuditLog
	audit.Record("disconnect", SessionRecord{Host: "rds-01", SessionID: "1"})
	if err := audit.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
	entries, err := audit.Entries()
	if err != nil || entries != nil {
		t.Errorf("nil Entries() = %v, %v", entries, err)
	}
}
