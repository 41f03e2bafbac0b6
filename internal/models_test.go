package internal

import (
	"strings"
	"testing"
)

func TestIdleMillisToMinutes(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want int64
	}{
		{name: "exact minutes", ms: 120000, want: 2},
		{name: "floor division", ms: 125000, want: 2},
		{name: "just under one minute", ms: 59999, want: 0},
		{name: "zero", ms: 0, want: 0},
		{name: "one minute", ms: 60000, want: 1},
		{name: "negative clamps to zero", ms: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idleMillisToMinutes(tt.ms); got != tt.want {
				t.Errorf("idleMillisToMinutes(%d) = %d, want %d", tt.ms, got, tt.want)
			}
		})
	}
}

func TestParseSessionState(t *testing.T) {
	for _, valid := range []string{"Active", "Idle", "Connected", "Disconnected", "Any"} {
		if _, err := ParseSessionState(valid); err != nil {
			t.Errorf("ParseSessionState(%q) error = %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "active", "Unknown", "ANY"} {
		if _, err := ParseSessionState(invalid); err == nil {
			t.Errorf("ParseSessionState(%q) expected error", invalid)
		}
	}
}

func TestDecodeSessions(t *testing.T) {
	payload := `[
		{"host": "rds-01", "user": "alice", "sessionId": "3", "state": "Active", "idleMillis": 125000},
		{"host": "rds-02", "user": "bob", "sessionId": "7", "state": "Disconnected", "idleMillis": 59999}
	]`

	records, err := DecodeSessions([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeSessions() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("DecodeSessions() returned %d records, want 2", len(records))
	}

	if records[0].IdleMinutes != 2 {
		t.Errorf("records[0].IdleMinutes = %d, want 2", records[0].IdleMinutes)
	}
	if records[1].IdleMinutes != 0 {
		t.Errorf("records[1].IdleMinutes = %d, want 0", records[1].IdleMinutes)
	}
	if records[0].State != StateActive {
		t.Errorf("records[0].State = %q, want Active", records[0].State)
	}
	if got := records[1].Target(); got != "rds-02:7" {
		t.Errorf("Target() = %q, want rds-02:7", got)
	}
}

func TestDecodeSessions_InvalidState(t *testing.T) {
	payload := `[{"host": "rds-01", "user": "alice", "sessionId": "3", "state": "Sleeping", "idleMillis": 0}]`
	if _, err := DecodeSessions([]byte(payload)); err == nil {
		t.Error("DecodeSessions() expected error for unknown state")
	}
}

func TestDecodeSessions_AnyRejectedOnRecords(t *testing.T) {
	payload := `[{"host": "rds-01", "user": "alice", "sessionId": "3", "state": "Any", "idleMillis": 0}]`
	_, err := DecodeSessions([]byte(payload))
	if err == nil {
		t.Fatal("DecodeSessions() expected error for state Any on a record")
	}
	if !strings.Contains(err.Error(), "Any") {
		t.Errorf("error %q should mention the offending state", err)
	}
}

func TestDecodeSessions_Malformed(t *testing.T) {
	if _, err := DecodeSessions([]byte("{not json")); err == nil {
		t.Error("DecodeSessions() expected error for malformed payload")
	}
}
