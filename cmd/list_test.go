package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/iksnae/rds-session/internal"
	"github.com/iksnae/rds-session/testutil"
)

func fakeBrokerServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sessions":
			io.WriteString(w, `[
				{"host":"rds-01","user":"alice","sessionId":"3","state":"Active","idleMillis":0},
				{"host":"rds-01","user":"bob","sessionId":"7","state":"Idle","idleMillis":2520000},
				{"host":"rds-02","user":"admin","sessionId":"1","state":"Connected","idleMillis":60000}
			]`)
		case "/api/v1/whoami":
			io.WriteString(w, `{"userName":"admin"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runList executes the list command against a fake broker and returns stdout.
func runList(t *testing.T, srv *httptest.Server, extraArgs ...string) (string, error) {
	t.Helper()
	args := append([]string{
		"list",
		"--broker", srv.URL,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	}, extraArgs...)
	rootCmd.SetArgs(args)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestListCommand_JSONOutput(t *testing.T) {
	srv := fakeBrokerServer(t)

	out, err := runList(t, srv, "--output", "json")
	if err != nil {
		t.Fatalf("list --output json error = %v", err)
	}

	var records []internal.SessionRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	// The caller's own session is excluded by default.
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(records), records)
	}
	for _, r := range records {
		if r.User == "admin" {
			t.Error("caller's own session should be excluded by default")
		}
	}
	if records[1].IdleMinutes != 42 {
		t.Errorf("IdleMinutes = %d, want 42 (converted from 2520000ms)", records[1].IdleMinutes)
	}
}

func TestListCommand_UserFilter(t *testing.T) {
	srv := fakeBrokerServer(t)

	out, err := runList(t, srv, "--user", "BO", "--output", "json")
	if err != nil {
		t.Fatalf("list --user error = %v", err)
	}

	var records []internal.SessionRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 1 || records[0].User != "bob" {
		t.Errorf("records = %+v, want only bob", records)
	}

	// Reset for later tests; package-scope flag vars persist.
	filterUser = ""
}

func TestListCommand_RejectsBadState(t *testing.T) {
	srv := fakeBrokerServer(t)

	_, err := runList(t, srv, "--state", "Sleeping")
	if err == nil {
		t.Error("list --state Sleeping should fail")
	}
	filterState = "Any"
}

func TestDisplaySessions(t *testing.T) {
	// Smoke test: render must not panic for empty and populated sets.
	displaySessions(nil)
	displaySessions(testutil.Sessions())
}

func TestRenderState_CoversAllStates(t *testing.T) {
	for _, s := range []internal.SessionState{
		internal.StateActive, internal.StateIdle, internal.StateConnected, internal.StateDisconnected,
	} {
		if got := renderState(s); got == "" {
			t.Errorf("renderState(%s) returned empty string", s)
		}
	}
}
