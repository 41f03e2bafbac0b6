package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// AuditLog appends executed administrative actions to a local SQLite
// database. Declined confirmations are never audited. Audit failures
// are logged as warnings and never fail the action itself. A nil
// AuditLog is valid and records nothing.
type AuditLog struct {
	db *sql.DB
}

// OpenAuditLog opens (or creates) the audit database at path.
func OpenAuditLog(path string) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit database ping failed: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		action TEXT NOT NULL,
		host TEXT NOT NULL,
		session_id TEXT NOT NULL,
		user TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}

	return &AuditLog{db: db}, nil
}

// Close closes the underlying database.
func (a *AuditLog) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Record appends one executed action. Best effort only.
func (a *AuditLog) Record(action string, r SessionRecord) {
	if a == nil || a.db == nil {
		return
	}
	_, err := a.db.Exec(
		"INSERT INTO actions (at, action, host, session_id, user) VALUES (?, ?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), action, r.Host, r.SessionID, r.User,
	)
	if err != nil {
		LogWarn("failed to record audit entry for %s: %v", r.Target(), err)
	}
}

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	At        string
	Action    string
	Host      string
	SessionID string
	User      string
}

// Entries returns the audit trail, newest first.
func (a *AuditLog) Entries() ([]AuditEntry, error) {
	if a == nil || a.db == nil {
		return nil, nil
	}
	rows, err := a.db.Query("SELECT at, action, host, session_id, user FROM actions ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("audit query failed: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.At, &e.Action, &e.Host, &e.SessionID, &e.User); err != nil {
			return nil, fmt.Errorf("audit scan failed: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit rows iteration error: %w", err)
	}

	return entries, nil
}
