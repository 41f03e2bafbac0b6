package internal

import (
	"encoding/json"
	"fmt"
)

// SessionState represents the connection state of a session as reported
// by the management broker.
type SessionState string

const (
	StateActive       SessionState = "Active"
	StateIdle         SessionState = "Idle"
	StateConnected    SessionState = "Connected"
	StateDisconnected SessionState = "Disconnected"

	// StateAny is a filter-only value; records never carry it.
	StateAny SessionState = "Any"
)

// ParseSessionState validates a state string (case-sensitive, matching
// the broker's wire values). StateAny is accepted for filter input.
func ParseSessionState(s string) (SessionState, error) {
	switch SessionState(s) {
	case StateActive, StateIdle, StateConnected, StateDisconnected, StateAny:
		return SessionState(s), nil
	}
	return "", fmt.Errorf("unknown session state %q (want Active, Idle, Connected, Disconnected or Any)", s)
}

// SessionRecord is a normalized view of one user session on one host.
// It is constructed fresh on every query and never mutated afterwards.
type SessionRecord struct {
	Host        string       `json:"host" yaml:"host"`
	User        string       `json:"user" yaml:"user"`
	SessionID   string       `json:"sessionId" yaml:"session_id"`
	State       SessionState `json:"state" yaml:"state"`
	IdleMinutes int64        `json:"idleMinutes" yaml:"idle_minutes"`
}

// Target renders the host-qualified session identifier. A session id is
// only meaningful paired with its host.
func (r SessionRecord) Target() string {
	return r.Host + ":" + r.SessionID
}

// rawSession is the broker's wire representation. Idle time comes in
// milliseconds and is normalized to whole minutes on decode.
type rawSession struct {
	Host       string `json:"host"`
	User       string `json:"user"`
	SessionID  string `json:"sessionId"`
	State      string `json:"state"`
	IdleMillis int64  `json:"idleMillis"`
}

// idleMillisToMinutes floors a millisecond idle time to whole minutes.
// 59999ms is 0 minutes; 125000ms is 2 minutes.
func idleMillisToMinutes(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms / 60000
}

// DecodeSessions parses the broker's session list payload into records.
func DecodeSessions(data []byte) ([]SessionRecord, error) {
	var raw []rawSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse session list: %w", err)
	}

	records := make([]SessionRecord, 0, len(raw))
	for _, rs := range raw {
		state, err := ParseSessionState(rs.State)
		if err != nil {
			return nil, fmt.Errorf("session %s:%s: %w", rs.Host, rs.SessionID, err)
		}
		if state == StateAny {
			return nil, fmt.Errorf("session %s:%s: state Any is not a valid record state", rs.Host, rs.SessionID)
		}
		records = append(records, SessionRecord{
			Host:        rs.Host,
			User:        rs.User,
			SessionID:   rs.SessionID,
			State:       state,
			IdleMinutes: idleMillisToMinutes(rs.IdleMillis),
		})
	}

	return records, nil
}
