package internal

import "strings"

// Filter selects sessions from a query result. Exactly one of the two
// modes applies per filter: when User is non-empty, matching is purely a
// case-insensitive substring test on the user name and the remaining
// fields are ignored; otherwise the state/self/idle combination applies.
type Filter struct {
	// User, when set, switches to substring mode.
	User string

	// State restricts records to one state; StateAny matches all.
	State SessionState
	// IncludeSelf keeps sessions whose user name contains the caller's
	// identity. Matching is a case-insensitive substring test, so a
	// caller "al" also excludes sessions for "albert".
	IncludeSelf bool
	// MinIdleMinutes is a lower bound on idle time, in whole minutes.
	MinIdleMinutes int64
}

// UserMode reports whether the filter runs in substring mode.
func (f Filter) UserMode() bool {
	return f.User != ""
}

// Match reports whether a single record passes the filter. self is the
// caller's identity, used only for self-exclusion in state mode.
func (f Filter) Match(r SessionRecord, self string) bool {
	if f.UserMode() {
		return strings.Contains(strings.ToLower(r.User), strings.ToLower(f.User))
	}

	if f.State != StateAny && f.State != "" && r.State != f.State {
		return false
	}
	if r.IdleMinutes < f.MinIdleMinutes {
		return false
	}
	if !f.IncludeSelf && self != "" &&
		strings.Contains(strings.ToLower(r.User), strings.ToLower(self)) {
		return false
	}
	return true
}

// Apply filters records in one pass, preserving order. The input slice
// is never modified.
func (f Filter) Apply(records []SessionRecord, self string) []SessionRecord {
	out := make([]SessionRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r, self) {
			out = append(out, r)
		}
	}
	return out
}
