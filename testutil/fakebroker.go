package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/iksnae/rds-session/internal"
)

// Call records one action invocation on the fake broker.
type Call struct {
	Op        string
	Host      string
	SessionID string
	Title     string
	Body      string
}

// FakeBroker is an in-memory Broker for tests. Errors can be injected
// per operation and per target.
type FakeBroker struct {
	mu sync.Mutex

	Records  []internal.SessionRecord
	Identity string

	// SessionsErr fails the enumeration call when set.
	SessionsErr error
	// WhoAmIErr fails the identity call when set.
	WhoAmIErr error
	// FailTargets maps "host:sessionID" to an error returned by any
	// action against that session.
	FailTargets map[string]error

	Calls []Call
}

func (f *FakeBroker) Sessions(ctx context.Context) ([]internal.SessionRecord, error) {
	if f.SessionsErr != nil {
		return nil, f.SessionsErr
	}
	out := make([]internal.SessionRecord, len(f.Records))
	copy(out, f.Records)
	return out, nil
}

func (f *FakeBroker) WhoAmI(ctx context.Context) (string, error) {
	if f.WhoAmIErr != nil {
		return "", f.WhoAmIErr
	}
	return f.Identity, nil
}

func (f *FakeBroker) Disconnect(ctx context.Context, host, sessionID string) error {
	return f.act(Call{Op: "disconnect", Host: host, SessionID: sessionID})
}

func (f *FakeBroker) Logoff(ctx context.Context, host, sessionID string) error {
	return f.act(Call{Op: "logoff", Host: host, SessionID: sessionID})
}

func (f *FakeBroker) SendMessage(ctx context.Context, host, sessionID, title, body string) error {
	return f.act(Call{Op: "message", Host: host, SessionID: sessionID, Title: title, Body: body})
}

func (f *FakeBroker) act(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target := fmt.Sprintf("%s:%s", c.Host, c.SessionID)
	if err, ok := f.FailTargets[target]; ok {
		return err
	}
	f.Calls = append(f.Calls, c)
	return nil
}

// ActionCalls returns the recorded action calls so far.
func (f *FakeBroker) ActionCalls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.Calls))
	copy(out, f.Calls)
	return out
}
