package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Broker is the management API this tool drives. Session enumeration,
// disconnect, logoff and messaging all happen on the broker side; this
// tool only filters and confirms.
type Broker interface {
	// Sessions enumerates every session across the managed hosts.
	Sessions(ctx context.Context) ([]SessionRecord, error)
	// Disconnect forcibly disconnects one session.
	Disconnect(ctx context.Context, host, sessionID string) error
	// Logoff forcibly logs off one session, discarding unsaved state.
	Logoff(ctx context.Context, host, sessionID string) error
	// SendMessage displays an interactive message to a session's user.
	SendMessage(ctx context.Context, host, sessionID, title, body string) error
	// WhoAmI returns the caller's identity as the broker sees it.
	WhoAmI(ctx context.Context) (string, error)
}

// HTTPBroker talks to an RDS management broker over REST.
type HTTPBroker struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPBroker creates a broker client targeting the given base URL
// (e.g. "http://rds-broker.internal:8440"). A zero timeout falls back
// to 30 seconds.
func NewHTTPBroker(baseURL, token string, timeout time.Duration) *HTTPBroker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPBroker{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Sessions fetches /api/v1/sessions.
func (b *HTTPBroker) Sessions(ctx context.Context) ([]SessionRecord, error) {
	data, err := b.get(ctx, "/api/v1/sessions")
	if err != nil {
		return nil, &BrokerError{Op: "sessions", Err: err}
	}
	records, err := DecodeSessions(data)
	if err != nil {
		return nil, &BrokerError{Op: "sessions", Err: err}
	}
	return records, nil
}

// Disconnect posts a forced disconnect for one session.
func (b *HTTPBroker) Disconnect(ctx context.Context, host, sessionID string) error {
	if err := b.post(ctx, sessionPath(host, sessionID)+"/disconnect", nil); err != nil {
		return &BrokerError{Op: "disconnect", Host: host, SessionID: sessionID, Err: err}
	}
	return nil
}

// Logoff posts a forced logoff for one session.
func (b *HTTPBroker) Logoff(ctx context.Context, host, sessionID string) error {
	if err := b.post(ctx, sessionPath(host, sessionID)+"/logoff", nil); err != nil {
		return &BrokerError{Op: "logoff", Host: host, SessionID: sessionID, Err: err}
	}
	return nil
}

// SendMessage posts an interactive message to one session.
func (b *HTTPBroker) SendMessage(ctx context.Context, host, sessionID, title, body string) error {
	payload := map[string]string{"title": title, "body": body}
	if err := b.post(ctx, sessionPath(host, sessionID)+"/message", payload); err != nil {
		return &BrokerError{Op: "message", Host: host, SessionID: sessionID, Err: err}
	}
	return nil
}

// WhoAmI fetches /api/v1/whoami.
func (b *HTTPBroker) WhoAmI(ctx context.Context) (string, error) {
	data, err := b.get(ctx, "/api/v1/whoami")
	if err != nil {
		return "", &BrokerError{Op: "whoami", Err: err}
	}
	var out struct {
		UserName string `json:"userName"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &BrokerError{Op: "whoami", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return out.UserName, nil
}

func sessionPath(host, sessionID string) string {
	return "/api/v1/hosts/" + url.PathEscape(host) + "/sessions/" + url.PathEscape(sessionID)
}

func (b *HTTPBroker) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return b.do(req)
}

func (b *HTTPBroker) post(ctx context.Context, path string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	_, err = b.do(req)
	return err
}

func (b *HTTPBroker) do(req *http.Request) ([]byte, error) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = resp.Status
		}
		return nil, errors.New(msg)
	}
	return data, nil
}
