package internal

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var noticeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Bold(true)

// List queries the broker once and applies the filter. The caller's
// identity is only fetched when state mode needs it for self-exclusion.
func List(ctx context.Context, broker Broker, filter Filter) ([]SessionRecord, error) {
	records, err := broker.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	self := ""
	if !filter.UserMode() && !filter.IncludeSelf {
		self, err = broker.WhoAmI(ctx)
		if err != nil {
			return nil, err
		}
	}

	return filter.Apply(records, self), nil
}

// Disconnect confirms and forcibly disconnects each record in order.
// A declined record is skipped silently; the first broker error aborts
// the remaining records. Completed disconnects are not rolled back.
func Disconnect(ctx context.Context, broker Broker, confirm Confirmer, audit *AuditLog, out io.Writer, records []SessionRecord) error {
	for _, r := range records {
		if !confirm.Confirm(actionPrompt("Disconnect", r)) {
			continue
		}
		if err := broker.Disconnect(ctx, r.Host, r.SessionID); err != nil {
			return err
		}
		audit.Record("disconnect", r)
		fmt.Fprintln(out, noticeStyle.Render(fmt.Sprintf("Disconnected %s (%s)", r.User, r.Target())))
	}
	return nil
}

// Logoff confirms and forcibly logs off each record in order, with the
// same skip and fail-fast behavior as Disconnect.
func Logoff(ctx context.Context, broker Broker, confirm Confirmer, audit *AuditLog, out io.Writer, records []SessionRecord) error {
	for _, r := range records {
		if !confirm.Confirm(actionPrompt("Logoff", r)) {
			continue
		}
		if err := broker.Logoff(ctx, r.Host, r.SessionID); err != nil {
			return err
		}
		audit.Record("logoff", r)
		fmt.Fprintln(out, noticeStyle.Render(fmt.Sprintf("Logged off %s (%s)", r.User, r.Target())))
	}
	return nil
}

// Task is the handle for one background logoff. Each task owns its copy
// of the target record and shares nothing with other tasks.
type Task struct {
	Record SessionRecord

	done chan struct{}
	err  error
}

// Done is closed when the task's logoff request has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's outcome. Only valid after Done is closed.
func (t *Task) Err() error {
	return t.err
}

// LogoffBackground confirms each record and schedules one independent
// logoff task per confirmed record, returning without waiting for any
// of them. A task's failure is visible only through its own handle and
// never stops the remaining tasks from being scheduled. There is no way
// to cancel a task once launched beyond ctx itself.
func LogoffBackground(ctx context.Context, broker Broker, confirm Confirmer, audit *AuditLog, out io.Writer, records []SessionRecord) []*Task {
	tasks := make([]*Task, 0, len(records))
	for _, r := range records {
		if !confirm.Confirm(actionPrompt("Logoff", r)) {
			continue
		}
		t := &Task{Record: r, done: make(chan struct{})}
		tasks = append(tasks, t)
		audit.Record("logoff-background", r)
		go func(t *Task) {
			defer close(t.done)
			t.err = broker.Logoff(ctx, t.Record.Host, t.Record.SessionID)
			if t.err != nil {
				LogWarn("background logoff of %s failed: %v", t.Record.Target(), t.err)
			}
		}(t)
		fmt.Fprintln(out, noticeStyle.Render(fmt.Sprintf("Scheduled logoff of %s (%s)", r.User, r.Target())))
	}
	return tasks
}

// SendMessage confirms and displays a message to each record's user,
// with the same skip and fail-fast behavior as Disconnect.
func SendMessage(ctx context.Context, broker Broker, confirm Confirmer, audit *AuditLog, out io.Writer, records []SessionRecord, title, body string) error {
	for _, r := range records {
		if !confirm.Confirm(actionPrompt("Send message", r)) {
			continue
		}
		if err := broker.SendMessage(ctx, r.Host, r.SessionID, title, body); err != nil {
			return err
		}
		audit.Record("message", r)
	}
	return nil
}

func actionPrompt(action string, r SessionRecord) string {
	return fmt.Sprintf("%s session %s of user %s?", action, r.Target(), r.User)
}
