package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirmer gates each administrative action on one session. A false
// return means the record is skipped with no side effect.
type Confirmer interface {
	Confirm(description string) bool
}

var promptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214")).
	Bold(true)

// TerminalConfirmer prompts on out and reads a y/yes answer from in.
// Anything else, including read errors, counts as a decline.
type TerminalConfirmer struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalConfirmer creates a confirmer reading answers from in.
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{out: out, reader: bufio.NewReader(in)}
}

// Confirm prompts once and blocks for an answer.
func (c *TerminalConfirmer) Confirm(description string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", promptStyle.Render(description))
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// AutoConfirmer answers every confirmation the same way. Used by the
// --yes flag and by tests.
type AutoConfirmer struct {
	Answer bool
}

func (c AutoConfirmer) Confirm(string) bool {
	return c.Answer
}
