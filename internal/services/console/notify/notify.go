// Package notify delivers transient error notifications to the user.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// Notifier shows a transient error message.
type Notifier interface {
	Error(message string)
}

// Writer prints notifications as lines on a terminal.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	colored bool
	style   color.Style
}

// NewWriter returns a Writer; colored enables ANSI styling.
func NewWriter(out io.Writer, colored bool) *Writer {
	return &Writer{
		out:     out,
		colored: colored,
		style:   color.New(color.FgRed, color.OpBold),
	}
}

// Error prints "✖ message".
func (w *Writer) Error(message string) {
	if w == nil || w.out == nil {
		return
	}
	line := "✖ " + strings.TrimSpace(message)
	if w.colored {
		line = w.style.Render(line)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.out, line)
}

// Flash collects notifications raised while one page is rendered.
type Flash struct {
	mu       sync.Mutex
	messages []string
}

// Error records message.
func (f *Flash) Error(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

// Messages returns the recorded messages in order.
func (f *Flash) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	copy(out, f.messages)
	return out
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Error(string) {}
