// Package alerts writes audit notices to the terminal or as structured
// output.
package alerts

import (
	"fmt"
	"io"

	"github.com/agentstation/nightaudit/internal/cmd/emoji"
	"github.com/agentstation/nightaudit/pkg/audit"
)

// Alert is one notice ready for output.
type Alert struct {
	Level   audit.Level
	Message string
	Source  string
}

// FromNotice converts an audit notice.
func FromNotice(n audit.Notice) *Alert {
	return &Alert{Level: n.Level, Message: n.Text, Source: n.Source}
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	return fmt.Sprintf("%s %s", Icon(a.Level), a.Message)
}

// Icon returns the symbol for a notice level.
func Icon(l audit.Level) string {
	switch l {
	case audit.LevelError:
		return emoji.Error
	case audit.LevelWarning:
		return emoji.Warning
	case audit.LevelSuccess:
		return emoji.Success
	default:
		return emoji.Info
	}
}

// Color returns ANSI color codes for terminal output.
func Color(l audit.Level) string {
	switch l {
	case audit.LevelError:
		return "\033[31m" // Red
	case audit.LevelWarning:
		return "\033[33m" // Yellow
	case audit.LevelSuccess:
		return "\033[32m" // Green
	default:
		return "\033[36m" // Cyan
	}
}

// ResetColor returns the ANSI reset code.
func ResetColor() string {
	return "\033[0m"
}

// Writer handles alert output to different formats and destinations.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// Hook adapts w to an audit notice callback. Write errors are dropped;
// notices are advisory.
func Hook(w Writer) func(audit.Notice) {
	return func(n audit.Notice) {
		_ = w.WriteAlert(FromNotice(n))
	}
}

// NewWriterTo creates a Writer that writes plain lines to an io.Writer.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}
