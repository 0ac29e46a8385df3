package alerts

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/agentstation/nightaudit/internal/cmd/output"
)

// FormatWriter writes alerts in different output formats.
type FormatWriter struct {
	writer io.Writer
	format output.Format
	config WriterConfig
}

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowSource bool
	UseColor   bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		writer: w,
		format: format,
		config: WriterConfig{UseColor: isTerminal(w)},
	}
}

// WithConfig sets the writer configuration.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		return fw.writeJSON(alert)
	case output.FormatYAML:
		return fw.writeYAML(alert)
	default:
		return fw.writePlain(alert)
	}
}

type alertData struct {
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
}

func toAlertData(alert *Alert) alertData {
	return alertData{Level: string(alert.Level), Message: alert.Message, Source: alert.Source}
}

// writeJSON emits one JSON object per line so a stream of notices stays
// parseable.
func (fw *FormatWriter) writeJSON(alert *Alert) error {
	return json.NewEncoder(fw.writer).Encode(toAlertData(alert))
}

func (fw *FormatWriter) writeYAML(alert *Alert) error {
	encoder := yaml.NewEncoder(fw.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode([]alertData{toAlertData(alert)}); err != nil {
		return err
	}
	return encoder.Close()
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	message := alert.String()
	if fw.config.ShowSource && alert.Source != "" {
		message = fmt.Sprintf("%s [%s]", message, alert.Source)
	}
	if fw.config.UseColor {
		message = Color(alert.Level) + message + ResetColor()
	}
	_, err := fmt.Fprintln(fw.writer, message)
	return err
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
