package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/nightaudit"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// Mock provides a mock implementation of Interface for testing.
// If a function field is nil, the method returns a default value.
type Mock struct {
	AuditorFunc      func() (nightaudit.Auditor, error)
	RulesFunc        func() validate.Rules
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	Notices          io.Writer
}

// Auditor returns an auditor from the mock function or a default one.
func (m *Mock) Auditor() (nightaudit.Auditor, error) {
	if m.AuditorFunc != nil {
		return m.AuditorFunc()
	}
	return nightaudit.New(nightaudit.WithLogger(m.Logger()))
}

// Rules returns rules from the mock function or the defaults.
func (m *Mock) Rules() validate.Rules {
	if m.RulesFunc != nil {
		return m.RulesFunc()
	}
	return validate.DefaultRules()
}

// Logger returns a logger from the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format from the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// NoticeWriter returns Notices or io.Discard.
func (m *Mock) NoticeWriter() io.Writer {
	if m.Notices != nil {
		return m.Notices
	}
	return io.Discard
}

// Version returns "test".
func (m *Mock) Version() string { return "test" }

// Commit returns "test".
func (m *Mock) Commit() string { return "test" }

// Date returns "test".
func (m *Mock) Date() string { return "test" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

var _ Interface = (*Mock)(nil)
