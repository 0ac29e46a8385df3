// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/nightaudit"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// Interface defines what commands need from the application. The App in
// cmd/nightaudit/app implements it; tests use Mock.
type Interface interface {
	// Auditor returns a new auditor configured from the application
	// settings. Notices are written to the notice writer as they are posted.
	Auditor() (nightaudit.Auditor, error)

	// Rules returns the validator rules from configuration.
	Rules() validate.Rules

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// NoticeWriter returns where progress notices go, normally stderr.
	NoticeWriter() io.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
