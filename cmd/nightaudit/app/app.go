// Package app provides the application context and dependency management
// for the nightaudit CLI. It centralizes configuration, logging, and the
// construction of auditors for commands.
package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/nightaudit"
	"github.com/agentstation/nightaudit/internal/appcontext"
	"github.com/agentstation/nightaudit/internal/cmd/alerts"
	"github.com/agentstation/nightaudit/internal/cmd/output"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/sources"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// App represents the nightaudit application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// notices receives progress notices; stderr unless replaced.
	notices io.Writer
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		notices: os.Stderr,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Rules returns the validator rules from configuration.
func (a *App) Rules() validate.Rules {
	return a.config.Rules
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoticeWriter returns where progress notices are written.
func (a *App) NoticeWriter() io.Writer {
	return a.notices
}

// Auditor creates an auditor from the configuration. Every command gets
// its own; one run audits one business day.
func (a *App) Auditor() (nightaudit.Auditor, error) {
	registry := sources.NewRegistry(sources.WithPseudoRoomFloor(a.config.PseudoRoomFloor))
	auditor, err := nightaudit.New(
		nightaudit.WithRules(a.config.Rules),
		nightaudit.WithLogger(a.logger),
		nightaudit.WithRegistry(registry),
	)
	if err != nil {
		return nil, errors.NewConfigError("auditor", "cannot create", err)
	}

	if !a.config.Quiet {
		format, _ := output.ParseFormat(a.config.Format)
		writer := alerts.NewFormatWriter(a.notices, format)
		if a.config.NoColor {
			writer = writer.WithConfig(alerts.WriterConfig{})
		}
		auditor.OnNotice(alerts.Hook(writer))
	}
	return auditor, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithNoticeWriter redirects progress notices.
func WithNoticeWriter(w io.Writer) Option {
	return func(a *App) error {
		a.notices = w
		return nil
	}
}
