package nightaudit

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/sources"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// Option is a function that configures an Auditor
type Option func(*config) error

type config struct {
	rules    validate.Rules
	logger   *zerolog.Logger
	registry *sources.Registry
}

func defaultConfig() *config {
	return &config{
		rules:    validate.DefaultRules(),
		registry: sources.NewRegistry(),
	}
}

// WithRules configures the validator rules. Zero fields fall back to the
// defaults.
func WithRules(rules validate.Rules) Option {
	return func(c *config) error {
		if rules.RateTolerance < 0 {
			return errors.NewValidationError("rate_tolerance", rules.RateTolerance, "must not be negative")
		}
		c.rules = rules
		return nil
	}
}

// WithLogger configures the logger used by the orchestrator
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithRegistry configures the source registry, e.g. to change the pseudo
// room floor or to register a custom source.
func WithRegistry(registry *sources.Registry) Option {
	return func(c *config) error {
		if registry == nil {
			return errors.NewValidationError("registry", nil, "must not be nil")
		}
		c.registry = registry
		return nil
	}
}
