package audit

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/reconcile"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/roomtable"
	"github.com/agentstation/nightaudit/pkg/sources"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// tableInputs are the sources the room table is built from.
var tableInputs = []sources.ID{sources.InhouseID, sources.RoutingID, sources.CashringID}

// Orchestrator recomputes derived state when a source changes. It holds
// configuration only; all data lives in the State values it returns.
type Orchestrator struct {
	rules  validate.Rules
	logger *zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRules sets the validator rules.
func WithRules(rules validate.Rules) Option {
	return func(o *Orchestrator) {
		o.rules = rules
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates an orchestrator with default rules.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		rules:  validate.DefaultRules(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.rules = o.rules.Normalized()
	return o
}

// Rules returns the rules in effect.
func (o *Orchestrator) Rules() validate.Rules {
	return o.rules
}

// Apply replaces one source's dataset and re-runs only the checks that read
// it. The room table is rebuilt when one of its inputs changed.
func (o *Orchestrator) Apply(state *State, ds sources.Dataset) *State {
	if state == nil {
		state = NewState()
	}
	id := ds.Source()
	next := state.clone()
	next.datasets[id] = ds

	ctx := logging.WithSource(o.logContext(next), id.String())
	logging.FromContext(ctx).Info().Int("records", ds.Len()).Msg("Dataset replaced")
	next.post(LevelInfo, id.String(), fmt.Sprintf("%s loaded: %d records", id, ds.Len()))

	if slices.Contains(tableInputs, id) {
		o.rebuildTable(next)
	}
	for _, def := range definitions {
		if !def.uses(id) {
			continue
		}
		if !def.ready(next) {
			next.checks[def.id] = o.status(def, StatusPending, 0, "")
			continue
		}
		o.runCheck(ctx, next, def)
	}
	return next
}

// Fail clears a source after it could not be loaded. Checks reading it
// switch to error; every other source and check is left as it was.
func (o *Orchestrator) Fail(state *State, id sources.ID, err error) *State {
	if state == nil {
		state = NewState()
	}
	next := state.clone()
	delete(next.datasets, id)

	ctx := logging.WithSource(o.logContext(next), id.String())
	logging.FromContext(ctx).Error().Err(err).Msg("Source failed to load")
	next.post(LevelError, id.String(), failureText(id, err))

	if slices.Contains(tableInputs, id) {
		o.rebuildTable(next)
	}
	for _, def := range definitions {
		if !def.uses(id) {
			continue
		}
		delete(next.findings, def.id)
		if def.id == CheckKBSOpera {
			next.discrepancies = reconcile.Discrepancies{}
		}
		next.checks[def.id] = o.status(def, StatusError, 0, err.Error())
	}
	return next
}

// Rerun recomputes one check from the loaded data, e.g. after a rules change.
func (o *Orchestrator) Rerun(state *State, id CheckID) (*State, error) {
	def, ok := lookup(id)
	if !ok {
		return state, errors.NewNotFoundError("check", id.String())
	}
	if !def.ready(state) {
		return state, errors.NewValidationError("check", id, "inputs not loaded: "+strings.Join(def.inputNames(), ", "))
	}
	next := state.clone()
	if id == CheckCaCl {
		o.rebuildTable(next)
	}
	o.runCheck(o.logContext(next), next, def)
	return next, nil
}

// logContext carries the orchestrator logger and the state version.
func (o *Orchestrator) logContext(s *State) context.Context {
	return logging.WithField(logging.WithLogger(context.Background(), o.logger), "version", s.version)
}

func (o *Orchestrator) runCheck(ctx context.Context, s *State, def definition) {
	ctx = logging.WithCheck(ctx, def.id.String())
	out := def.run(s, o.rules)
	s.findings[def.id] = out.findings
	if def.id == CheckKBSOpera && out.discrepancies != nil {
		s.discrepancies = *out.discrepancies
	}
	s.checks[def.id] = o.status(def, StatusCompleted, out.flagged, "")

	for _, f := range out.findings {
		logging.FromContext(logging.WithRoom(ctx, f.RoomNo)).Trace().
			Str("type", f.Type.String()).Str("message", f.Message).Msg("Finding")
	}
	logging.FromContext(ctx).Debug().Int("flagged", out.flagged).Msg("Check completed")
	if out.flagged > 0 {
		s.post(LevelWarning, def.id.String(), out.summary)
	} else {
		s.post(LevelSuccess, def.id.String(), out.clean)
	}
}

func (o *Orchestrator) rebuildTable(s *State) {
	inhouse := s.Inhouse()
	if inhouse == nil {
		s.table = nil
		return
	}
	s.table = roomtable.Assemble(inhouse, s.Routing(), s.Cashring(), o.rules)
}

func (o *Orchestrator) status(def definition, st Status, flagged int, msg string) Check {
	return Check{
		ID:      def.id,
		Title:   def.title,
		Status:  st,
		Flagged: flagged,
		Inputs:  def.inputNames(),
		Error:   msg,
	}
}

// failureText is the single notice posted for a failed source.
func failureText(id sources.ID, err error) string {
	if errors.IsShapeError(err) {
		return fmt.Sprintf("%s file is not a valid %s export, its data was cleared: %v", id, id, err)
	}
	return fmt.Sprintf("%s file could not be read, its data was cleared: %v", id, err)
}

// CountByType tallies findings per type.
func CountByType(findings []records.Finding) map[records.FindingType]int {
	out := make(map[records.FindingType]int)
	for _, f := range findings {
		out[f.Type]++
	}
	return out
}
