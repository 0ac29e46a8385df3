// Package nightaudit provides the main entry point for the hotel night
// audit engine. It loads the property-management exports of one business
// day, reconciles them against the government registration feed and the
// police report, and keeps the resulting audit state.
//
// The engine wraps the audit orchestrator with:
//   - source lookup by identifier (inhouse, kbs, police, routing, cashring)
//   - isolation of failed loads, so a malformed export only clears itself
//   - snapshot reads that never observe a half-applied update
//   - hooks for notices and changed findings
//
// Example usage:
//
//	a, err := nightaudit.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a.OnNotice(func(n audit.Notice) {
//	    fmt.Println(n.Level, n.Text)
//	})
//
//	if err := a.LoadFile(ctx, sources.InhouseID, "inhouse.xml"); err != nil {
//	    log.Print(err)
//	}
//	if err := a.LoadFile(ctx, sources.KBSID, "kbs.xlsx"); err != nil {
//	    log.Print(err)
//	}
//
//	for _, row := range a.State().Table() {
//	    fmt.Println(row.RoomNo, row.DisplayName)
//	}
package nightaudit

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// Auditor holds the audit state of one business day.
type Auditor interface {
	// Load parses r as the export of source id and applies it. A malformed
	// export clears that source, marks its checks as failed and is returned.
	Load(ctx context.Context, id sources.ID, r io.Reader) error

	// LoadFile opens path and loads it as the export of source id.
	LoadFile(ctx context.Context, id sources.ID, path string) error

	// LoadFiles loads several exports, parsing them concurrently.
	LoadFiles(ctx context.Context, files map[sources.ID]string) error

	// State returns the latest snapshot.
	State() *audit.State

	// OnNotice registers a callback for new notices. Hooks run before the
	// update returns and must not load data themselves.
	OnNotice(NoticeHook)

	// OnFindings registers a callback for checks whose findings changed
	OnFindings(FindingsHook)
}

// auditor is the internal implementation of the Auditor interface
type auditor struct {
	mu    sync.RWMutex
	state *audit.State

	// writeMu serializes updates; readers only take mu.
	writeMu sync.Mutex

	config       *config
	orchestrator *audit.Orchestrator
	hooks        *hooks
}

// New creates a new Auditor with the given options
func New(opts ...Option) (Auditor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	orchOpts := []audit.Option{audit.WithRules(cfg.rules)}
	if cfg.logger != nil {
		orchOpts = append(orchOpts, audit.WithLogger(cfg.logger))
	}

	return &auditor{
		state:        audit.NewState(),
		config:       cfg,
		orchestrator: audit.NewOrchestrator(orchOpts...),
		hooks:        newHooks(),
	}, nil
}

// State returns the latest snapshot
func (a *auditor) State() *audit.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Load parses and applies one export
func (a *auditor) Load(ctx context.Context, id sources.ID, r io.Reader) error {
	ds, err := a.parse(ctx, id, r)
	if errors.IsUnsupportedSource(err) || ctx.Err() != nil {
		return err
	}
	a.commit(id, ds, err)
	return err
}

// LoadFile opens and loads one export file
func (a *auditor) LoadFile(ctx context.Context, id sources.ID, path string) error {
	ctx = logging.WithFile(ctx, path)

	f, err := openExport(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := a.Load(ctx, id, f); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// parse decodes r with the registered source. No state is touched.
func (a *auditor) parse(ctx context.Context, id sources.ID, r io.Reader) (sources.Dataset, error) {
	src, err := a.config.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(logging.WithSource(ctx, id.String()))
	logger.Debug().Msg("Parsing export")

	ds, err := src.Parse(ctx, r)
	if err != nil {
		logger.Warn().Err(err).Msg("Export rejected")
		return nil, err
	}
	return ds, nil
}

// commit applies a parse outcome and swaps the state pointer. A nil
// parseErr applies ds; anything else fails the source.
func (a *auditor) commit(id sources.ID, ds sources.Dataset, parseErr error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	prev := a.State()
	var next *audit.State
	if parseErr != nil {
		next = a.orchestrator.Fail(prev, id, parseErr)
	} else {
		next = a.orchestrator.Apply(prev, ds)
	}

	a.mu.Lock()
	a.state = next
	a.mu.Unlock()

	a.hooks.triggerStateUpdate(prev, next)
}
