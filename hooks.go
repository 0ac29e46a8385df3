package nightaudit

import (
	"sync"

	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Hook function types for audit events
type (
	// NoticeHook is called once for every notice posted by an update
	NoticeHook func(notice audit.Notice)

	// FindingsHook is called when a check's status or findings changed
	FindingsHook func(check audit.Check, findings []records.Finding)
)

// hooks manages event callbacks for state changes
type hooks struct {
	mu         sync.RWMutex
	onNotice   []NoticeHook
	onFindings []FindingsHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnNotice registers a callback for new notices
func (h *hooks) OnNotice(fn NoticeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onNotice = append(h.onNotice, fn)
}

// OnFindings registers a callback for changed findings
func (h *hooks) OnFindings(fn FindingsHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFindings = append(h.onFindings, fn)
}

// triggerStateUpdate compares two snapshots and calls the hooks for what
// the update added or changed.
func (h *hooks) triggerStateUpdate(prev, next *audit.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	notices := next.Notices()
	for _, n := range notices[len(prev.Notices()):] {
		for _, hook := range h.onNotice {
			hook(n)
		}
	}

	for _, check := range next.Checks() {
		old, _ := prev.Check(check.ID)
		findings := next.Findings(check.ID)
		if old.Status == check.Status && old.Flagged == check.Flagged &&
			records.EqualFindings(prev.Findings(check.ID), findings) {
			continue
		}
		for _, hook := range h.onFindings {
			hook(check, findings)
		}
	}
}

// OnNotice registers a callback for new notices
func (a *auditor) OnNotice(fn NoticeHook) {
	a.hooks.OnNotice(fn)
}

// OnFindings registers a callback for checks whose findings changed
func (a *auditor) OnFindings(fn FindingsHook) {
	a.hooks.OnFindings(fn)
}
