package authflow

import (
	"sync"
)

// Flow is the top-level authentication view state machine. It owns the signup
// [Form], the simpler login credential path, and the forgot-password request
// path, and switches between the three views on explicit user actions only.
//
// Flow instances are intended to be configured through [Builder.Build] and then treated as immutable unless documented otherwise.
type Flow struct {
	config    Config
	lookup    RecordLookup
	checker   CredentialChecker
	registrar RegistrationHandler
	resetter  ResetSender
	audit     *auditDispatcher
	metrics   *Metrics

	mu   sync.Mutex
	view View
	form *Form
}

// View returns the currently active view.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// ShowLogin switches to the login view.
func (f *Flow) ShowLogin() { f.switchView(ViewLogin) }

// ShowSignup switches to the signup view. The signup draft from a previous
// visit is preserved; only a successful submission clears it.
func (f *Flow) ShowSignup() { f.switchView(ViewSignup) }

// ShowForgotPassword switches to the forgot-password view without touching
// the other views' data.
func (f *Flow) ShowForgotPassword() { f.switchView(ViewForgotPassword) }

func (f *Flow) switchView(v View) {
	f.mu.Lock()
	if f.view == v {
		f.mu.Unlock()
		return
	}
	from := f.view
	f.view = v
	f.mu.Unlock()

	f.metricInc(MetricViewChanged)
	f.emitAudit(nil, auditEventViewChanged, true, "", nil, map[string]string{
		"from": from.String(),
		"to":   v.String(),
	})
}

// SignupForm returns the flow's signup form orchestrator.
func (f *Flow) SignupForm() *Form {
	return f.form
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (f *Flow) MetricsSnapshot() MetricsSnapshot {
	if f == nil || f.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return f.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under buffer
// pressure.
func (f *Flow) AuditDropped() uint64 {
	if f == nil || f.audit == nil {
		return 0
	}
	return f.audit.Dropped()
}

// Close disposes the signup form (cancelling any scheduled confirmations) and
// drains the audit dispatcher. The Flow must not be used afterwards.
func (f *Flow) Close() {
	if f == nil {
		return
	}
	if f.form != nil {
		f.form.Close()
	}
	if f.audit != nil {
		f.audit.Close()
	}
}

func (f *Flow) metricInc(id MetricID) {
	if f == nil || f.metrics == nil {
		return
	}
	f.metrics.Inc(id)
}
