package authflow

import (
	"strings"
	"sync"
	"time"

	"github.com/zimako-tech/authflow/debounce"
	"github.com/zimako-tech/authflow/rules"
)

// User-visible messages for the remote account-number confirmation.
const (
	msgAccountNotFound = "Account number not found"
	msgCouldNotVerify  = "Could not verify account number"
	msgAccountVerified = "Account number verified"
	verifiedPrefix     = "Verified: "
)

// FieldSpec declares one form field: its rule set, whether it requires remote
// confirmation, and which sibling fields must be re-validated when it changes.
//
// FieldSpec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FieldSpec struct {
	Name        string
	Rules       []rules.Rule
	RemoteCheck bool
	// NoTrim preserves the raw value for validation and payload output.
	// Password fields set it so leading or trailing spaces stay significant.
	NoTrim bool
	// DependsOn lists the sibling fields this field's rules read; the field is
	// re-validated whenever any of them changes.
	DependsOn []string
}

// Field is the reactive unit bound to one input: it owns the current draft
// value, the structural rule outcome, and (for remote-checked fields) the
// debounced confirmation lifecycle.
//
// Field instances are created by [Form]; all methods are safe for concurrent use.
type Field struct {
	spec         FieldSpec
	minLookupLen int

	mu      sync.Mutex
	raw     string
	trimmed string
	outcome Outcome

	deb     *debounce.Debouncer
	onStale func()
	notify  func(name string)
}

// attachRemote wires the debounced confirmation pipeline for a remote-checked
// field. Called once by the owning form before the field is used.
func (f *Field) attachRemote(check debounce.CheckFunc, delay, timeout time.Duration, onSchedule debounce.ScheduleFunc, onStale func()) {
	f.onStale = onStale
	f.deb = debounce.New(check, f.applyRemote, delay, timeout)
	if onSchedule != nil {
		f.deb.OnSchedule(onSchedule)
	}
	if onStale != nil {
		f.deb.OnDrop(func(string) { onStale() })
	}
}

func newField(spec FieldSpec, minLookupLen int, notify func(name string)) *Field {
	return &Field{
		spec:         spec,
		minLookupLen: minLookupLen,
		outcome:      Outcome{Status: StatusIdle},
		notify:       notify,
	}
}

// Name returns the field's declared name.
func (f *Field) Name() string {
	return f.spec.Name
}

// Value returns the current draft value as used for validation and payload
// assembly (trimmed unless the field is declared NoTrim).
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trimmed
}

// Outcome returns the field's current externally visible outcome.
func (f *Field) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Checklist evaluates the password requirement checklist against the field's
// current value. Meaningful for the password field only.
func (f *Field) Checklist() []rules.CheckItem {
	return rules.PasswordChecklist(f.Value())
}

// OnChange applies a keystroke: it updates the draft, recomputes the
// structural outcome synchronously, and for remote-checked fields schedules a
// debounced confirmation. ctx carries sibling values for cross-field rules.
func (f *Field) OnChange(value string, ctx rules.Context) {
	trimmed := value
	if !f.spec.NoTrim {
		trimmed = strings.TrimSpace(value)
	}

	f.mu.Lock()
	f.raw = value
	f.trimmed = trimmed
	out, schedule := f.evaluateLocked(trimmed, ctx)
	f.outcome = out
	f.mu.Unlock()

	if f.deb != nil {
		if schedule {
			f.deb.Schedule(trimmed)
		} else {
			// The current value is no longer eligible for a lookup; any armed
			// timer or in-flight result must not resurface.
			f.deb.Cancel()
		}
	}

	if f.notify != nil {
		f.notify(f.spec.Name)
	}
}

// Revalidate re-runs the structural rules against the current value without
// touching a remote confirmation that is still fresh. Used when a sibling this
// field depends on changes, and as the submit-time guard.
func (f *Field) Revalidate(ctx rules.Context) {
	f.mu.Lock()
	out, _ := f.evaluateLocked(f.trimmed, ctx)

	// Keep a Pending or remote-produced outcome when structure still passes
	// and it was computed for the value the field still holds.
	if f.spec.RemoteCheck && out.Status == StatusPending && f.outcome.ForValue == f.trimmed {
		out = f.outcome
	}
	f.outcome = out
	f.mu.Unlock()

	if f.notify != nil {
		f.notify(f.spec.Name)
	}
}

// evaluateLocked computes the structural outcome for value. The second return
// reports whether a remote confirmation should be scheduled. Caller holds f.mu.
func (f *Field) evaluateLocked(value string, ctx rules.Context) (Outcome, bool) {
	// Empty input is neutral, never an error.
	if value == "" {
		return Outcome{Status: StatusIdle, ForValue: value}, false
	}

	if ok, message := rules.Evaluate(f.spec.Rules, value, ctx); !ok {
		return Outcome{Status: StatusInvalid, Message: message, ForValue: value}, false
	}

	if !f.spec.RemoteCheck {
		return Outcome{Status: StatusValid, ForValue: value}, false
	}

	// Below the lookup minimum the field stays Idle so users mid-type never
	// see a flashing error.
	if len(value) < f.minLookupLen {
		return Outcome{Status: StatusIdle, ForValue: value}, false
	}

	// Structure passed but the confirmation is outstanding: the field must
	// not report Valid yet.
	return Outcome{Status: StatusPending, ForValue: value}, true
}

// applyRemote installs the result of a remote confirmation. The debouncer has
// already discarded superseded tickets; this is the second half of the
// stale-response guard, comparing the originating value against the current
// draft before anything becomes visible.
func (f *Field) applyRemote(value string, res debounce.Result, err error) {
	f.mu.Lock()
	if value != f.trimmed {
		f.mu.Unlock()
		if f.onStale != nil {
			f.onStale()
		}
		return
	}

	var out Outcome
	switch {
	case err != nil:
		out = Outcome{Status: StatusInvalid, Message: msgCouldNotVerify, ForValue: value}
	case !res.Found:
		out = Outcome{Status: StatusInvalid, Message: msgAccountNotFound, ForValue: value}
	case res.DisplayName != "":
		out = Outcome{Status: StatusValid, Message: verifiedPrefix + res.DisplayName, ForValue: value}
	default:
		out = Outcome{Status: StatusValid, Message: msgAccountVerified, ForValue: value}
	}
	f.outcome = out
	f.mu.Unlock()

	if f.notify != nil {
		f.notify(f.spec.Name)
	}
}

// reset clears the draft and outcome and cancels any scheduled confirmation.
func (f *Field) reset() {
	if f.deb != nil {
		f.deb.Cancel()
	}

	f.mu.Lock()
	f.raw = ""
	f.trimmed = ""
	f.outcome = Outcome{Status: StatusIdle}
	f.mu.Unlock()
}

// Close releases the field's debouncer. A controller that is disposed without
// Close can leak an armed timer; callers must not skip it.
func (f *Field) Close() {
	if f.deb != nil {
		f.deb.Close()
	}
}
