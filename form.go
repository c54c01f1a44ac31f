package authflow

import (
	"sync"

	"github.com/zimako-tech/authflow/rules"
)

// Form aggregates validated field controllers into one submit-gated unit.
// FormState is derived, never stored redundantly: submittability is recomputed
// whenever any field's outcome changes.
//
// Form instances are safe for concurrent use.
type Form struct {
	mu         sync.Mutex
	order      []string
	fields     map[string]*Field
	dependents map[string][]string
	onChange   func(FormState)
	formError  string
	closed     bool
}

func newForm(specs []FieldSpec, minLookupLen int) *Form {
	f := &Form{
		fields:     make(map[string]*Field, len(specs)),
		dependents: make(map[string][]string),
	}

	for _, spec := range specs {
		f.order = append(f.order, spec.Name)
		f.fields[spec.Name] = newField(spec, minLookupLen, f.fieldChanged)
		for _, dep := range spec.DependsOn {
			f.dependents[dep] = append(f.dependents[dep], spec.Name)
		}
	}

	return f
}

// Subscribe registers fn to receive the recomputed [FormState] after every
// outcome change. At most one subscriber; fn is invoked outside form locks.
func (f *Form) Subscribe(fn func(FormState)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Field returns the controller for name, or nil when no such field exists.
func (f *Form) Field(name string) *Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

// SetValue applies a keystroke to the named field, re-validates any fields
// that depend on it, and recomputes submittability.
//
// SetValue may return an error when input validation, dependency calls, or security checks fail.
func (f *Form) SetValue(name, value string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	field, ok := f.fields[name]
	deps := f.dependents[name]
	f.mu.Unlock()

	if !ok {
		return ErrFieldUnknown
	}

	field.OnChange(value, f.valuesContext())

	// Cross-field rules see the updated value.
	if len(deps) > 0 {
		ctx := f.valuesContext()
		for _, dep := range deps {
			if d := f.Field(dep); d != nil {
				d.Revalidate(ctx)
			}
		}
	}

	return nil
}

// State returns a copy of the current per-field outcomes and the derived
// submittability flag.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

// Submittable reports whether every field's outcome is Valid and none is
// Pending.
func (f *Form) Submittable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked().Submittable
}

// FormError returns the form-level message set by a downstream submission
// failure. Field-level failures never appear here.
func (f *Form) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

func (f *Form) setFormError(message string) {
	f.mu.Lock()
	f.formError = message
	f.mu.Unlock()
}

// Submit gates on current submittability, then re-validates every field
// synchronously from its current value as a final guard against the race
// between the last keystroke and the click. On success it returns the verified
// payload; persistence belongs to the caller.
func (f *Form) Submit() (SignupPayload, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return SignupPayload{}, ErrFormClosed
	}
	submittable := f.stateLocked().Submittable
	f.mu.Unlock()

	if !submittable {
		return SignupPayload{}, ErrFormNotSubmittable
	}

	ctx := f.valuesContext()
	for _, name := range f.names() {
		field := f.Field(name)
		field.Revalidate(ctx)
		if field.Outcome().Status != StatusValid {
			return SignupPayload{}, ErrFormNotSubmittable
		}
	}

	return SignupPayload{
		FullName:      f.value(FieldFullName),
		Email:         f.value(FieldEmail),
		IDNumber:      f.value(FieldIDNumber),
		Cellphone:     f.value(FieldCellphone),
		AccountNumber: f.value(FieldAccountNumber),
		Password:      f.value(FieldPassword),
	}, nil
}

// Reset clears every draft, outcome, and the form-level error, cancelling any
// scheduled confirmations. Used after a successful signup.
func (f *Form) Reset() {
	f.mu.Lock()
	fields := f.fieldsLocked()
	f.formError = ""
	f.mu.Unlock()

	for _, field := range fields {
		field.reset()
	}

	f.fieldChanged("")
}

// Close disposes every field controller. A pending debounce timer must not
// survive Close.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	fields := f.fieldsLocked()
	f.mu.Unlock()

	for _, field := range fields {
		field.Close()
	}
}

// fieldChanged is the observer every field notifies after an outcome change.
func (f *Form) fieldChanged(string) {
	f.mu.Lock()
	fn := f.onChange
	state := f.stateLocked()
	f.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

// stateLocked derives FormState from current field outcomes. Caller holds f.mu.
func (f *Form) stateLocked() FormState {
	outcomes := make(map[string]Outcome, len(f.order))
	submittable := true
	for _, name := range f.order {
		out := f.fields[name].Outcome()
		outcomes[name] = out
		if out.Status != StatusValid {
			submittable = false
		}
	}
	return FormState{Outcomes: outcomes, Submittable: submittable}
}

// valuesContext snapshots all current field values for cross-field rules.
func (f *Form) valuesContext() rules.Context {
	ctx := make(rules.Context, len(f.order))
	for _, name := range f.names() {
		ctx[name] = f.Field(name).Value()
	}
	return ctx
}

func (f *Form) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

func (f *Form) fieldsLocked() []*Field {
	out := make([]*Field, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.fields[name])
	}
	return out
}

func (f *Form) value(name string) string {
	if field := f.Field(name); field != nil {
		return field.Value()
	}
	return ""
}
