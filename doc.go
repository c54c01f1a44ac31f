// Package authflow provides a race-safe, debounced field-validation engine for
// self-service signup and login flows: structural rule checking on every
// keystroke, debounced remote confirmation with a last-value-wins guarantee,
// submit-gated form aggregation, and a login / signup / forgot-password view
// state machine.
//
// The package is designed for event-driven callers: Flow, Form, and Field
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build].
//
// # Architecture boundaries
//
// authflow is the public surface. It exposes [Flow], [Form], [Field],
// [Builder], [Config], and value types (Outcome, SignupPayload, FormState).
// Reusable mechanics live in the rules and debounce packages; bundled
// collaborator implementations live in recordstore and credentials; audit
// event plumbing lives under internal/ and is never exported directly.
//
// # What this package must NOT do
//
//   - Render anything, or depend on any UI technology.
//   - Reach the record store except through the injected [RecordLookup].
//   - Emit a [SignupPayload] while any field outcome is not Valid.
//
// # Correctness contract
//
// The stale-response guard is the load-bearing invariant: an outcome is applied
// to a field only if the value that produced it is still the field's current
// value. A pending debounce timer never fires after a newer change or after
// disposal.
package authflow
