// Package audit defines the audit event model and sink implementations shared
// by the root dispatcher and public type aliases.
//
// # What this package must NOT do
//
//   - Import authflow or any sibling package.
//   - Block the validation hot path: sinks are invoked only from the
//     dispatcher goroutine.
package audit
