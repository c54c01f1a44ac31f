// Package rules implements the synchronous field-rule engine used by authflow
// field controllers.
//
// # Design
//
// Every rule is a total function: predicates never perform I/O, never panic, and
// are cheap enough to run on every keystroke. Rule sets are built once at startup
// and shared read-only across all field controller instances.
//
// # Architecture boundaries
//
// This package owns structural validation only. Remote confirmation (account-number
// existence) is the debounce package's concern, composed by the root package.
//
// # What this package must NOT do
//
//   - Perform I/O or hold mutable state between calls.
//   - Import authflow or any sibling package.
package rules
