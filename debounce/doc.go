// Package debounce implements the delayed, cancellable, last-value-wins lookup
// scheduler behind remote-checked authflow fields.
//
// # Design
//
// Each [Debouncer] wraps one asynchronous check function. Schedule arms a timer
// and returns a [Ticket]; arming a new ticket cancels the previous one, and a
// generation counter guarantees that only the most recent ticket's result is ever
// applied. A slow response for an old value arriving after a faster response for
// a newer value is discarded, not reordered.
//
// Cancellation is logical for in-flight checks (late results are ignored) and
// real for unfired timers (the timer is stopped). After Close no timer fires and
// no result is applied.
//
// # What this package must NOT do
//
//   - Interpret lookup results — it hands value, result, and error to the apply
//     callback untouched.
//   - Import authflow or any sibling package.
package debounce
