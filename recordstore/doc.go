// Package recordstore provides implementations of the authflow RecordLookup
// interface: a Redis-backed store for production wiring and an in-memory
// fixture for tests and demos.
//
// A missing account is a normal Found=false result; only transport failures
// surface as errors, wrapped in [ErrUnavailable].
package recordstore
