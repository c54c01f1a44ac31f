package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDelay is the quiet period before a scheduled check fires.
	DefaultDelay = 500 * time.Millisecond
	// DefaultTimeout bounds a single check invocation so a field can never be
	// left pending forever.
	DefaultTimeout = 5 * time.Second
)

// Result is the outcome of one check invocation.
type Result struct {
	Found       bool
	DisplayName string
}

// CheckFunc performs the remote lookup for value. It must respect ctx and
// return found=false rather than an error when no match exists.
type CheckFunc func(ctx context.Context, value string) (Result, error)

// ApplyFunc receives the result of the most recent ticket. It is never called
// for superseded tickets or after Close.
type ApplyFunc func(value string, res Result, err error)

// DropFunc observes discarded stale results. Optional; used for metrics.
type DropFunc func(value string)

// ScheduleFunc observes each accepted Schedule call. coalesced reports whether
// the new ticket superseded a live one. Optional; used for metrics. fn runs
// under the debouncer's lock and must not call back into the Debouncer.
type ScheduleFunc func(value string, coalesced bool)

// Ticket represents one scheduled-or-in-flight check. At most one ticket is
// live per Debouncer; scheduling a new one supersedes the previous ticket.
//
// Ticket instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Ticket struct {
	ID    string
	Value string

	gen   uint64
	timer *time.Timer
}

// Debouncer defines a public type used by authflow APIs.
//
// Debouncer instances are safe for concurrent use after construction.
type Debouncer struct {
	check      CheckFunc
	apply      ApplyFunc
	onDrop     DropFunc
	onSchedule ScheduleFunc
	delay      time.Duration
	timeout    time.Duration

	mu     sync.Mutex
	gen    uint64
	live   *Ticket
	closed bool
}

// New describes the new operation and its observable behavior.
//
// New returns a Debouncer that invokes check after delay and hands results to
// apply. Zero durations fall back to the package defaults.
func New(check CheckFunc, apply ApplyFunc, delay, timeout time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Debouncer{
		check:   check,
		apply:   apply,
		delay:   delay,
		timeout: timeout,
	}
}

// OnDrop registers fn to be called whenever a stale result is discarded.
// Must be set before the first Schedule call.
func (d *Debouncer) OnDrop(fn DropFunc) {
	d.onDrop = fn
}

// OnSchedule registers fn to observe accepted Schedule calls.
// Must be set before the first Schedule call.
func (d *Debouncer) OnSchedule(fn ScheduleFunc) {
	d.onSchedule = fn
}

// Schedule arms a check for value after the configured delay, superseding any
// previously scheduled or in-flight ticket. It returns the new live ticket, or
// nil after Close.
//
// Schedule does not mutate shared global state and can be used concurrently.
func (d *Debouncer) Schedule(value string) *Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	coalesced := d.live != nil
	d.retireLocked()
	d.gen++

	if d.onSchedule != nil {
		d.onSchedule(value, coalesced)
	}

	t := &Ticket{
		ID:    uuid.NewString(),
		Value: value,
		gen:   d.gen,
	}
	t.timer = time.AfterFunc(d.delay, func() { d.fire(t) })
	d.live = t

	return t
}

// Cancel stops any pending timer and marks any in-flight check's eventual
// result stale. It is idempotent.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.retireLocked()
	d.gen++
}

// Close cancels the live ticket and prevents any further scheduling. No timer
// fires and no result is applied after Close returns.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.retireLocked()
	d.gen++
	d.closed = true
}

// retireLocked stops the live ticket's timer. Caller holds d.mu.
func (d *Debouncer) retireLocked() {
	if d.live != nil {
		d.live.timer.Stop()
		d.live = nil
	}
}

func (d *Debouncer) fire(t *Ticket) {
	d.mu.Lock()
	if d.closed || t.gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	res, err := d.check(ctx, t.Value)

	d.mu.Lock()
	stale := d.closed || t.gen != d.gen
	if !stale && d.live == t {
		d.live = nil
	}
	d.mu.Unlock()

	if stale {
		if d.onDrop != nil {
			d.onDrop(t.Value)
		}
		return
	}

	d.apply(t.Value, res, err)
}
