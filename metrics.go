package authflow

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by authflow APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLookupScheduled is an exported constant or variable used by the validation engine.
	MetricLookupScheduled MetricID = iota
	// MetricLookupCoalesced is an exported constant or variable used by the validation engine.
	MetricLookupCoalesced
	// MetricLookupFired is an exported constant or variable used by the validation engine.
	MetricLookupFired
	// MetricLookupHit is an exported constant or variable used by the validation engine.
	MetricLookupHit
	// MetricLookupMiss is an exported constant or variable used by the validation engine.
	MetricLookupMiss
	// MetricLookupError is an exported constant or variable used by the validation engine.
	MetricLookupError
	// MetricStaleResultDropped is an exported constant or variable used by the validation engine.
	MetricStaleResultDropped
	// MetricFormSubmitAccepted is an exported constant or variable used by the validation engine.
	MetricFormSubmitAccepted
	// MetricFormSubmitRejected is an exported constant or variable used by the validation engine.
	MetricFormSubmitRejected
	// MetricSignupCompleted is an exported constant or variable used by the validation engine.
	MetricSignupCompleted
	// MetricSignupRejectedDownstream is an exported constant or variable used by the validation engine.
	MetricSignupRejectedDownstream
	// MetricLoginSuccess is an exported constant or variable used by the validation engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the validation engine.
	MetricLoginFailure
	// MetricLoginUnavailable is an exported constant or variable used by the validation engine.
	MetricLoginUnavailable
	// MetricResetRequested is an exported constant or variable used by the validation engine.
	MetricResetRequested
	// MetricResetFailed is an exported constant or variable used by the validation engine.
	MetricResetFailed
	// MetricViewChanged is an exported constant or variable used by the validation engine.
	MetricViewChanged
	// MetricLookupLatency is an exported constant or variable used by the validation engine.
	MetricLookupLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by authflow APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by authflow APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether metric collection is active.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe describes the observe operation and its observable behavior.
//
// Observe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricLookupLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricLookupLatency].buckets[i])
		}
		s.Histograms[MetricLookupLatency] = buckets
	}

	return s
}

// bucketIndex maps a lookup duration to one of 8 fixed histogram buckets
// (≤5ms, ≤10ms, ≤25ms, ≤50ms, ≤100ms, ≤250ms, ≤1s, +Inf).
func bucketIndex(d time.Duration) int {
	switch {
	case d <= 5*time.Millisecond:
		return 0
	case d <= 10*time.Millisecond:
		return 1
	case d <= 25*time.Millisecond:
		return 2
	case d <= 50*time.Millisecond:
		return 3
	case d <= 100*time.Millisecond:
		return 4
	case d <= 250*time.Millisecond:
		return 5
	case d <= time.Second:
		return 6
	default:
		return 7
	}
}
