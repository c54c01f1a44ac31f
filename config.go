package authflow

import "time"

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Debounce DebounceConfig
	Field    FieldConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
DEBOUNCE CONFIG
====================================
*/

// DebounceConfig defines a public type used by authflow APIs.
//
// Delay is a UX tuning parameter, not a correctness parameter: any positive
// value preserves the last-value-wins guarantee. LookupTimeout bounds a single
// remote check so a field can never stay Pending indefinitely.
type DebounceConfig struct {
	Delay         time.Duration
	LookupTimeout time.Duration
}

/*
====================================
FIELD CONFIG
====================================
*/

// FieldConfig defines a public type used by authflow APIs.
//
// MinLookupLength is the number of characters below which a remote-checked
// field stays Idle instead of flashing Invalid while the user is mid-type.
type FieldConfig struct {
	MinLookupLength int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authflow APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authflow APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration used when the Builder is given none:
// 500ms debounce delay, 5s lookup timeout, 4-character lookup minimum, audit
// enabled with a 256-event drop-if-full buffer, metrics enabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Debounce: DebounceConfig{
			Delay:         500 * time.Millisecond,
			LookupTimeout: 5 * time.Second,
		},
		Field: FieldConfig{
			MinLookupLength: 4,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// normalizeConfig clamps zero and negative tunables back to their defaults so
// a partially populated Config cannot disable the staleness or timeout guards.
func normalizeConfig(cfg Config) Config {
	def := defaultConfig()

	if cfg.Debounce.Delay <= 0 {
		cfg.Debounce.Delay = def.Debounce.Delay
	}
	if cfg.Debounce.LookupTimeout <= 0 {
		cfg.Debounce.LookupTimeout = def.Debounce.LookupTimeout
	}
	if cfg.Field.MinLookupLength <= 0 {
		cfg.Field.MinLookupLength = def.Field.MinLookupLength
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		cfg.Audit.BufferSize = def.Audit.BufferSize
	}

	return cfg
}
