package authflow

import "errors"

// Builder defines a public type used by authflow APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	lookup    RecordLookup
	checker   CredentialChecker
	registrar RegistrationHandler
	resetter  ResetSender
	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig]. Construction is
// allocation-only: no I/O happens before the flow is used.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRecordLookup injects the account-number existence check. Required.
func (b *Builder) WithRecordLookup(lookup RecordLookup) *Builder {
	b.lookup = lookup
	return b
}

// WithCredentialChecker injects the login credential collaborator.
func (b *Builder) WithCredentialChecker(checker CredentialChecker) *Builder {
	b.checker = checker
	return b
}

// WithRegistrationHandler injects the signup payload consumer.
func (b *Builder) WithRegistrationHandler(registrar RegistrationHandler) *Builder {
	b.registrar = registrar
	return b
}

// WithResetSender injects the forgot-password collaborator.
func (b *Builder) WithResetSender(resetter ResetSender) *Builder {
	b.resetter = resetter
	return b
}

// WithAuditSink injects the audit event destination.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and returns a ready [Flow] showing the login
// view.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Flow, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.lookup == nil {
		return nil, errors.New("record lookup is required")
	}
	b.built = true

	cfg := normalizeConfig(b.config)

	f := &Flow{
		config:    cfg,
		lookup:    b.lookup,
		checker:   b.checker,
		registrar: b.registrar,
		resetter:  b.resetter,
		metrics:   NewMetrics(cfg.Metrics),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		view:      ViewLogin,
	}
	f.form = f.newSignupForm()

	return f, nil
}
