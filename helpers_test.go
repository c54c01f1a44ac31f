package authflow

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// stubLookup is a controllable RecordLookup for flow and form tests.
type stubLookup struct {
	mu      sync.Mutex
	records map[string]string
	err     error
	delay   time.Duration
	calls   atomic.Int64
}

func newStubLookup() *stubLookup {
	return &stubLookup{records: map[string]string{}}
}

func (s *stubLookup) put(accountNumber, displayName string) {
	s.mu.Lock()
	s.records[accountNumber] = displayName
	s.mu.Unlock()
}

func (s *stubLookup) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *stubLookup) setDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

func (s *stubLookup) LookupByAccountNumber(ctx context.Context, accountNumber string) (LookupResult, error) {
	s.calls.Add(1)

	s.mu.Lock()
	delay := s.delay
	err := s.err
	name, ok := s.records[accountNumber]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return LookupResult{}, ctx.Err()
		}
	}
	if err != nil {
		return LookupResult{}, err
	}
	if !ok {
		return LookupResult{}, nil
	}
	return LookupResult{Found: true, DisplayName: name}, nil
}

type stubChecker struct {
	result LoginResult
	err    error
}

func (s *stubChecker) CheckCredentials(ctx context.Context, email, password string) (LoginResult, error) {
	if s.err != nil {
		return LoginResult{}, s.err
	}
	return s.result, nil
}

type stubRegistrar struct {
	mu       sync.Mutex
	payloads []SignupPayload
	err      error
}

func (s *stubRegistrar) Register(ctx context.Context, payload SignupPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

type stubResetSender struct {
	mu     sync.Mutex
	emails []string
	err    error
}

func (s *stubResetSender) SendResetLink(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.emails = append(s.emails, email)
	return nil
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Debounce.Delay = 15 * time.Millisecond
	cfg.Debounce.LookupTimeout = 500 * time.Millisecond
	cfg.Audit.Enabled = false
	return cfg
}

func newTestFlow(t *testing.T, lookup RecordLookup, opts ...func(*Builder)) *Flow {
	t.Helper()

	builder := New().
		WithConfig(fastConfig()).
		WithRecordLookup(lookup)
	for _, opt := range opts {
		opt(builder)
	}

	flow, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(flow.Close)

	return flow
}

func waitForStatus(t *testing.T, form *Form, field string, status Status) Outcome {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		out := form.Field(field).Outcome()
		if out.Status == status {
			return out
		}
		time.Sleep(2 * time.Millisecond)
	}

	out := form.Field(field).Outcome()
	t.Fatalf("field %s never reached %s; last outcome %s (%q)", field, status, out.Status, out.Message)
	return out
}

// fillValidSignup populates every signup field with values that pass the
// structural rules. Account "1002" resolves against the given lookup when the
// test seeded it.
func fillValidSignup(t *testing.T, form *Form) {
	t.Helper()

	set := func(name, value string) {
		if err := form.SetValue(name, value); err != nil {
			t.Fatalf("SetValue(%s) failed: %v", name, err)
		}
	}

	set(FieldFullName, "Jane Smith")
	set(FieldEmail, "jane@example.com")
	set(FieldIDNumber, "9001015026083")
	set(FieldCellphone, "0123456790")
	set(FieldAccountNumber, "1002")
	set(FieldPassword, "Abcdef1!")
	set(FieldConfirmPassword, "Abcdef1!")
}
