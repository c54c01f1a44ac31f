package authflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestBuildRequiresRecordLookup(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected Build to fail without a record lookup")
	}
}

func TestBuilderIsSingleUse(t *testing.T) {
	b := New().WithRecordLookup(newStubLookup())

	flow, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer flow.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestViewTransitionsAreExplicit(t *testing.T) {
	flow := newTestFlow(t, newStubLookup())

	if got := flow.View(); got != ViewLogin {
		t.Fatalf("initial view must be login, got %s", got)
	}

	flow.ShowSignup()
	if got := flow.View(); got != ViewSignup {
		t.Fatalf("expected signup view, got %s", got)
	}

	flow.ShowForgotPassword()
	flow.ShowLogin()
	if got := flow.View(); got != ViewLogin {
		t.Fatalf("expected login view, got %s", got)
	}

	if got := flow.MetricsSnapshot().Counters[MetricViewChanged]; got != 3 {
		t.Fatalf("expected 3 view changes, got %d", got)
	}

	// Re-selecting the active view is a no-op.
	flow.ShowLogin()
	if got := flow.MetricsSnapshot().Counters[MetricViewChanged]; got != 3 {
		t.Fatalf("same-view switch must not count, got %d", got)
	}
}

func TestSignupDraftSurvivesViewSwitch(t *testing.T) {
	flow := newTestFlow(t, newStubLookup())
	form := flow.SignupForm()

	flow.ShowSignup()
	if err := form.SetValue(FieldFullName, "Jane Smith"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	flow.ShowForgotPassword()
	flow.ShowSignup()

	if got := form.Field(FieldFullName).Value(); got != "Jane Smith" {
		t.Fatalf("draft must survive navigation, got %q", got)
	}
}

func TestLoginWithoutCheckerIsNotReady(t *testing.T) {
	flow := newTestFlow(t, newStubLookup())

	if _, err := flow.Login(context.Background(), "jane@example.com", "pw"); !errors.Is(err, ErrFlowNotReady) {
		t.Fatalf("expected ErrFlowNotReady, got %v", err)
	}
}

func TestLoginFailureIsAggregate(t *testing.T) {
	checker := &stubChecker{err: ErrInvalidCredentials}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithCredentialChecker(checker)
	})

	_, err := flow.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// The caller sees one aggregate message, never which part was wrong.
	if err.Error() != "invalid email or password" {
		t.Fatalf("unexpected aggregate message: %q", err.Error())
	}
	if flow.MetricsSnapshot().Counters[MetricLoginFailure] != 1 {
		t.Fatal("expected login failure metric")
	}
}

func TestLoginEmptyInputsFailFast(t *testing.T) {
	checker := &stubChecker{result: LoginResult{UserID: "u1"}}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithCredentialChecker(checker)
	})

	if _, err := flow.Login(context.Background(), "", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := flow.Login(context.Background(), "jane@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestLoginBackendFailureIsDistinguished(t *testing.T) {
	checker := &stubChecker{err: errors.New("redis: connection refused")}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithCredentialChecker(checker)
	})

	_, err := flow.Login(context.Background(), "jane@example.com", "pw")
	if !errors.Is(err, ErrLoginUnavailable) {
		t.Fatalf("expected ErrLoginUnavailable, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("backend failure must not masquerade as bad credentials")
	}
	if flow.MetricsSnapshot().Counters[MetricLoginUnavailable] != 1 {
		t.Fatal("expected login unavailable metric")
	}
}

func TestLoginSuccess(t *testing.T) {
	checker := &stubChecker{result: LoginResult{UserID: "u1", DisplayName: "Jane Smith", AccessToken: "tok"}}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithCredentialChecker(checker)
	})

	res, err := flow.Login(context.Background(), " jane@example.com ", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.UserID != "u1" || res.AccessToken != "tok" {
		t.Fatalf("unexpected login result: %+v", res)
	}
	if flow.MetricsSnapshot().Counters[MetricLoginSuccess] != 1 {
		t.Fatal("expected login success metric")
	}
}

func TestRequestPasswordResetValidatesEmail(t *testing.T) {
	sender := &stubResetSender{}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithResetSender(sender)
	})

	if err := flow.RequestPasswordReset(context.Background(), "not-an-email"); !errors.Is(err, ErrResetEmailInvalid) {
		t.Fatalf("expected ErrResetEmailInvalid, got %v", err)
	}
	if len(sender.emails) != 0 {
		t.Fatal("invalid email must never reach the sender")
	}

	if err := flow.RequestPasswordReset(context.Background(), " jane@example.com "); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	if len(sender.emails) != 1 || sender.emails[0] != "jane@example.com" {
		t.Fatalf("expected trimmed email delivered once, got %v", sender.emails)
	}
	if flow.MetricsSnapshot().Counters[MetricResetRequested] != 1 {
		t.Fatal("expected reset requested metric")
	}
}

func TestRequestPasswordResetSenderFailure(t *testing.T) {
	sender := &stubResetSender{err: errors.New("smtp down")}
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithResetSender(sender)
	})

	err := flow.RequestPasswordReset(context.Background(), "jane@example.com")
	if !errors.Is(err, ErrResetUnavailable) {
		t.Fatalf("expected ErrResetUnavailable, got %v", err)
	}
	if flow.MetricsSnapshot().Counters[MetricResetFailed] != 1 {
		t.Fatal("expected reset failed metric")
	}
}

func TestSubmitSignupRequiresSignupView(t *testing.T) {
	flow := newTestFlow(t, newStubLookup())

	if _, err := flow.SubmitSignup(context.Background()); !errors.Is(err, ErrWrongView) {
		t.Fatalf("expected ErrWrongView, got %v", err)
	}
}

func TestSubmitSignupCompletesAndReturnsToLogin(t *testing.T) {
	lookup := newStubLookup()
	lookup.put("1002", "Jane Smith")
	registrar := &stubRegistrar{}
	flow := newTestFlow(t, lookup, func(b *Builder) {
		b.WithRegistrationHandler(registrar)
	})
	form := flow.SignupForm()

	flow.ShowSignup()
	fillValidSignup(t, form)
	waitForStatus(t, form, FieldAccountNumber, StatusValid)

	payload, err := flow.SubmitSignup(context.Background())
	if err != nil {
		t.Fatalf("SubmitSignup failed: %v", err)
	}
	if payload.AccountNumber != "1002" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	if len(registrar.payloads) != 1 {
		t.Fatalf("expected one registration, got %d", len(registrar.payloads))
	}
	if got := flow.View(); got != ViewLogin {
		t.Fatalf("expected return to login view, got %s", got)
	}
	if got := form.Field(FieldAccountNumber).Value(); got != "" {
		t.Fatalf("expected cleared draft after success, got %q", got)
	}

	snap := flow.MetricsSnapshot()
	if snap.Counters[MetricSignupCompleted] != 1 || snap.Counters[MetricFormSubmitAccepted] != 1 {
		t.Fatalf("unexpected signup metrics: %v", snap.Counters)
	}
}

func TestSubmitSignupDownstreamRejection(t *testing.T) {
	lookup := newStubLookup()
	lookup.put("1002", "Jane Smith")
	registrar := &stubRegistrar{err: fmt.Errorf("%w: account already registered", ErrRegistrationRejected)}
	flow := newTestFlow(t, lookup, func(b *Builder) {
		b.WithRegistrationHandler(registrar)
	})
	form := flow.SignupForm()

	flow.ShowSignup()
	fillValidSignup(t, form)
	waitForStatus(t, form, FieldAccountNumber, StatusValid)

	_, err := flow.SubmitSignup(context.Background())
	if !errors.Is(err, ErrRegistrationRejected) {
		t.Fatalf("expected ErrRegistrationRejected, got %v", err)
	}

	// A downstream rejection is a form-level error; the draft and view stay.
	if got := flow.View(); got != ViewSignup {
		t.Fatalf("view must stay on signup, got %s", got)
	}
	if got := form.FormError(); got == "" {
		t.Fatal("expected a form-level error message")
	}
	if got := form.Field(FieldAccountNumber).Value(); got != "1002" {
		t.Fatalf("draft must survive a rejection, got %q", got)
	}
	if flow.MetricsSnapshot().Counters[MetricSignupRejectedDownstream] != 1 {
		t.Fatal("expected downstream rejection metric")
	}
}

func TestSubmitSignupRegistrarUnavailable(t *testing.T) {
	lookup := newStubLookup()
	lookup.put("1002", "Jane Smith")
	registrar := &stubRegistrar{err: errors.New("redis: connection refused")}
	flow := newTestFlow(t, lookup, func(b *Builder) {
		b.WithRegistrationHandler(registrar)
	})
	form := flow.SignupForm()

	flow.ShowSignup()
	fillValidSignup(t, form)
	waitForStatus(t, form, FieldAccountNumber, StatusValid)

	_, err := flow.SubmitSignup(context.Background())
	if !errors.Is(err, ErrRegistrationUnavailable) {
		t.Fatalf("expected ErrRegistrationUnavailable, got %v", err)
	}
	if errors.Is(err, ErrRegistrationRejected) {
		t.Fatal("an outage must not be reported as a rejection")
	}
}

func TestMetricsDisabled(t *testing.T) {
	flow := newTestFlow(t, newStubLookup(), func(b *Builder) {
		b.WithMetricsEnabled(false)
	})

	flow.ShowSignup()
	snap := flow.MetricsSnapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("disabled metrics must snapshot empty, got %v", snap.Counters)
	}
}
