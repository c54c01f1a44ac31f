package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zimako-tech/authflow/debounce"
	"github.com/zimako-tech/authflow/rules"
)

// signupFieldSpecs declares the bundled signup form. The account number is the
// only remote-checked field; confirm-password re-runs whenever the password
// changes and vice versa.
func signupFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: FieldFullName, Rules: rules.FullName()},
		{Name: FieldEmail, Rules: rules.EmailAddress()},
		{Name: FieldIDNumber, Rules: rules.IDNumber()},
		{Name: FieldCellphone, Rules: rules.Cellphone()},
		{Name: FieldAccountNumber, Rules: rules.AccountNumber(), RemoteCheck: true},
		{Name: FieldPassword, Rules: rules.Password(), NoTrim: true},
		{Name: FieldConfirmPassword, Rules: rules.ConfirmPassword(FieldPassword), NoTrim: true,
			DependsOn: []string{FieldPassword}},
	}
}

// newSignupForm builds the form and wires the account-number field's debounced
// confirmation to the flow's record lookup, metrics, and audit trail.
func (f *Flow) newSignupForm() *Form {
	form := newForm(signupFieldSpecs(), f.config.Field.MinLookupLength)

	account := form.Field(FieldAccountNumber)
	account.attachRemote(
		f.checkAccountNumber,
		f.config.Debounce.Delay,
		f.config.Debounce.LookupTimeout,
		func(_ string, coalesced bool) {
			f.metricInc(MetricLookupScheduled)
			if coalesced {
				f.metricInc(MetricLookupCoalesced)
			}
		},
		func() {
			f.metricInc(MetricStaleResultDropped)
			f.emitAudit(nil, auditEventLookupStale, true, FieldAccountNumber, nil, nil)
		},
	)

	return form
}

// checkAccountNumber is the debounced check function for the account field.
func (f *Flow) checkAccountNumber(ctx context.Context, value string) (debounce.Result, error) {
	f.metricInc(MetricLookupFired)
	start := time.Now()

	res, err := f.lookup.LookupByAccountNumber(ctx, value)

	if f.metrics != nil {
		f.metrics.Observe(MetricLookupLatency, time.Since(start))
	}

	switch {
	case err != nil:
		f.metricInc(MetricLookupError)
		f.emitAudit(ctx, auditEventLookupError, false, FieldAccountNumber, err, nil)
		return debounce.Result{}, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	case res.Found:
		f.metricInc(MetricLookupHit)
	default:
		f.metricInc(MetricLookupMiss)
	}

	return debounce.Result{Found: res.Found, DisplayName: res.DisplayName}, nil
}

// SubmitSignup submits the signup form. The payload is handed to the injected
// [RegistrationHandler]; on success the draft is cleared and the flow returns
// to the login view. A downstream rejection becomes the form-level error and
// the view stays on signup.
//
// SubmitSignup may return an error when input validation, dependency calls, or security checks fail.
func (f *Flow) SubmitSignup(ctx context.Context) (SignupPayload, error) {
	if f == nil || f.form == nil {
		return SignupPayload{}, ErrFlowNotReady
	}
	if f.View() != ViewSignup {
		return SignupPayload{}, ErrWrongView
	}

	payload, err := f.form.Submit()
	if err != nil {
		f.metricInc(MetricFormSubmitRejected)
		return SignupPayload{}, err
	}
	f.metricInc(MetricFormSubmitAccepted)

	if f.registrar != nil {
		if err := f.registrar.Register(ctx, payload); err != nil {
			if errors.Is(err, ErrRegistrationRejected) {
				f.metricInc(MetricSignupRejectedDownstream)
				f.form.setFormError(err.Error())
				f.emitAudit(ctx, auditEventSignupRejected, false, "", err, nil)
				return SignupPayload{}, err
			}
			f.metricInc(MetricSignupRejectedDownstream)
			wrapped := fmt.Errorf("%w: %v", ErrRegistrationUnavailable, err)
			f.form.setFormError(wrapped.Error())
			f.emitAudit(ctx, auditEventSignupRejected, false, "", wrapped, nil)
			return SignupPayload{}, wrapped
		}
	}

	f.metricInc(MetricSignupCompleted)
	f.emitAudit(ctx, auditEventSignupCompleted, true, "", nil, map[string]string{
		"account_number": payload.AccountNumber,
	})

	f.form.Reset()
	f.ShowLogin()

	return payload, nil
}
