package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Login verifies credentials through the injected [CredentialChecker]. The
// login path is deliberately simpler than signup: there is no per-field
// feedback, only one aggregate failure ([ErrInvalidCredentials], rendered as
// "Invalid email or password"), and no state is shared with the signup form.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
func (f *Flow) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if f == nil || f.checker == nil {
		return LoginResult{}, ErrFlowNotReady
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		f.metricInc(MetricLoginFailure)
		f.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidCredentials, nil)
		return LoginResult{}, ErrInvalidCredentials
	}

	result, err := f.checker.CheckCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			f.metricInc(MetricLoginFailure)
			f.emitAudit(ctx, auditEventLoginFailure, false, "", err, nil)
			return LoginResult{}, ErrInvalidCredentials
		}
		f.metricInc(MetricLoginUnavailable)
		f.emitAudit(ctx, auditEventLoginError, false, "", err, nil)
		return LoginResult{}, fmt.Errorf("%w: %v", ErrLoginUnavailable, err)
	}

	f.metricInc(MetricLoginSuccess)
	f.emitAudit(ctx, auditEventLoginSuccess, true, "", nil, map[string]string{
		"user_id": result.UserID,
	})

	return result, nil
}
