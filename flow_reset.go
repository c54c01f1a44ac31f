package authflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/zimako-tech/authflow/rules"
)

// RequestPasswordReset validates the email shape and hands the address to the
// injected [ResetSender]. It touches no other view's data: the signup draft
// and login state are unaffected.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
func (f *Flow) RequestPasswordReset(ctx context.Context, email string) error {
	if f == nil || f.resetter == nil {
		return ErrFlowNotReady
	}

	email = strings.TrimSpace(email)
	if ok, _ := rules.Evaluate(rules.EmailAddress(), email, nil); !ok {
		return ErrResetEmailInvalid
	}

	if err := f.resetter.SendResetLink(ctx, email); err != nil {
		f.metricInc(MetricResetFailed)
		f.emitAudit(ctx, auditEventResetFailed, false, "", err, nil)
		return fmt.Errorf("%w: %v", ErrResetUnavailable, err)
	}

	f.metricInc(MetricResetRequested)
	f.emitAudit(ctx, auditEventResetRequested, true, "", nil, nil)

	return nil
}
