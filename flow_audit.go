package authflow

import (
	"context"
	"time"
)

const (
	auditEventViewChanged     = "view.changed"
	auditEventLoginSuccess    = "login.success"
	auditEventLoginFailure    = "login.failure"
	auditEventLoginError      = "login.error"
	auditEventSignupCompleted = "signup.completed"
	auditEventSignupRejected  = "signup.rejected"
	auditEventResetRequested  = "reset.requested"
	auditEventResetFailed     = "reset.failed"
	auditEventLookupStale     = "lookup.stale_dropped"
	auditEventLookupError     = "lookup.error"
)

func (f *Flow) emitAudit(ctx context.Context, eventType string, success bool, field string, err error, meta map[string]string) {
	if f == nil || f.audit == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		View:      f.View().String(),
		Field:     field,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  meta,
	}
	if err != nil {
		event.Error = err.Error()
	}

	f.audit.Emit(ctx, event)
}
