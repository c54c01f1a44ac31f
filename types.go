package authflow

import (
	"context"
	"io"

	internalaudit "github.com/zimako-tech/authflow/internal/audit"
)

// Status is the externally visible validation state of a single field.
//
//	Idle    — nothing to report (empty or below the lookup minimum).
//	Pending — a remote confirmation is outstanding.
//	Valid   — every structural rule passed and, for remote-checked fields,
//	          the confirmation succeeded.
//	Invalid — a structural rule failed or the confirmation failed.
type Status uint8

const (
	// StatusIdle is an exported constant or variable used by the validation engine.
	StatusIdle Status = iota
	// StatusPending is an exported constant or variable used by the validation engine.
	StatusPending
	// StatusValid is an exported constant or variable used by the validation engine.
	StatusValid
	// StatusInvalid is an exported constant or variable used by the validation engine.
	StatusInvalid
)

// String describes the string operation and its observable behavior.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome is the result of validating one field value. ForValue records the
// trimmed input that produced the outcome; an outcome is applied to a field's
// visible state only while ForValue still equals the field's current value.
// Outcomes are replaced atomically, never merged.
type Outcome struct {
	Status   Status
	Message  string
	ForValue string
}

// FormState is the derived aggregate state of a form. Submittable is true iff
// every required field's outcome is Valid and no field is Pending.
type FormState struct {
	Outcomes    map[string]Outcome
	Submittable bool
}

// LookupResult is returned by [RecordLookup.LookupByAccountNumber].
// A missing record is Found=false, not an error.
type LookupResult struct {
	Found       bool
	DisplayName string
}

// RecordLookup is the single capability the validation core consumes: an
// idempotent account-number existence check. Implementations must resolve or
// fail within the caller's context deadline and must return Found=false rather
// than an error when no record matches.
type RecordLookup interface {
	LookupByAccountNumber(ctx context.Context, accountNumber string) (LookupResult, error)
}

// SignupPayload is emitted to the caller's [RegistrationHandler] on successful
// form submission. It is only produced when every field outcome, including the
// remote-confirmed account number, is Valid.
type SignupPayload struct {
	FullName      string
	Email         string
	IDNumber      string
	Cellphone     string
	AccountNumber string
	Password      string
}

// LoginResult is returned by [Flow.Login] via the injected [CredentialChecker].
type LoginResult struct {
	UserID      string
	DisplayName string
	AccessToken string
}

// CredentialChecker verifies login credentials. A non-matching email/password
// pair must return [ErrInvalidCredentials]; other errors are treated as a
// backend failure.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, email, password string) (LoginResult, error)
}

// RegistrationHandler receives the verified signup payload. Persistence and
// session creation belong to the implementation, not to authflow.
type RegistrationHandler interface {
	Register(ctx context.Context, payload SignupPayload) error
}

// ResetSender delivers a password-reset request for the given email address.
type ResetSender interface {
	SendResetLink(ctx context.Context, email string) error
}

// View identifies the active screen of the authentication flow. Transitions
// are user-triggered only; there are no automatic transitions.
type View uint8

const (
	// ViewLogin is an exported constant or variable used by the validation engine.
	ViewLogin View = iota
	// ViewSignup is an exported constant or variable used by the validation engine.
	ViewSignup
	// ViewForgotPassword is an exported constant or variable used by the validation engine.
	ViewForgotPassword
)

// String describes the string operation and its observable behavior.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewForgotPassword:
		return "forgot-password"
	default:
		return "unknown"
	}
}

// Field names used by the bundled signup form.
const (
	// FieldFullName is an exported constant or variable used by the validation engine.
	FieldFullName = "fullName"
	// FieldEmail is an exported constant or variable used by the validation engine.
	FieldEmail = "email"
	// FieldIDNumber is an exported constant or variable used by the validation engine.
	FieldIDNumber = "idNumber"
	// FieldCellphone is an exported constant or variable used by the validation engine.
	FieldCellphone = "cellphone"
	// FieldAccountNumber is an exported constant or variable used by the validation engine.
	FieldAccountNumber = "accountNumber"
	// FieldPassword is an exported constant or variable used by the validation engine.
	FieldPassword = "password"
	// FieldConfirmPassword is an exported constant or variable used by the validation engine.
	FieldConfirmPassword = "confirmPassword"
)

// AuditEvent is a structured audit record emitted by the flow.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the flow's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
