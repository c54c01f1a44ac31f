package authflow

import "errors"

var (
	// ErrFlowNotReady is an exported constant or variable used by the validation engine.
	ErrFlowNotReady = errors.New("flow not ready")
	// ErrInvalidCredentials is an exported constant or variable used by the validation engine.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrLoginUnavailable is an exported constant or variable used by the validation engine.
	ErrLoginUnavailable = errors.New("login backend unavailable")
	// ErrFormNotSubmittable is an exported constant or variable used by the validation engine.
	ErrFormNotSubmittable = errors.New("form not submittable")
	// ErrFieldUnknown is an exported constant or variable used by the validation engine.
	ErrFieldUnknown = errors.New("unknown field")
	// ErrFormClosed is an exported constant or variable used by the validation engine.
	ErrFormClosed = errors.New("form closed")
	// ErrRegistrationRejected is an exported constant or variable used by the validation engine.
	ErrRegistrationRejected = errors.New("registration rejected")
	// ErrRegistrationUnavailable is an exported constant or variable used by the validation engine.
	ErrRegistrationUnavailable = errors.New("registration backend unavailable")
	// ErrResetEmailInvalid is an exported constant or variable used by the validation engine.
	ErrResetEmailInvalid = errors.New("invalid reset email address")
	// ErrResetUnavailable is an exported constant or variable used by the validation engine.
	ErrResetUnavailable = errors.New("password reset backend unavailable")
	// ErrLookupUnavailable is an exported constant or variable used by the validation engine.
	ErrLookupUnavailable = errors.New("record lookup unavailable")
	// ErrWrongView is an exported constant or variable used by the validation engine.
	ErrWrongView = errors.New("operation not valid in current view")
)
