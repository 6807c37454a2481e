package domain

import "errors"

// Error kinds. Handlers map these to HTTP statuses; everything else is a 500.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrAuthentication   = errors.New("authentication failed")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries a user-facing message on top of a sentinel kind, so handlers
// can both match with errors.Is and echo the message in the response body.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Authentication(msg string) error {
	return &Error{Kind: ErrAuthentication, Message: msg}
}
