package services

import "errors"

// Failure kinds surfaced to controllers. Controllers map these to HTTP
// status codes; anything not matching one of them is treated as internal.
var (
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrRoomUnavailable = errors.New("room_unavailable") // availability recheck failed at commit, retryable
)

// ValidationError carries a caller-facing message for malformed or
// out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
