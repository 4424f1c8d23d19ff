package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates a transient infrastructure failure (store or push
// transport unreachable). Safe to retry via event redelivery.
var ErrUnavailable = errors.New("unavailable")

// ErrMissingRecipient indicates a delivery document without a userId where one
// is required. A data-integrity defect: logged, never retried.
var ErrMissingRecipient = errors.New("missing recipient")

// ErrUnknownRecipient indicates a recipient id with no matching user profile.
// A data-integrity defect: logged, never retried.
var ErrUnknownRecipient = errors.New("unknown recipient")

// IsIntegrity reports whether err is a data-integrity defect that must not be
// retried by redelivering the triggering event.
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrMissingRecipient) || errors.Is(err, ErrUnknownRecipient)
}
