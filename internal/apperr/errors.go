package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness violation or a conditional
// state transition that lost a race (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller lacks permission for the resource.
var ErrForbidden = errors.New("forbidden")

// ErrPaymentFailed indicates the payment processor declined the capture.
var ErrPaymentFailed = errors.New("payment failed")

// ErrUnavailable indicates a transient external fault (timeout, outage).
// Callers may retry with the same idempotency key.
var ErrUnavailable = errors.New("temporarily unavailable")
