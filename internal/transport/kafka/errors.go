package kafka

import "errors"

// PermanentError marks a handler failure that redelivery cannot fix.
// The consumer acknowledges such messages instead of replaying them.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in
// its chain.
func IsPermanent(err error) bool {
	var pe PermanentError
	return errors.As(err, &pe)
}
