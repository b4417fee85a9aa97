package events

import "errors"

// permanentError marks a handler failure that retrying cannot fix — a
// malformed payload, an unparseable generation response, exhausted adapter
// retries. The bus routes the message straight to the dead-letter topic
// instead of redelivering it.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the bus dead-letters the message without retrying.
// Returns nil when err is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err (or anything it wraps) was marked with
// Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
