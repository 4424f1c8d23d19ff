package kafka

// PermanentError marks a message as unprocessable. The consumer quarantines
// such messages (logs and commits them) instead of retrying forever.
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

// Permanent wraps err so the consumer treats it as unprocessable.
func Permanent(err error) error {
	return PermanentError{Err: err}
}
