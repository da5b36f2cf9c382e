package cli

import "errors"

var errFormInvalid = errors.New("form has invalid fields")

// reportedError wraps a failure that was already shown to the user through
// the terminal notifier or annotations.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported tells main whether err still needs printing.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
