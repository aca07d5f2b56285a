package audible

import "errors"

var _ error = &ErrInvalidJSON{}

// ErrInvalidJSON is returned when the server's response could not be parsed.
// Body contains the raw response body.
type ErrInvalidJSON struct {
	Err  error
	Body []byte
}

func (e *ErrInvalidJSON) Error() string {
	return "parse: " + e.Err.Error()
}

func (e *ErrInvalidJSON) Is(target error) bool {
	var err *ErrInvalidJSON
	return errors.As(target, &err)
}

func (e *ErrInvalidJSON) Unwrap() error {
	return e.Err
}
