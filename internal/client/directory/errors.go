package directory

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("employee not found")
)

// TransportError reports a network or storage failure. Message is meant for
// direct display.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportErrorf(err error, format string, args ...any) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...), Err: err}
}
