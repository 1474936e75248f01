package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every failed round trip to the roster API:
	// unreachable host, timeout or a non-2xx status.
	ErrTransport = errors.New("roster API request failed")

	// ErrValidation is returned before any request is sent.
	ErrValidation = errors.New("validation failed")
)

type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: roster API responded with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
