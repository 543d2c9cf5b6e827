package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the directory client id or
	// secret is not configured.
	ErrMissingCredentials = errors.New("directory credentials are not configured")
	// ErrNotConfigured is returned by optional collaborators without an API key.
	ErrNotConfigured = errors.New("service is not configured")
)

// TransportError reports a call that never produced an HTTP response after
// every retry was spent.
type TransportError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from an upstream that has no in-band way
// to report it.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: upstream returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.Status, e.Body)
}
