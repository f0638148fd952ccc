package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups that find no record.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx response for a requested document. Such
// responses are not retried.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// FetchError reports a transport failure that survived every attempt.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("GET %s: giving up after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
