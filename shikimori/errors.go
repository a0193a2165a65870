// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousEntry is matched by every *AmbiguousEntryError.
	ErrAmbiguousEntry = errors.New("more than one library entry for the same manga")

	// ErrNotAuthenticated is returned when a call needs a session and none exists.
	ErrNotAuthenticated = errors.New("not authenticated, run `shikisync auth login`")

	// ErrMissingCredentials is returned by Config.Validate without a client id or secret.
	ErrMissingCredentials = errors.New("shikimori client id and secret are required")
)

// TransportError is a failed request: either no response at all (StatusCode 0) or a non-2xx status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that does not have the expected shape.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response of %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AmbiguousEntryError reports several library entries for one user and target.
type AmbiguousEntryError struct {
	UserID   int
	TargetID int64
	Count    int
}

func (e *AmbiguousEntryError) Error() string {
	return fmt.Sprintf("user %d has %d library entries for manga %d", e.UserID, e.Count, e.TargetID)
}

func (e *AmbiguousEntryError) Is(target error) bool {
	return target == ErrAmbiguousEntry
}

// AuthError is a failed token exchange or refresh. The authorization flow has to be restarted.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("shikimori %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UnrecognizedStatusError is a status token outside the known vocabulary.
type UnrecognizedStatusError struct {
	Status string
}

func (e *UnrecognizedStatusError) Error() string {
	return fmt.Sprintf("unrecognized status %q", e.Status)
}
