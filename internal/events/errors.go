package events

import (
	"fmt"
	"strconv"
)

// MissingFieldError reports a request that lacks a field required for
// entity construction, currently only a page URL without a domain. The
// whole report is rejected.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

// SessionParseError reports a session identifier that is not a valid
// 64-bit integer.
type SessionParseError struct {
	Value string
	Err   error
}

func (e *SessionParseError) Error() string {
	return fmt.Sprintf("malformed session identifier %q", e.Value)
}

func (e *SessionParseError) Unwrap() error {
	return e.Err
}

func parseSession(value string) (int64, error) {
	session, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &SessionParseError{Value: value, Err: err}
	}
	return session, nil
}
