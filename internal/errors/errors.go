// Package errors defines the typed domain errors shared across services.
// Every failure the core can produce is one of these values (or wraps one),
// so handlers can translate them into HTTP statuses without string matching.
package errors

import "fmt"

// DomainError is a recoverable, typed failure. Code is stable and machine
// readable; Message is safe to show to the caller.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is makes DomainError values match under errors.Is by code, so wrapped
// errors still compare against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithDetail returns a copy of the error with extra context appended to the
// message. The code is preserved so errors.Is still matches.
func (e *DomainError) WithDetail(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf("%s: %s", e.Message, fmt.Sprintf(format, args...)),
	}
}
