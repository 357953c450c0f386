package release

import (
	"errors"
	"fmt"
)

// ErrorKind classifies matcher failures.
type ErrorKind int

const (
	// KindConfiguration marks a missing or unusable input or pattern.
	KindConfiguration ErrorKind = iota + 1
	// KindMalformedInput marks an episode match whose groups are not integers.
	KindMalformedInput
	// KindState marks a caller asking for the identifier of an invalid result.
	KindState
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindMalformedInput:
		return "malformed input"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an *Error of the same kind.
var (
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrMalformedInput = &Error{Kind: KindMalformedInput}
	ErrState          = &Error{Kind: KindState}
)

// Error is returned by the matcher. Field names the offending input
// ("name", "text", "name_patterns", "episode_patterns", ...) and Input holds
// the offending value.
type Error struct {
	Kind  ErrorKind
	Field string
	Input string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func configError(field, input string, err error) *Error {
	return &Error{Kind: KindConfiguration, Field: field, Input: input, Err: err}
}
