package envopt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode defines string error
type ErrorCode string

// ErrorCode returns error message
func (e ErrorCode) Error() string {
	return string(e)
}

const (
	// ErrNotPresent indicates that a required variable is absent from the source
	ErrNotPresent = ErrorCode("variable is not present")
	// ErrParseFailed indicates that a variable is present but its value was rejected by the parser
	ErrParseFailed = ErrorCode("variable could not be parsed")
	// ErrLookupFailed indicates that the source itself failed to answer the lookup
	ErrLookupFailed = ErrorCode("variable lookup failed")
)

// Error provides error details.
// Code is one of ErrNotPresent, ErrParseFailed or ErrLookupFailed.
// Cause holds the parser or source failure and is nil for ErrNotPresent.
type Error struct {
	VarName string
	Code    ErrorCode
	Cause   error
}

func (e *Error) Error() string {
	sb := new(strings.Builder)
	sb.WriteString(fmt.Sprintf("variable %q", e.VarName))
	switch e.Code {
	case ErrNotPresent:
		sb.WriteString(" is not set")
	case ErrParseFailed:
		sb.WriteString(" has invalid value")
	case ErrLookupFailed:
		sb.WriteString(" could not be looked up")
	default:
		if e.Code != "" {
			sb.WriteString(" " + e.Code.Error())
		}
	}
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes both the code and the cause, so errors.Is matches either of them.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Cause}
}

// IsNotPresent reports whether err was caused by an absent required variable.
func IsNotPresent(err error) bool {
	return errors.Is(err, ErrNotPresent)
}

// IsParseFailed reports whether err was caused by a value the parser rejected.
func IsParseFailed(err error) bool {
	return errors.Is(err, ErrParseFailed)
}

// VarName returns the name of the variable err refers to, or "" if err is not an *Error.
func VarName(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.VarName
	}
	return ""
}

func notPresent(name string) error {
	return &Error{VarName: name, Code: ErrNotPresent}
}

func parseFailed(name string, cause error) error {
	return &Error{VarName: name, Code: ErrParseFailed, Cause: cause}
}

func lookupFailed(name string, cause error) error {
	return &Error{VarName: name, Code: ErrLookupFailed, Cause: cause}
}
