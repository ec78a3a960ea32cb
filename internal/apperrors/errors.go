package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation      Kind = "validation_error"
	KindEmptyInput      Kind = "empty_input"
	KindInvalidArgument Kind = "invalid_argument"
	KindRemoteAnalysis  Kind = "remote_analysis_error"
	KindMalformedData   Kind = "malformed_data"
)

// Error is the single error type crossing pipeline stage boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can compare against
// the sentinel values below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrEmptyInput      = &Error{Kind: KindEmptyInput}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrRemoteAnalysis  = &Error{Kind: KindRemoteAnalysis}
	ErrMalformedData   = &Error{Kind: KindMalformedData}
)

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...), nil)
}

func EmptyInput(format string, args ...any) *Error {
	return New(KindEmptyInput, fmt.Sprintf(format, args...), nil)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(KindInvalidArgument, fmt.Sprintf(format, args...), nil)
}

func RemoteAnalysis(message string, err error) *Error {
	return New(KindRemoteAnalysis, message, err)
}

func MalformedData(format string, args ...any) *Error {
	return New(KindMalformedData, fmt.Sprintf(format, args...), nil)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
