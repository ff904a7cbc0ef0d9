// File path: internal/audit/result.go
package audit

import (
	"errors"
	"fmt"
)

// Kind partitions pipeline failures for the dispatch layer.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindSheetNotFound Kind = "sheet_not_found"
	KindFormat        Kind = "format_error"
	KindValidation    Kind = "validation_error"
	KindWrite         Kind = "write_error"
	KindInternal      Kind = "internal_error"
)

// Error is the only error type pipeline operations return. Operations
// never raise past their boundary: internal faults, including panics,
// are converted into an Error with KindInternal.
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

// Errorf builds an Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Message: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// KindOf reports the Kind of an error, defaulting to KindInternal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// guard converts a panic inside an operation into an internal Error.
// Every exported operation defers it so the all-or-nothing contract
// holds even on unexpected faults.
func guard(err **Error) {
	if r := recover(); r != nil {
		*err = &Error{Kind: KindInternal, Message: fmt.Sprintf("unexpected fault: %v", r)}
	}
}
