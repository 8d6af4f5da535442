package apperr

import (
	"errors"
	"fmt"
)

// Code is the fixed failure taxonomy surfaced verbatim to callers of the
// admin operations. Anything that doesn't fit one of the named codes is
// reported as CodeInternal.
type Code string

const (
	CodeUnauthenticated  Code = "unauthenticated"
	CodePermissionDenied Code = "permission-denied"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeAlreadyExists    Code = "already-exists"
	CodeNotFound         Code = "not-found"
	CodeInternal         Code = "internal"
)

// Error carries a taxonomy code together with a caller-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a taxonomy code to an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Unauthenticated reports a caller with no identity reference.
func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

// PermissionDenied reports a caller whose persisted role does not allow the operation.
func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

// InvalidArgument reports a validation failure; the message names the field.
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// AlreadyExists reports an identifier or email collision.
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// Internal wraps an unclassified failure (e.g. a transient store error).
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", Err: err}
}

// CodeOf extracts the taxonomy code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is lets errors.Is match two coded errors by code alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}
