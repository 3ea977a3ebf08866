package usecase

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a row does not exist. Usecases
// translate it into a classified NotFound error with a message that names the
// missing entity.
var ErrNotFound = errors.New("not found")

// Kind is the machine-usable error class carried on every failure that crosses
// the usecase boundary.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindRateLimited  Kind = "RATE_LIMITED"
	KindUpstream     Kind = "UPSTREAM_ERROR"
	KindUnavailable  Kind = "UPSTREAM_UNAVAILABLE"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error pairs a Kind with a human-readable detail message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

func RateLimited(msg string) error { return &Error{Kind: KindRateLimited, Message: msg} }

func Upstream(msg string) error { return &Error{Kind: KindUpstream, Message: msg} }

func Unavailable(msg string) error { return &Error{Kind: KindUnavailable, Message: msg} }

func Internalf(format string, args ...any) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from a classified error. Anything unclassified is
// treated as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// fromStore passes already-classified errors through unchanged and wraps
// anything else as an internal error, keeping the underlying message for
// diagnostics. Classified errors are never reclassified.
func fromStore(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindInternal, Message: fmt.Sprintf("Database error: %v", err), cause: err}
}
