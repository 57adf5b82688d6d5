package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed (or deferred) rental operation.
type ErrorKind string

const (
	// KindNotFound means a member, title, or rental entry does not exist.
	KindNotFound ErrorKind = "NotFound"

	// KindMismatch means the member or title does not match the rental entry.
	KindMismatch ErrorKind = "Mismatch"

	// KindAlreadyReturned means the rental entry is already in its terminal state.
	KindAlreadyReturned ErrorKind = "AlreadyReturned"

	// KindAlreadyRented means the member already holds an active rental of this title.
	KindAlreadyRented ErrorKind = "AlreadyRented"

	// KindMemberRentalLimitReached means the member already holds the maximum of active rentals.
	KindMemberRentalLimitReached ErrorKind = "MemberRentalLimitReached"

	// KindProlongLimitReached means the rental entry was already prolonged the maximum number of times.
	KindProlongLimitReached ErrorKind = "ProlongLimitReached"

	// KindQueued is a deferred success: no copy was left, and the member was put on the waitlist.
	KindQueued ErrorKind = "Queued"

	// KindThrottled means the boundary layer rejected a repeated request of the same client.
	KindThrottled ErrorKind = "Throttled"

	// KindStorageFailure means a store or notifier collaborator failed, nothing was committed.
	KindStorageFailure ErrorKind = "StorageFailure"
)

// Sentinels for errors.Is checks, they match any Error of the same kind.
var (
	ErrNotFound                 = &Error{Kind: KindNotFound}
	ErrMismatch                 = &Error{Kind: KindMismatch}
	ErrAlreadyReturned          = &Error{Kind: KindAlreadyReturned}
	ErrAlreadyRented            = &Error{Kind: KindAlreadyRented}
	ErrMemberRentalLimitReached = &Error{Kind: KindMemberRentalLimitReached}
	ErrProlongLimitReached      = &Error{Kind: KindProlongLimitReached}
	ErrQueued                   = &Error{Kind: KindQueued}
	ErrThrottled                = &Error{Kind: KindThrottled}
	ErrStorageFailure           = &Error{Kind: KindStorageFailure}
)

// Error is a typed rental outcome which carries a human-readable message naming the offending ids.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// StorageFailure wraps a collaborator error in a KindStorageFailure Error.
// Already typed errors are returned unchanged.
func StorageFailure(err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	return &Error{
		Kind:    KindStorageFailure,
		Message: "storage failure: " + err.Error(),
		Err:     err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return e.Message
}

// Unwrap returns the wrapped collaborator error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on the Kind, so errors.Is(err, ErrNotFound) works for any NotFound error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind of err. The second return value is false for untyped errors.
func KindOf(err error) (ErrorKind, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind, true
	}

	return "", false
}
