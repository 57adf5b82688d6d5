package core

import (
	"time"
)

// ReturningTitleFailedEventType is the event type identifier.
const ReturningTitleFailedEventType = "ReturningTitleFailed"

// ReturningTitleFailed represents when returning a rented title failed due to a business rule violation.
type ReturningTitleFailed struct {
	RentalEntryID RentalEntryID
	MemberID      MemberID
	TitleID       TitleID
	FailureKind   ErrorKind
	FailureInfo   string
	OccurredAt    OccurredAt
}

// BuildReturningTitleFailed creates a new ReturningTitleFailed event.
func BuildReturningTitleFailed(
	rentalEntryID RentalEntryID,
	memberID MemberID,
	titleID TitleID,
	failureKind ErrorKind,
	failureInfo string,
	occurredAt time.Time,
) ReturningTitleFailed {

	return ReturningTitleFailed{
		RentalEntryID: rentalEntryID,
		MemberID:      memberID,
		TitleID:       titleID,
		FailureKind:   failureKind,
		FailureInfo:   failureInfo,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReturningTitleFailed) EventType() string {
	return ReturningTitleFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningTitleFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ReturningTitleFailed) IsErrorEvent() bool {
	return true
}

// ToError converts the failure into the typed Error returned to the caller.
func (e ReturningTitleFailed) ToError() error {
	return NewError(e.FailureKind, "%s: %s", ReturningTitleFailedEventType, e.FailureInfo)
}
