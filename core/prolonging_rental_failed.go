package core

import (
	"time"
)

// ProlongingRentalFailedEventType is the event type identifier.
const ProlongingRentalFailedEventType = "ProlongingRentalFailed"

// ProlongingRentalFailed represents when prolonging a rental entry failed due to a business rule violation.
type ProlongingRentalFailed struct {
	RentalEntryID RentalEntryID
	MemberID      MemberID
	TitleID       TitleID
	FailureKind   ErrorKind
	FailureInfo   string
	OccurredAt    OccurredAt
}

// BuildProlongingRentalFailed creates a new ProlongingRentalFailed event.
func BuildProlongingRentalFailed(
	rentalEntryID RentalEntryID,
	memberID MemberID,
	titleID TitleID,
	failureKind ErrorKind,
	failureInfo string,
	occurredAt time.Time,
) ProlongingRentalFailed {

	return ProlongingRentalFailed{
		RentalEntryID: rentalEntryID,
		MemberID:      memberID,
		TitleID:       titleID,
		FailureKind:   failureKind,
		FailureInfo:   failureInfo,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProlongingRentalFailed) EventType() string {
	return ProlongingRentalFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProlongingRentalFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ProlongingRentalFailed) IsErrorEvent() bool {
	return true
}

// ToError converts the failure into the typed Error returned to the caller.
func (e ProlongingRentalFailed) ToError() error {
	return NewError(e.FailureKind, "%s: %s", ProlongingRentalFailedEventType, e.FailureInfo)
}
