package core

import (
	"time"
)

// RentingTitleFailedEventType is the event type identifier.
const RentingTitleFailedEventType = "RentingTitleFailed"

// RentingTitleFailed represents when renting a title to a member failed due to a business rule violation.
type RentingTitleFailed struct {
	MemberID    MemberID
	TitleID     TitleID
	FailureKind ErrorKind
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRentingTitleFailed creates a new RentingTitleFailed event.
func BuildRentingTitleFailed(
	memberID MemberID,
	titleID TitleID,
	failureKind ErrorKind,
	failureInfo string,
	occurredAt time.Time,
) RentingTitleFailed {

	return RentingTitleFailed{
		MemberID:    memberID,
		TitleID:     titleID,
		FailureKind: failureKind,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RentingTitleFailed) EventType() string {
	return RentingTitleFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentingTitleFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RentingTitleFailed) IsErrorEvent() bool {
	return true
}

// ToError converts the failure into the typed Error returned to the caller.
func (e RentingTitleFailed) ToError() error {
	return NewError(e.FailureKind, "%s: %s", RentingTitleFailedEventType, e.FailureInfo)
}
