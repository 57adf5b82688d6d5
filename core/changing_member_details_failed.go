package core

import (
	"time"
)

// ChangingMemberDetailsFailedEventType is the event type identifier.
const ChangingMemberDetailsFailedEventType = "ChangingMemberDetailsFailed"

// ChangingMemberDetailsFailed represents when correcting the data of a member failed due to a business rule violation.
type ChangingMemberDetailsFailed struct {
	MemberID    MemberID
	FailureKind ErrorKind
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildChangingMemberDetailsFailed creates a new ChangingMemberDetailsFailed event.
func BuildChangingMemberDetailsFailed(
	memberID MemberID,
	failureKind ErrorKind,
	failureInfo string,
	occurredAt time.Time,
) ChangingMemberDetailsFailed {

	return ChangingMemberDetailsFailed{
		MemberID:    memberID,
		FailureKind: failureKind,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ChangingMemberDetailsFailed) EventType() string {
	return ChangingMemberDetailsFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChangingMemberDetailsFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ChangingMemberDetailsFailed) IsErrorEvent() bool {
	return true
}

// ToError converts the failure into the typed Error returned to the caller.
func (e ChangingMemberDetailsFailed) ToError() error {
	return NewError(e.FailureKind, "%s: %s", ChangingMemberDetailsFailedEventType, e.FailureInfo)
}
