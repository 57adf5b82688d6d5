package core

import (
	"time"
)

// WaitingMemberNotifiedEventType is the event type identifier.
const WaitingMemberNotifiedEventType = "WaitingMemberNotified"

// WaitingMemberNotified represents when the waitlist handed a returned title to a waiting member.
type WaitingMemberNotified struct {
	QueueItemID QueueItemID
	MemberID    MemberID
	TitleID     TitleID
	OccurredAt  OccurredAt
}

// BuildWaitingMemberNotified creates a new WaitingMemberNotified event.
func BuildWaitingMemberNotified(item QueueItem, occurredAt time.Time) WaitingMemberNotified {
	return WaitingMemberNotified{
		QueueItemID: item.ID,
		MemberID:    item.MemberID,
		TitleID:     item.TitleID,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e WaitingMemberNotified) EventType() string {
	return WaitingMemberNotifiedEventType
}

// HasOccurredAt returns when this event occurred.
func (e WaitingMemberNotified) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e WaitingMemberNotified) IsErrorEvent() bool {
	return false
}
