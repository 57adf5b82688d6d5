package core

import (
	"time"
)

// MemberQueuedForTitleEventType is the event type identifier.
const MemberQueuedForTitleEventType = "MemberQueuedForTitle"

// MemberQueuedForTitle represents when a member was put on the waitlist of a title without available copies.
type MemberQueuedForTitle struct {
	MemberID   MemberID
	TitleID    TitleID
	OccurredAt OccurredAt
}

// BuildMemberQueuedForTitle creates a new MemberQueuedForTitle event.
func BuildMemberQueuedForTitle(memberID MemberID, titleID TitleID, occurredAt time.Time) MemberQueuedForTitle {
	return MemberQueuedForTitle{
		MemberID:   memberID,
		TitleID:    titleID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberQueuedForTitle) EventType() string {
	return MemberQueuedForTitleEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberQueuedForTitle) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false, being queued is a deferred success.
func (e MemberQueuedForTitle) IsErrorEvent() bool {
	return false
}

// ToQueueItem builds the new unresolved QueueItem this event stands for. The ID is assigned by the store.
func (e MemberQueuedForTitle) ToQueueItem() QueueItem {
	return QueueItem{
		MemberID:   e.MemberID,
		TitleID:    e.TitleID,
		TimeAdded:  e.OccurredAt,
		IsResolved: false,
	}
}
