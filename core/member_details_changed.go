package core

import (
	"time"
)

// MemberDetailsChangedEventType is the event type identifier.
const MemberDetailsChangedEventType = "MemberDetailsChanged"

// MemberDetailsChanged represents when the personal data of a member was corrected.
type MemberDetailsChanged struct {
	MemberID    MemberID
	FirstName   string
	LastName    string
	PersonalID  string
	DateOfBirth time.Time
	OccurredAt  OccurredAt
}

// BuildMemberDetailsChanged creates a new MemberDetailsChanged event.
func BuildMemberDetailsChanged(member Member, occurredAt time.Time) MemberDetailsChanged {
	return MemberDetailsChanged{
		MemberID:    member.ID,
		FirstName:   member.FirstName,
		LastName:    member.LastName,
		PersonalID:  member.PersonalID,
		DateOfBirth: CalendarDate(member.DateOfBirth),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberDetailsChanged) EventType() string {
	return MemberDetailsChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberDetailsChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberDetailsChanged) IsErrorEvent() bool {
	return false
}

// ToMember returns the member with the changed details.
func (e MemberDetailsChanged) ToMember() Member {
	return Member{
		ID:          e.MemberID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		PersonalID:  e.PersonalID,
		DateOfBirth: e.DateOfBirth,
	}
}
