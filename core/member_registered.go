package core

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a person signed up as a library member.
type MemberRegistered struct {
	FirstName   string
	LastName    string
	PersonalID  string
	DateOfBirth time.Time
	OccurredAt  OccurredAt
}

// BuildMemberRegistered creates a new MemberRegistered event. The date of birth is kept as a calendar date.
func BuildMemberRegistered(
	firstName string,
	lastName string,
	personalID string,
	dateOfBirth time.Time,
	occurredAt time.Time,
) MemberRegistered {

	return MemberRegistered{
		FirstName:   firstName,
		LastName:    lastName,
		PersonalID:  personalID,
		DateOfBirth: CalendarDate(dateOfBirth),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberRegistered) EventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberRegistered) IsErrorEvent() bool {
	return false
}

// ToMember builds the Member this event stands for. The ID is assigned by the catalog.
func (e MemberRegistered) ToMember() Member {
	return Member{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		PersonalID:  e.PersonalID,
		DateOfBirth: e.DateOfBirth,
	}
}
