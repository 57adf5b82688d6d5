package core

import (
	"time"
)

// RentalProlongedEventType is the event type identifier.
const RentalProlongedEventType = "RentalProlonged"

// RentalProlonged represents when an active rental entry got another rental period.
type RentalProlonged struct {
	RentalEntryID   RentalEntryID
	MemberID        MemberID
	TitleID         TitleID
	TimesProlongued int
	RentedDate      time.Time
	MaxReturnDate   time.Time
	OccurredAt      OccurredAt
}

// BuildRentalProlonged creates a new RentalProlonged event for the given entry.
// The renewal clock restarts at occurredAt, and the due date covers one extra period per prolongation.
func BuildRentalProlonged(entry RentalEntry, occurredAt time.Time) RentalProlonged {
	rentedDate := ToOccurredAt(occurredAt)
	timesProlonged := entry.TimesProlongued + 1

	return RentalProlonged{
		RentalEntryID:   entry.ID,
		MemberID:        entry.MemberID,
		TitleID:         entry.TitleID,
		TimesProlongued: timesProlonged,
		RentedDate:      rentedDate,
		MaxReturnDate:   DueDateFor(entry.TitleType, rentedDate, timesProlonged),
		OccurredAt:      rentedDate,
	}
}

// EventType returns the event type identifier.
func (e RentalProlonged) EventType() string {
	return RentalProlongedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalProlonged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RentalProlonged) IsErrorEvent() bool {
	return false
}

// ApplyTo returns the entry with the prolongation applied.
func (e RentalProlonged) ApplyTo(entry RentalEntry) RentalEntry {
	entry.TimesProlongued = e.TimesProlongued
	entry.RentedDate = e.RentedDate
	entry.MaxReturnDate = e.MaxReturnDate

	return entry
}
