package core

import (
	"time"
)

// TitleRentedEventType is the event type identifier.
const TitleRentedEventType = "TitleRented"

// TitleRented represents when a copy of a title was lent to a member.
type TitleRented struct {
	MemberID      MemberID
	TitleID       TitleID
	TitleType     TitleType
	RentedDate    time.Time
	MaxReturnDate time.Time
	OccurredAt    OccurredAt
}

// BuildTitleRented creates a new TitleRented event, deriving the due date from the title type.
func BuildTitleRented(memberID MemberID, titleID TitleID, titleType TitleType, occurredAt time.Time) TitleRented {
	rentedDate := ToOccurredAt(occurredAt)

	return TitleRented{
		MemberID:      memberID,
		TitleID:       titleID,
		TitleType:     titleType,
		RentedDate:    rentedDate,
		MaxReturnDate: DueDateFor(titleType, rentedDate, 0),
		OccurredAt:    rentedDate,
	}
}

// EventType returns the event type identifier.
func (e TitleRented) EventType() string {
	return TitleRentedEventType
}

// HasOccurredAt returns when this event occurred.
func (e TitleRented) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e TitleRented) IsErrorEvent() bool {
	return false
}

// ToRentalEntry builds the new active RentalEntry this event stands for. The ID is assigned by the ledger.
func (e TitleRented) ToRentalEntry() RentalEntry {
	return RentalEntry{
		MemberID:        e.MemberID,
		TitleID:         e.TitleID,
		TitleType:       e.TitleType,
		RentedDate:      e.RentedDate,
		MaxReturnDate:   e.MaxReturnDate,
		TimesProlongued: 0,
	}
}
