package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TitleReturnedEventType is the event type identifier.
const TitleReturnedEventType = "TitleReturned"

// TitleReturned represents when a member brought a rented copy back.
// It is also the message the waitlist consumes to hand the copy to a waiting member.
type TitleReturned struct {
	RentalEntryID RentalEntryID   `json:"rentalEntryId"`
	MemberID      MemberID        `json:"memberId"`
	TitleID       TitleID         `json:"titleId"`
	Fee           decimal.Decimal `json:"fee"`
	OccurredAt    OccurredAt      `json:"occurredAt"`
}

// BuildTitleReturned creates a new TitleReturned event with the late fee owed for the entry.
func BuildTitleReturned(entry RentalEntry, occurredAt time.Time) TitleReturned {
	returnedAt := ToOccurredAt(occurredAt)

	return TitleReturned{
		RentalEntryID: entry.ID,
		MemberID:      entry.MemberID,
		TitleID:       entry.TitleID,
		Fee:           CalculateReturnalFee(entry, returnedAt),
		OccurredAt:    returnedAt,
	}
}

// EventType returns the event type identifier.
func (e TitleReturned) EventType() string {
	return TitleReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e TitleReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e TitleReturned) IsErrorEvent() bool {
	return false
}

// HasFee reports whether the member owes a late fee.
func (e TitleReturned) HasFee() bool {
	return e.Fee.IsPositive()
}

// ApplyTo returns the entry in its terminal returned state.
func (e TitleReturned) ApplyTo(entry RentalEntry) RentalEntry {
	returnedAt := e.OccurredAt
	entry.ReturnDate = &returnedAt

	return entry
}
