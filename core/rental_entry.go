package core

import (
	"time"
)

const (
	// MaxActiveRentalsPerMember is how many unreturned entries a member may hold at once.
	MaxActiveRentalsPerMember = 2

	// MaxTimesProlonged is how often one rental entry may be prolonged.
	MaxTimesProlonged = 2
)

// RentalEntry is the record of one member borrowing one title for a bounded period.
// A nil ReturnDate means the entry is active.
type RentalEntry struct {
	ID              RentalEntryID
	MemberID        MemberID
	TitleID         TitleID
	TitleType       TitleType
	RentedDate      time.Time
	MaxReturnDate   time.Time
	ReturnDate      *time.Time
	TimesProlongued int
}

// IsReturned reports whether the entry reached its terminal state.
func (e RentalEntry) IsReturned() bool {
	return e.ReturnDate != nil
}

// CanBeProlonged reports whether another prolongation is allowed.
func (e RentalEntry) CanBeProlonged() bool {
	return e.TimesProlongued < MaxTimesProlonged
}

// DueDateFor computes MaxReturnDate = rentedDate + rentalPeriod * (1 + timesProlonged).
func DueDateFor(titleType TitleType, rentedDate time.Time, timesProlonged int) time.Time {
	return rentedDate.Add(titleType.RentalPeriod() * time.Duration(1+timesProlonged))
}

// IsPastDue reports whether the calendar date of now lies after the calendar date of MaxReturnDate.
// Returned entries are never past due.
func (e RentalEntry) IsPastDue(now time.Time) bool {
	if e.IsReturned() {
		return false
	}

	return CalendarDate(now).After(CalendarDate(e.MaxReturnDate))
}
