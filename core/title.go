package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TitleType is the tag of the closed Title union.
type TitleType string

const (
	// TitleTypeBook tags a Title that is a Book.
	TitleTypeBook TitleType = "Book"

	// TitleTypeDvd tags a Title that is a Dvd.
	TitleTypeDvd TitleType = "Dvd"
)

const (
	bookRentalDays = 21
	dvdRentalDays  = 7
)

var (
	bookDailyFee = decimal.RequireFromString("0.10")
	dvdDailyFee  = decimal.RequireFromString("1.00")
)

// Valid reports whether t is one of the known variants.
func (t TitleType) Valid() bool {
	return t == TitleTypeBook || t == TitleTypeDvd
}

// RentalPeriod returns the base lending period of the variant.
func (t TitleType) RentalPeriod() time.Duration {
	switch t {
	case TitleTypeDvd:
		return dvdRentalDays * 24 * time.Hour
	default:
		return bookRentalDays * 24 * time.Hour
	}
}

// RentalDays returns the base lending period of the variant in calendar days.
func (t TitleType) RentalDays() int {
	switch t {
	case TitleTypeDvd:
		return dvdRentalDays
	default:
		return bookRentalDays
	}
}

// DailyFee returns the late fee per overdue day of the variant.
func (t TitleType) DailyFee() decimal.Decimal {
	switch t {
	case TitleTypeDvd:
		return dvdDailyFee
	default:
		return bookDailyFee
	}
}

// BookDetails holds the fields only a Book has.
type BookDetails struct {
	NumberOfPages int
	ISBN          string
}

// DvdDetails holds the fields only a Dvd has.
type DvdDetails struct {
	PublishYear     int
	NumberOfMinutes int
}

// Title is a catalog entry with copies available for lending.
// Type decides which of Book or Dvd is set, the other one is nil.
type Title struct {
	ID                   TitleID
	Type                 TitleType
	Author               string
	Name                 string
	AvailableCopies      int
	TotalAvailableCopies int
	Book                 *BookDetails
	Dvd                  *DvdDetails
}

// NewBook builds a Book title with all copies available.
func NewBook(id TitleID, author, name string, totalCopies int, details BookDetails) Title {
	return Title{
		ID:                   id,
		Type:                 TitleTypeBook,
		Author:               author,
		Name:                 name,
		AvailableCopies:      totalCopies,
		TotalAvailableCopies: totalCopies,
		Book:                 &details,
	}
}

// NewDvd builds a Dvd title with all copies available.
func NewDvd(id TitleID, author, name string, totalCopies int, details DvdDetails) Title {
	return Title{
		ID:                   id,
		Type:                 TitleTypeDvd,
		Author:               author,
		Name:                 name,
		AvailableCopies:      totalCopies,
		TotalAvailableCopies: totalCopies,
		Dvd:                  &details,
	}
}

// HasAvailableCopy reports whether at least one copy can be lent out.
func (t Title) HasAvailableCopy() bool {
	return t.AvailableCopies > 0
}

// AllCopiesInStock reports whether no copy is lent out.
func (t Title) AllCopiesInStock() bool {
	return t.AvailableCopies >= t.TotalAvailableCopies
}

// CopiesWithinBounds reports whether 0 <= AvailableCopies <= TotalAvailableCopies holds.
func (t Title) CopiesWithinBounds() bool {
	return t.AvailableCopies >= 0 && t.AvailableCopies <= t.TotalAvailableCopies
}
