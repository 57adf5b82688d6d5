package pastdueentries

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// PastDueEntry is one overdue entry with how late it is as of the query instant.
type PastDueEntry struct {
	Entry       core.RentalEntry
	OverdueDays int
	AccruedFee  decimal.Decimal
}

// PastDueEntries represents the query result, sorted by MaxReturnDate, the longest overdue first.
type PastDueEntries struct {
	AsOf    time.Time
	Entries []PastDueEntry
	Count   int
}
