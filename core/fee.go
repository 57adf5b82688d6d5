package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverdueDays returns how many calendar days (UTC) now lies after the entry's MaxReturnDate, or 0.
func OverdueDays(entry RentalEntry, now time.Time) int {
	due := CalendarDate(entry.MaxReturnDate)
	today := CalendarDate(now)

	if !today.After(due) {
		return 0
	}

	return int(today.Sub(due).Hours() / 24)
}

// CalculateReturnalFee computes the late fee of an entry returned at now.
// It is pure: notifying the member about the fee is a separate step of the return.
func CalculateReturnalFee(entry RentalEntry, now time.Time) decimal.Decimal {
	days := OverdueDays(entry, now)
	if days == 0 {
		return decimal.Zero
	}

	return entry.TitleType.DailyFee().Mul(decimal.NewFromInt(int64(days)))
}
