package pastdueentries

import (
	"slices"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Project builds the result from the entries the ledger matched, it is pure.
func Project(entries []core.RentalEntry, query Query) PastDueEntries {
	result := PastDueEntries{
		AsOf:    query.Now,
		Entries: make([]PastDueEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		if !entry.IsPastDue(query.Now) {
			continue
		}

		result.Entries = append(result.Entries, PastDueEntry{
			Entry:       entry,
			OverdueDays: core.OverdueDays(entry, query.Now),
			AccruedFee:  core.CalculateReturnalFee(entry, query.Now),
		})
	}

	slices.SortStableFunc(result.Entries, func(a, b PastDueEntry) int {
		return a.Entry.MaxReturnDate.Compare(b.Entry.MaxReturnDate)
	})

	result.Count = len(result.Entries)

	return result
}
