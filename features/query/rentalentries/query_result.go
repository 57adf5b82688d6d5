package rentalentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// RentalEntries represents the query result, ordered by entry id.
type RentalEntries struct {
	TitleID core.TitleID
	Entries []core.RentalEntry
	Count   int
}
