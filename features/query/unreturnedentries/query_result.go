package unreturnedentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// UnreturnedEntries represents the query result, ordered by entry id.
type UnreturnedEntries struct {
	MemberID core.MemberID
	Entries  []core.RentalEntry
	Count    int
}
