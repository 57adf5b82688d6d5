package memberentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// MemberEntries represents the query result, ordered by entry id.
type MemberEntries struct {
	MemberID    core.MemberID
	Entries     []core.RentalEntry
	ActiveCount int
	Count       int
}
