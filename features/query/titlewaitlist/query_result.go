package titlewaitlist

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// TitleWaitlist represents the query result.
type TitleWaitlist struct {
	TitleID         core.TitleID
	AvailableCopies int
	Items           []core.QueueItem
	Count           int
}
