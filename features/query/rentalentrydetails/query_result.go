package rentalentrydetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// RentalEntryDetails represents the query result.
type RentalEntryDetails struct {
	Entry core.RentalEntry
}
