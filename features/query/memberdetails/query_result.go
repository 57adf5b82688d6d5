package memberdetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// MemberDetails represents the query result.
type MemberDetails struct {
	Member            core.Member
	ActiveRentalCount int
}
