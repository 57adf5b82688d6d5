package members

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Members represents the query result, ordered by member id.
type Members struct {
	Members []core.Member
	Count   int
}
