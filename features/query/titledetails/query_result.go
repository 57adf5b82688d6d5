package titledetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// TitleDetails represents the query result.
type TitleDetails struct {
	Title          core.Title
	WaitingMembers int
}
