package membermessages

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// MemberMessages represents the query result, the newest message first.
type MemberMessages struct {
	MemberID core.MemberID
	Messages []core.Message
	Count    int
}
