package queueitemdetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// QueueItemDetails represents the query result.
type QueueItemDetails struct {
	Item core.QueueItem
}
