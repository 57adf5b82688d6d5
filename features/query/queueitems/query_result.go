package queueitems

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// QueueItems represents the query result, ordered by item id.
type QueueItems struct {
	Items []core.QueueItem
	Count int
}
