package queueitemdetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "QueueItemDetails"
)

// Query represents the intent to read one waitlist item.
type Query struct {
	ItemID core.QueueItemID
}

// BuildQuery creates a new Query with the provided item ID.
func BuildQuery(itemID core.QueueItemID) Query {
	return Query{
		ItemID: itemID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
