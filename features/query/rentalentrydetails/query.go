package rentalentrydetails

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "RentalEntryDetails"
)

// Query represents the intent to read one rental entry.
type Query struct {
	EntryID core.RentalEntryID
}

// BuildQuery creates a new Query with the provided entry ID.
func BuildQuery(entryID core.RentalEntryID) Query {
	return Query{
		EntryID: entryID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
