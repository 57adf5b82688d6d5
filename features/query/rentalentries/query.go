package rentalentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "RentalEntries"
)

// Query represents the intent to list rental entries. A zero TitleID means every title.
type Query struct {
	TitleID core.TitleID
}

// BuildQuery creates a new Query over the whole ledger.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForTitle creates a new Query restricted to one title.
func BuildQueryForTitle(titleID core.TitleID) Query {
	return Query{
		TitleID: titleID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
