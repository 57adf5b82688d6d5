package titlewaitlist

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "TitleWaitlist"
)

// Query represents the intent to read the unresolved queue items of a title.
type Query struct {
	TitleID core.TitleID
}

// BuildQuery creates a new Query with the provided title ID.
func BuildQuery(titleID core.TitleID) Query {
	return Query{
		TitleID: titleID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
