package pastdueentries

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "PastDueEntries"
)

// Query represents the intent to list overdue entries as of Now.
type Query struct {
	Now time.Time
}

// BuildQuery creates a new Query for the given instant.
func BuildQuery(now time.Time) Query {
	return Query{
		Now: core.ToOccurredAt(now),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
