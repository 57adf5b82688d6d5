package titles

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "Titles"
)

// Query represents the intent to list titles. An empty TitleType means every variant.
type Query struct {
	TitleType core.TitleType
}

// BuildQuery creates a new Query over all titles.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForType creates a new Query restricted to one variant.
func BuildQueryForType(titleType core.TitleType) Query {
	return Query{
		TitleType: titleType,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
