package queueitems

const (
	queryType = "QueueItems"
)

// Query represents the intent to list the whole waitlist.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
