package memberentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "MemberEntries"
)

// Query represents the intent to read the rental history of a member.
type Query struct {
	MemberID core.MemberID
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(memberID core.MemberID) Query {
	return Query{
		MemberID: memberID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
