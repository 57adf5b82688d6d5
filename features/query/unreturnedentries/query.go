package unreturnedentries

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	queryType = "UnreturnedEntries"
)

// Query represents the intent to list unreturned entries. A zero MemberID means all members.
type Query struct {
	MemberID core.MemberID
}

// BuildQuery creates a new Query over all members.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForMember creates a new Query restricted to one member.
func BuildQueryForMember(memberID core.MemberID) Query {
	return Query{
		MemberID: memberID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
