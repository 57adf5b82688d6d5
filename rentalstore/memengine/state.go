package memengine

import (
	"maps"
	"slices"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

type state struct {
	titles       map[core.TitleID]core.Title
	members      map[core.MemberID]core.Member
	entries      map[core.RentalEntryID]core.RentalEntry
	queueItems   map[core.QueueItemID]core.QueueItem
	outbox       rentalstore.OutboxRecords
	nextTitleID  core.TitleID
	nextMemberID core.MemberID
	nextEntryID  core.RentalEntryID
	nextQueueID  core.QueueItemID
}

func newState() *state {
	return &state{
		titles:     make(map[core.TitleID]core.Title),
		members:    make(map[core.MemberID]core.Member),
		entries:    make(map[core.RentalEntryID]core.RentalEntry),
		queueItems: make(map[core.QueueItemID]core.QueueItem),
	}
}

// clone copies the state deep enough that writes to the copy never reach the original.
// Title details and ReturnDate pointers are never mutated in place, so sharing them is fine.
func (s *state) clone() *state {
	return &state{
		titles:       maps.Clone(s.titles),
		members:      maps.Clone(s.members),
		entries:      maps.Clone(s.entries),
		queueItems:   maps.Clone(s.queueItems),
		outbox:       slices.Clone(s.outbox),
		nextTitleID:  s.nextTitleID,
		nextMemberID: s.nextMemberID,
		nextEntryID:  s.nextEntryID,
		nextQueueID:  s.nextQueueID,
	}
}
