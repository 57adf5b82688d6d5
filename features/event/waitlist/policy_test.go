package waitlist_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/event/waitlist"
)

func Test_Select(t *testing.T) {
	base := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
	items := []core.QueueItem{
		{ID: 1, MemberID: 10, TimeAdded: base},
		{ID: 2, MemberID: 20, TimeAdded: base.Add(time.Hour)},
		{ID: 3, MemberID: 30, TimeAdded: base.Add(2 * time.Hour)},
	}

	testCases := []struct {
		name       string
		items      []core.QueueItem
		policy     waitlist.Policy
		wantFound  bool
		wantMember core.MemberID
	}{
		{name: "latest first picks the newest", items: items, policy: waitlist.PolicyLatestFirst, wantFound: true, wantMember: 30},
		{name: "fcfs picks the oldest", items: items, policy: waitlist.PolicyFirstComeFirstServed, wantFound: true, wantMember: 10},
		{name: "single item", items: items[1:2], policy: waitlist.PolicyLatestFirst, wantFound: true, wantMember: 20},
		{name: "nobody waiting", items: nil, policy: waitlist.PolicyLatestFirst, wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			item, found := waitlist.Select(tc.items, tc.policy)

			// assert
			assert.Equal(t, tc.wantFound, found)
			if tc.wantFound {
				assert.Equal(t, tc.wantMember, item.MemberID)
			}
		})
	}
}

func Test_ParsePolicy(t *testing.T) {
	policy, err := waitlist.ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, waitlist.PolicyLatestFirst, policy)

	policy, err = waitlist.ParsePolicy(" FCFS ")
	assert.NoError(t, err)
	assert.Equal(t, waitlist.PolicyFirstComeFirstServed, policy)

	_, err = waitlist.ParsePolicy("random")
	assert.Error(t, err)
}
