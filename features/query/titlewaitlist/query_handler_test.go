package titlewaitlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/query/titlewaitlist"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_QueryHandler_ListsUnresolvedItemsOldestFirst(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	title := fixtures.GivenBook(t, store, 0)
	late := fixtures.GivenMember(t, store, "Late")
	early := fixtures.GivenMember(t, store, "Early")
	fixtures.GivenQueuedMember(t, store, late, title, fixtures.FixedNow().Add(time.Hour))
	fixtures.GivenQueuedMember(t, store, early, title, fixtures.FixedNow())

	// act
	result, err := titlewaitlist.NewQueryHandler(store).Handle(context.Background(), titlewaitlist.BuildQuery(title.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 0, result.AvailableCopies)
	assert.Equal(t, early.ID, result.Items[0].MemberID)
	assert.Equal(t, late.ID, result.Items[1].MemberID)
}

func Test_QueryHandler_UnknownTitle(t *testing.T) {
	// act
	_, err := titlewaitlist.NewQueryHandler(memengine.NewStore()).Handle(context.Background(), titlewaitlist.BuildQuery(3))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
