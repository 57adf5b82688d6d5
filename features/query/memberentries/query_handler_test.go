package memberentries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/returntitle"
	"github.com/AntonStoeckl/library-rentals-go/features/query/memberentries"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

func Test_QueryHandler_ReturnsActiveAndReturnedEntries(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	book := fixtures.GivenBook(t, store, 2)
	member := fixtures.GivenMember(t, store, "Lovelace")
	other := fixtures.GivenMember(t, store, "Hopper")

	first := fixtures.GivenActiveRental(t, store, member, book, fixtures.FixedNow())
	_, err := returntitle.NewCommandHandler(store, spies.NewNotifierSpy()).
		Handle(ctx, returntitle.BuildCommand(first.ID, member.ID, book.ID, fixtures.FixedNow()))
	require.NoError(t, err)
	second := fixtures.GivenActiveRental(t, store, member, book, fixtures.FixedNow())
	fixtures.GivenActiveRental(t, store, other, book, fixtures.FixedNow())

	// act
	result, err := memberentries.NewQueryHandler(store).Handle(ctx, memberentries.BuildQuery(member.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.ActiveCount)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, first.ID, result.Entries[0].ID)
	assert.True(t, result.Entries[0].IsReturned())
	assert.Equal(t, second.ID, result.Entries[1].ID)
}

func Test_QueryHandler_UnknownMember(t *testing.T) {
	// act
	_, err := memberentries.NewQueryHandler(memengine.NewStore()).
		Handle(context.Background(), memberentries.BuildQuery(7))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
