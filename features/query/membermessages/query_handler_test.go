package membermessages_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/features/query/membermessages"
	"github.com/AntonStoeckl/library-rentals-go/notify/inbox"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_QueryHandler_ReturnsInboxNewestFirst(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	member := fixtures.GivenMember(t, store, "Lovelace")
	available := fixtures.GivenBook(t, store, 1)
	sold := fixtures.GivenDvd(t, store, 0)

	clock := fixtures.FixedNow()
	notifier := inbox.NewNotifier(store.Messages(), inbox.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	rent := renttitle.NewCommandHandler(store, notifier)

	_, err := rent.Handle(ctx, renttitle.BuildCommand(member.ID, available.ID, fixtures.FixedNow()))
	require.NoError(t, err)
	_, err = rent.Handle(ctx, renttitle.BuildCommand(member.ID, sold.ID, fixtures.FixedNow()))
	require.NoError(t, err)

	// act
	result, err := membermessages.NewQueryHandler(store).Handle(ctx, membermessages.BuildQuery(member.ID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "You were added to Queue", result.Messages[0].Subject)
	assert.Equal(t, "Thank you for renting", result.Messages[1].Subject)
	assert.Contains(t, result.Messages[1].Body, "Dune")
}

func Test_QueryHandler_UnknownMember(t *testing.T) {
	// act
	_, err := membermessages.NewQueryHandler(memengine.NewStore()).Handle(context.Background(), membermessages.BuildQuery(9))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
