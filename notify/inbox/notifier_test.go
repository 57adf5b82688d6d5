package inbox_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/notify/inbox"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_Notifier_StoresMessage(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := inbox.NewNotifier(store.Messages(), inbox.WithClock(fixtures.FixedNow))

	// act
	err := notifier.Send(ctx, 4, "Thank you for renting", "Dear Mr/Mrs Hopper")

	// assert
	require.NoError(t, err)
	messages, err := store.Messages().ForMember(ctx, 4)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Thank you for renting", messages[0].Subject)
	assert.Equal(t, "Dear Mr/Mrs Hopper", messages[0].Body)
	assert.Equal(t, fixtures.FixedNow(), messages[0].SendDate)
	assert.NotZero(t, messages[0].ID)
}

func Test_Notifier_PropagatesStoreFailure(t *testing.T) {
	// arrange
	failure := errors.New("inbox full")
	store := memengine.NewStore(memengine.WithFaultInjector(func(operation string) error {
		if operation == memengine.OpSaveMessage {
			return failure
		}

		return nil
	}))

	// act
	err := inbox.NewNotifier(store.Messages()).Send(context.Background(), 1, "s", "b")

	// assert
	assert.ErrorIs(t, err, failure)
}
