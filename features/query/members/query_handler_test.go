package members_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/features/query/members"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_QueryHandler_ListsMembersById(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	first := fixtures.GivenMember(t, store, "Hopper")
	second := fixtures.GivenMember(t, store, "Lovelace")

	// act
	result, err := members.NewQueryHandler(store).Handle(context.Background(), members.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, first.ID, result.Members[0].ID)
	assert.Equal(t, second.ID, result.Members[1].ID)
}

func Test_QueryHandler_EmptyRegister(t *testing.T) {
	// act
	result, err := members.NewQueryHandler(memengine.NewStore()).Handle(context.Background(), members.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Members)
}
