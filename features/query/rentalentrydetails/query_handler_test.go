package rentalentrydetails_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/query/rentalentrydetails"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_QueryHandler_ReturnsEntry(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	entry := fixtures.GivenActiveRental(t, store, fixtures.GivenMember(t, store, "Hopper"), fixtures.GivenBook(t, store, 1), fixtures.FixedNow())

	// act
	result, err := rentalentrydetails.NewQueryHandler(store).Handle(context.Background(), rentalentrydetails.BuildQuery(entry.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, entry, result.Entry)
}

func Test_QueryHandler_UnknownEntry(t *testing.T) {
	// act
	_, err := rentalentrydetails.NewQueryHandler(memengine.NewStore()).Handle(context.Background(), rentalentrydetails.BuildQuery(8))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
