package titles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/query/titles"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
)

func Test_QueryHandler_FiltersByTitleType(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	book := fixtures.GivenBook(t, store, 1)
	dvd := fixtures.GivenDvd(t, store, 2)
	handler := titles.NewQueryHandler(store)

	testCases := []struct {
		name     string
		query    titles.Query
		expected []core.TitleID
	}{
		{name: "all variants", query: titles.BuildQuery(), expected: []core.TitleID{book.ID, dvd.ID}},
		{name: "books only", query: titles.BuildQueryForType(core.TitleTypeBook), expected: []core.TitleID{book.ID}},
		{name: "dvds only", query: titles.BuildQueryForType(core.TitleTypeDvd), expected: []core.TitleID{dvd.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(context.Background(), tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, len(tc.expected), result.Count)
			for i, id := range tc.expected {
				assert.Equal(t, id, result.Titles[i].ID)
			}
		})
	}
}

func Test_QueryHandler_UnknownTitleType(t *testing.T) {
	// act
	_, err := titles.NewQueryHandler(memengine.NewStore()).Handle(context.Background(), titles.BuildQueryForType("Vinyl"))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
