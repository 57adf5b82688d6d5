package returntitle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/returntitle"
)

const day = 24 * time.Hour

func Test_Decide_Success_InTimeWithoutFee(t *testing.T) {
	// arrange
	rentedAt := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	entry := givenEntry(core.TitleTypeBook, rentedAt)
	access := core.EntryAccess{EntryID: entry.ID, MemberID: 1, TitleID: 7, Entry: &entry, MemberExists: true}

	// act
	result := returntitle.Decide(access, returntitle.BuildCommand(entry.ID, 1, 7, rentedAt.Add(21*day)))

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.TitleReturned)
	require.True(t, ok, "expected TitleReturned, got %T", result.Event)
	assert.False(t, event.HasFee())
	assert.Equal(t, core.TitleID(7), event.TitleID)
}

func Test_Decide_Success_BookReturnedFourDaysLate(t *testing.T) {
	// arrange
	rentedAt := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	entry := givenEntry(core.TitleTypeBook, rentedAt)
	access := core.EntryAccess{EntryID: entry.ID, MemberID: 1, TitleID: 7, Entry: &entry, MemberExists: true}

	// act
	result := returntitle.Decide(access, returntitle.BuildCommand(entry.ID, 1, 7, rentedAt.Add(25*day)))

	// assert
	require.NoError(t, result.HasError())
	event := result.Event.(core.TitleReturned)
	assert.True(t, event.Fee.Equal(decimal.RequireFromString("0.40")), "fee was %s", event.Fee)
}

func Test_Decide_Error_AlreadyReturned(t *testing.T) {
	// arrange
	rentedAt := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	returnedAt := rentedAt.Add(day)
	entry := givenEntry(core.TitleTypeDvd, rentedAt)
	entry.ReturnDate = &returnedAt
	access := core.EntryAccess{EntryID: entry.ID, MemberID: 1, TitleID: 7, Entry: &entry, MemberExists: true}

	// act
	result := returntitle.Decide(access, returntitle.BuildCommand(entry.ID, 1, 7, rentedAt.Add(2*day)))

	// assert
	assert.False(t, result.HasStateChange())
	assert.ErrorIs(t, result.HasError(), core.ErrAlreadyReturned)
	assert.IsType(t, core.ReturningTitleFailed{}, result.Event)
}

func Test_Decide_Error_EntryMissing(t *testing.T) {
	// act
	result := returntitle.Decide(
		core.EntryAccess{EntryID: 5, MemberID: 1, TitleID: 7, MemberExists: true},
		returntitle.BuildCommand(5, 1, 7, time.Now()),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func givenEntry(titleType core.TitleType, rentedAt time.Time) core.RentalEntry {
	entry := core.BuildTitleRented(1, 7, titleType, rentedAt).ToRentalEntry()
	entry.ID = 3

	return entry
}
