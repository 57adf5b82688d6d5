package renttitle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
)

func Test_Decide_Rented_WhenCopyAvailableAndMemberBelowLimit(t *testing.T) {
	// arrange
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	snapshot := renttitle.Snapshot{
		Member: givenMember(1),
		Title:  givenBook(7, 2, 2),
	}
	command := renttitle.BuildCommand(1, 7, now)

	// act
	result := renttitle.Decide(snapshot, command)

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasStateChange())
	event, ok := result.Event.(core.TitleRented)
	require.True(t, ok, "expected TitleRented, got %T", result.Event)
	assert.Equal(t, core.MemberID(1), event.MemberID)
	assert.Equal(t, core.TitleID(7), event.TitleID)
	assert.Equal(t, now.Add(21*24*time.Hour), event.MaxReturnDate)
}

func Test_Decide_Rented_WhenMemberHoldsOneOtherTitle(t *testing.T) {
	// arrange
	now := time.Now()
	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 1, 1),
		ActiveEntries: []core.RentalEntry{givenActiveEntry(1, 8)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, now))

	// assert
	require.NoError(t, result.HasError())
	assert.IsType(t, core.TitleRented{}, result.Event)
}

func Test_Decide_Queued_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	now := time.Now()
	snapshot := renttitle.Snapshot{
		Member: givenMember(1),
		Title:  givenBook(7, 0, 3),
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, now))

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasStateChange())
	event, ok := result.Event.(core.MemberQueuedForTitle)
	require.True(t, ok, "expected MemberQueuedForTitle, got %T", result.Event)
	assert.Equal(t, core.MemberID(1), event.MemberID)
	assert.Equal(t, core.TitleID(7), event.TitleID)
}

func Test_Decide_Error_WhenMemberUnknown(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{Title: givenBook(7, 1, 1)}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrNotFound)
}

func Test_Decide_Error_WhenTitleUnknown(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{Member: givenMember(1)}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrNotFound)
}

func Test_Decide_Error_WhenMemberAlreadyRentsTheTitle(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 1, 2),
		ActiveEntries: []core.RentalEntry{givenActiveEntry(1, 7)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrAlreadyRented)
}

func Test_Decide_Error_AlreadyRentedWinsOverNoCopyLeft(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 0, 1),
		ActiveEntries: []core.RentalEntry{givenActiveEntry(1, 7)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrAlreadyRented)
}

func Test_Decide_Error_WhenMemberReachedRentalLimit(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 1, 1),
		ActiveEntries: []core.RentalEntry{givenActiveEntry(1, 8), givenActiveEntry(1, 9)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrMemberRentalLimitReached)
}

func Test_Decide_Error_LimitWinsOverQueueing(t *testing.T) {
	// arrange
	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 0, 1),
		ActiveEntries: []core.RentalEntry{givenActiveEntry(1, 8), givenActiveEntry(1, 9)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	assertFailure(t, result, core.ErrMemberRentalLimitReached)
}

func Test_Decide_IgnoresReturnedEntries(t *testing.T) {
	// arrange
	returned := givenActiveEntry(1, 7)
	returnedAt := time.Now().Add(-time.Hour)
	returned.ReturnDate = &returnedAt

	snapshot := renttitle.Snapshot{
		Member:        givenMember(1),
		Title:         givenBook(7, 1, 1),
		ActiveEntries: []core.RentalEntry{returned, givenActiveEntry(1, 8)},
	}

	// act
	result := renttitle.Decide(snapshot, renttitle.BuildCommand(1, 7, time.Now()))

	// assert
	require.NoError(t, result.HasError())
	assert.IsType(t, core.TitleRented{}, result.Event)
}

func givenMember(id core.MemberID) *core.Member {
	return &core.Member{ID: id, FirstName: "Ada", LastName: "Lovelace"}
}

func givenBook(id core.TitleID, available, total int) *core.Title {
	title := core.NewBook(id, "Ursula K. Le Guin", "The Dispossessed", total, core.BookDetails{})
	title.AvailableCopies = available

	return &title
}

func givenActiveEntry(memberID core.MemberID, titleID core.TitleID) core.RentalEntry {
	return core.BuildTitleRented(memberID, titleID, core.TitleTypeBook, time.Now().Add(-24*time.Hour)).ToRentalEntry()
}

func assertFailure(t *testing.T, result core.DecisionResult, expected error) {
	t.Helper()

	assert.False(t, result.HasStateChange())
	assert.ErrorIs(t, result.HasError(), expected)
	assert.IsType(t, core.RentingTitleFailed{}, result.Event)
}
