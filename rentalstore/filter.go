package rentalstore

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

/***** EntryFilter *****/

// EntryFilter selects RentalEntry records in RentalLedger.Find.
// Criteria are AND-combined, the ids of one criterion are OR-combined.
type EntryFilter struct {
	memberIDs      []core.MemberID
	titleIDs       []core.TitleID
	onlyUnreturned bool
	dueBefore      *time.Time
}

func (f EntryFilter) MemberIDs() []core.MemberID {
	return f.memberIDs
}

func (f EntryFilter) TitleIDs() []core.TitleID {
	return f.titleIDs
}

func (f EntryFilter) OnlyUnreturned() bool {
	return f.onlyUnreturned
}

// DueBefore returns the exclusive upper bound for MaxReturnDate, if set.
func (f EntryFilter) DueBefore() (time.Time, bool) {
	if f.dueBefore == nil {
		return time.Time{}, false
	}

	return *f.dueBefore, true
}

// IsEmpty reports whether the filter matches every entry.
func (f EntryFilter) IsEmpty() bool {
	return len(f.memberIDs) == 0 && len(f.titleIDs) == 0 && !f.onlyUnreturned && f.dueBefore == nil
}

// Matches evaluates the filter in memory. Engines without a query language use it directly.
func (f EntryFilter) Matches(entry core.RentalEntry) bool {
	if len(f.memberIDs) > 0 && !slices.Contains(f.memberIDs, entry.MemberID) {
		return false
	}

	if len(f.titleIDs) > 0 && !slices.Contains(f.titleIDs, entry.TitleID) {
		return false
	}

	if f.onlyUnreturned && entry.IsReturned() {
		return false
	}

	if f.dueBefore != nil && !entry.MaxReturnDate.Before(*f.dueBefore) {
		return false
	}

	return true
}

/***** EntryFilterBuilder *****/

// EntryFilterBuilder builds an EntryFilter to be used by the engine-specific RentalLedger implementations.
//
// Only the combinations the rental queries need are supported:
//
//   - empty filter
//   - (member OR member...)
//   - (title OR title...)
//   - unreturned
//   - unreturned AND due before
//   - any of the above AND-combined
type EntryFilterBuilder interface {
	// ForAnyMemberOf restricts the filter to entries of the given members.
	//
	// It sanitizes the input:
	//	- removing non-positive ids
	//	- sorting the ids
	//	- removing duplicate ids
	ForAnyMemberOf(memberID core.MemberID, memberIDs ...core.MemberID) EntryFilterBuilder

	// ForAnyTitleOf restricts the filter to entries of the given titles, sanitized like ForAnyMemberOf.
	ForAnyTitleOf(titleID core.TitleID, titleIDs ...core.TitleID) EntryFilterBuilder

	// OnlyUnreturned restricts the filter to entries without a ReturnDate.
	OnlyUnreturned() EntryFilterBuilder

	// PastDueAt restricts the filter to unreturned entries whose MaxReturnDate lies on a calendar day before now.
	PastDueAt(now time.Time) EntryFilterBuilder

	// Finalize returns the EntryFilter.
	Finalize() EntryFilter

	// MatchingAnyEntry directly creates an empty EntryFilter.
	MatchingAnyEntry() EntryFilter
}

type entryFilterBuilder struct {
	filter EntryFilter
}

// BuildEntryFilter creates an EntryFilterBuilder.
func BuildEntryFilter() EntryFilterBuilder {
	return &entryFilterBuilder{}
}

func (b *entryFilterBuilder) ForAnyMemberOf(memberID core.MemberID, memberIDs ...core.MemberID) EntryFilterBuilder {
	b.filter.memberIDs = sanitizeIDs(append(b.filter.memberIDs, append([]core.MemberID{memberID}, memberIDs...)...))

	return b
}

func (b *entryFilterBuilder) ForAnyTitleOf(titleID core.TitleID, titleIDs ...core.TitleID) EntryFilterBuilder {
	b.filter.titleIDs = sanitizeIDs(append(b.filter.titleIDs, append([]core.TitleID{titleID}, titleIDs...)...))

	return b
}

func (b *entryFilterBuilder) OnlyUnreturned() EntryFilterBuilder {
	b.filter.onlyUnreturned = true

	return b
}

func (b *entryFilterBuilder) PastDueAt(now time.Time) EntryFilterBuilder {
	dueBefore := core.CalendarDate(now)
	b.filter.onlyUnreturned = true
	b.filter.dueBefore = &dueBefore

	return b
}

func (b *entryFilterBuilder) Finalize() EntryFilter {
	return b.filter
}

func (b *entryFilterBuilder) MatchingAnyEntry() EntryFilter {
	return EntryFilter{}
}

func sanitizeIDs(ids []int64) []int64 {
	ids = slices.DeleteFunc(ids, func(id int64) bool { return id <= 0 })
	slices.Sort(ids)

	return slices.Compact(ids)
}
