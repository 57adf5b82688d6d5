package memengine

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

type unitOfWork struct {
	store    *Store
	state    *state
	readOnly bool
}

func (u *unitOfWork) Inventory() rentalstore.InventoryStore { return u }
func (u *unitOfWork) Members() rentalstore.MemberStore      { return memberView{u} }
func (u *unitOfWork) Ledger() rentalstore.RentalLedger      { return ledgerView{u} }
func (u *unitOfWork) Waitlist() rentalstore.WaitlistStore   { return waitlistView{u} }
func (u *unitOfWork) Outbox() rentalstore.Outbox            { return outboxView{u} }
func (u *unitOfWork) Catalog() rentalstore.Catalog          { return catalogView{u} }

func (u *unitOfWork) beginWrite(operation string) error {
	if u.readOnly {
		return ErrReadOnlyView
	}

	return u.store.fault(operation)
}

/***** inventory *****/

func (u *unitOfWork) GetTitle(_ context.Context, id core.TitleID) (core.Title, error) {
	title, ok := u.state.titles[id]
	if !ok {
		return core.Title{}, rentalstore.ErrRecordNotFound
	}

	return title, nil
}

func (u *unitOfWork) ListTitles(_ context.Context, titleType core.TitleType) ([]core.Title, error) {
	found := make([]core.Title, 0)
	for _, title := range u.state.titles {
		if titleType == "" || title.Type == titleType {
			found = append(found, title)
		}
	}

	slices.SortFunc(found, func(a, b core.Title) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return found, nil
}

func (u *unitOfWork) AdjustCopies(_ context.Context, id core.TitleID, delta int) error {
	if err := u.beginWrite(OpAdjustCopies); err != nil {
		return err
	}

	title, ok := u.state.titles[id]
	if !ok {
		return rentalstore.ErrRecordNotFound
	}

	title.AvailableCopies += delta
	if !title.CopiesWithinBounds() {
		return rentalstore.ErrConcurrencyConflict
	}

	u.state.titles[id] = title

	return nil
}

/***** members *****/

type memberView struct{ u *unitOfWork }

func (v memberView) GetMember(_ context.Context, id core.MemberID) (core.Member, error) {
	member, ok := v.u.state.members[id]
	if !ok {
		return core.Member{}, rentalstore.ErrRecordNotFound
	}

	return member, nil
}

func (v memberView) Exists(_ context.Context, id core.MemberID) (bool, error) {
	_, ok := v.u.state.members[id]

	return ok, nil
}

func (v memberView) FindByPersonalID(_ context.Context, personalID string) (core.Member, error) {
	for _, member := range v.u.state.members {
		if member.PersonalID == personalID {
			return member, nil
		}
	}

	return core.Member{}, rentalstore.ErrRecordNotFound
}

func (v memberView) ListMembers(_ context.Context) ([]core.Member, error) {
	found := make([]core.Member, 0, len(v.u.state.members))
	for _, member := range v.u.state.members {
		found = append(found, member)
	}

	slices.SortFunc(found, func(a, b core.Member) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return found, nil
}

/***** ledger *****/

type ledgerView struct{ u *unitOfWork }

func (v ledgerView) ActiveEntriesFor(ctx context.Context, memberID core.MemberID) ([]core.RentalEntry, error) {
	return v.Find(ctx, rentalstore.BuildEntryFilter().ForAnyMemberOf(memberID).OnlyUnreturned().Finalize())
}

func (v ledgerView) GetByID(_ context.Context, id core.RentalEntryID) (core.RentalEntry, error) {
	entry, ok := v.u.state.entries[id]
	if !ok {
		return core.RentalEntry{}, rentalstore.ErrRecordNotFound
	}

	return entry, nil
}

func (v ledgerView) Create(_ context.Context, entry core.RentalEntry) (core.RentalEntry, error) {
	if err := v.u.beginWrite(OpCreateEntry); err != nil {
		return core.RentalEntry{}, err
	}

	v.u.state.nextEntryID++
	entry.ID = v.u.state.nextEntryID
	v.u.state.entries[entry.ID] = entry

	return entry, nil
}

func (v ledgerView) Update(_ context.Context, entry core.RentalEntry) error {
	if err := v.u.beginWrite(OpUpdateEntry); err != nil {
		return err
	}

	stored, ok := v.u.state.entries[entry.ID]
	if !ok {
		return rentalstore.ErrRecordNotFound
	}

	if stored.IsReturned() {
		return rentalstore.ErrConcurrencyConflict
	}

	v.u.state.entries[entry.ID] = entry

	return nil
}

func (v ledgerView) Find(_ context.Context, filter rentalstore.EntryFilter) ([]core.RentalEntry, error) {
	found := make([]core.RentalEntry, 0)
	for _, entry := range v.u.state.entries {
		if filter.Matches(entry) {
			found = append(found, entry)
		}
	}

	slices.SortFunc(found, func(a, b core.RentalEntry) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return found, nil
}

/***** waitlist *****/

type waitlistView struct{ u *unitOfWork }

func (v waitlistView) UnresolvedFor(_ context.Context, titleID core.TitleID) ([]core.QueueItem, error) {
	found := make([]core.QueueItem, 0)
	for _, item := range v.u.state.queueItems {
		if item.TitleID == titleID && !item.IsResolved {
			found = append(found, item)
		}
	}

	slices.SortFunc(found, func(a, b core.QueueItem) int {
		if c := a.TimeAdded.Compare(b.TimeAdded); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return found, nil
}

func (v waitlistView) GetByID(_ context.Context, id core.QueueItemID) (core.QueueItem, error) {
	item, ok := v.u.state.queueItems[id]
	if !ok {
		return core.QueueItem{}, rentalstore.ErrRecordNotFound
	}

	return item, nil
}

func (v waitlistView) All(_ context.Context) ([]core.QueueItem, error) {
	found := make([]core.QueueItem, 0, len(v.u.state.queueItems))
	for _, item := range v.u.state.queueItems {
		found = append(found, item)
	}

	slices.SortFunc(found, func(a, b core.QueueItem) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return found, nil
}

func (v waitlistView) Create(_ context.Context, item core.QueueItem) (core.QueueItem, error) {
	if err := v.u.beginWrite(OpCreateQueueItem); err != nil {
		return core.QueueItem{}, err
	}

	v.u.state.nextQueueID++
	item.ID = v.u.state.nextQueueID
	v.u.state.queueItems[item.ID] = item

	return item, nil
}

func (v waitlistView) Resolve(_ context.Context, id core.QueueItemID) error {
	if err := v.u.beginWrite(OpResolveQueueItem); err != nil {
		return err
	}

	item, ok := v.u.state.queueItems[id]
	if !ok {
		return rentalstore.ErrRecordNotFound
	}

	if item.IsResolved {
		return rentalstore.ErrConcurrencyConflict
	}

	item.IsResolved = true
	v.u.state.queueItems[id] = item

	return nil
}

/***** outbox *****/

type outboxView struct{ u *unitOfWork }

func (v outboxView) Append(_ context.Context, record rentalstore.OutboxRecord) error {
	if err := v.u.beginWrite(OpAppendOutbox); err != nil {
		return err
	}

	v.u.state.outbox = append(v.u.state.outbox, record)

	return nil
}

func (v outboxView) Unpublished(_ context.Context, limit int) (rentalstore.OutboxRecords, error) {
	found := make(rentalstore.OutboxRecords, 0)
	for _, record := range v.u.state.outbox {
		if limit > 0 && len(found) >= limit {
			break
		}

		if !record.IsPublished() {
			found = append(found, record)
		}
	}

	return found, nil
}

func (v outboxView) MarkPublished(_ context.Context, id rentalstore.OutboxRecordID) error {
	if err := v.u.beginWrite(OpMarkPublished); err != nil {
		return err
	}

	for i, record := range v.u.state.outbox {
		if record.ID != id {
			continue
		}

		if record.IsPublished() {
			return rentalstore.ErrConcurrencyConflict
		}

		publishedAt := time.Now().UTC()
		record.PublishedAt = &publishedAt
		v.u.state.outbox[i] = record

		return nil
	}

	return rentalstore.ErrRecordNotFound
}

/***** catalog *****/

type catalogView struct{ u *unitOfWork }

func (v catalogView) AddTitle(_ context.Context, title core.Title) (core.Title, error) {
	if err := v.u.beginWrite(OpAddTitle); err != nil {
		return core.Title{}, err
	}

	if !title.CopiesWithinBounds() {
		return core.Title{}, rentalstore.ErrCopiesOutOfBounds
	}

	if title.ID == 0 {
		v.u.state.nextTitleID++
		title.ID = v.u.state.nextTitleID
	} else if title.ID > v.u.state.nextTitleID {
		v.u.state.nextTitleID = title.ID
	}

	v.u.state.titles[title.ID] = title

	return title, nil
}

func (v catalogView) AddMember(_ context.Context, member core.Member) (core.Member, error) {
	if err := v.u.beginWrite(OpAddMember); err != nil {
		return core.Member{}, err
	}

	if member.ID == 0 {
		v.u.state.nextMemberID++
		member.ID = v.u.state.nextMemberID
	} else if member.ID > v.u.state.nextMemberID {
		v.u.state.nextMemberID = member.ID
	}

	v.u.state.members[member.ID] = member

	return member, nil
}

func (v catalogView) UpdateMember(_ context.Context, member core.Member) error {
	if err := v.u.beginWrite(OpUpdateMember); err != nil {
		return err
	}

	if _, ok := v.u.state.members[member.ID]; !ok {
		return rentalstore.ErrRecordNotFound
	}

	v.u.state.members[member.ID] = member

	return nil
}
