package rentalstore

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// InventoryStore gives access to Title records and their availability counters.
type InventoryStore interface {
	// GetTitle returns ErrRecordNotFound for unknown ids.
	GetTitle(ctx context.Context, id core.TitleID) (core.Title, error)

	// ListTitles returns the titles of one variant ordered by id, or all titles for an empty titleType.
	ListTitles(ctx context.Context, titleType core.TitleType) ([]core.Title, error)

	// AdjustCopies adds delta to AvailableCopies, atomically guarded to stay within 0..TotalAvailableCopies.
	// A guard violation on an existing title is reported as ErrConcurrencyConflict.
	AdjustCopies(ctx context.Context, id core.TitleID, delta int) error
}

// MemberStore gives access to Member records.
type MemberStore interface {
	// GetMember returns ErrRecordNotFound for unknown ids.
	GetMember(ctx context.Context, id core.MemberID) (core.Member, error)
	Exists(ctx context.Context, id core.MemberID) (bool, error)

	// ListMembers returns all members ordered by id.
	ListMembers(ctx context.Context) ([]core.Member, error)

	// FindByPersonalID returns ErrRecordNotFound when no member carries the personal id.
	FindByPersonalID(ctx context.Context, personalID string) (core.Member, error)
}

// RentalLedger persists RentalEntry records.
type RentalLedger interface {
	ActiveEntriesFor(ctx context.Context, memberID core.MemberID) ([]core.RentalEntry, error)

	// GetByID returns ErrRecordNotFound for unknown ids.
	GetByID(ctx context.Context, id core.RentalEntryID) (core.RentalEntry, error)

	// Create assigns the ID and returns the stored entry.
	Create(ctx context.Context, entry core.RentalEntry) (core.RentalEntry, error)

	// Update overwrites an active entry. Updating an entry that is already returned is an ErrConcurrencyConflict.
	Update(ctx context.Context, entry core.RentalEntry) error

	Find(ctx context.Context, filter EntryFilter) ([]core.RentalEntry, error)
}

// WaitlistStore persists QueueItem records.
type WaitlistStore interface {
	// UnresolvedFor returns the waiting items of a title ordered by TimeAdded ascending.
	UnresolvedFor(ctx context.Context, titleID core.TitleID) ([]core.QueueItem, error)

	// GetByID returns ErrRecordNotFound for unknown ids.
	GetByID(ctx context.Context, id core.QueueItemID) (core.QueueItem, error)

	// All returns every item, resolved or not, ordered by id.
	All(ctx context.Context) ([]core.QueueItem, error)

	// Create assigns the ID and returns the stored item.
	Create(ctx context.Context, item core.QueueItem) (core.QueueItem, error)

	// Resolve marks an item as resolved. Resolving twice is an ErrConcurrencyConflict.
	Resolve(ctx context.Context, id core.QueueItemID) error
}

// Outbox persists messages produced by a unit of work until a relay has published them.
type Outbox interface {
	Append(ctx context.Context, record OutboxRecord) error

	// Unpublished returns up to limit records in the order they were appended.
	Unpublished(ctx context.Context, limit int) (OutboxRecords, error)

	MarkPublished(ctx context.Context, id OutboxRecordID) error
}

// Catalog registers titles and members. Member registration and seeding write through it, the rental features do not.
type Catalog interface {
	AddTitle(ctx context.Context, title core.Title) (core.Title, error)
	AddMember(ctx context.Context, member core.Member) (core.Member, error)

	// UpdateMember overwrites the personal data of a member, returning ErrRecordNotFound for unknown ids.
	UpdateMember(ctx context.Context, member core.Member) error
}

// MessageStore persists the messages delivered to member inboxes.
type MessageStore interface {
	Save(ctx context.Context, message core.Message) (core.Message, error)
	ForMember(ctx context.Context, memberID core.MemberID) ([]core.Message, error)
}

// UnitOfWork bundles the stores of one transaction.
type UnitOfWork interface {
	Inventory() InventoryStore
	Members() MemberStore
	Ledger() RentalLedger
	Waitlist() WaitlistStore
	Outbox() Outbox
	Catalog() Catalog
}

// TxFunc is the body of a unit of work. Returning an error rolls back everything it did.
type TxFunc func(ctx context.Context, uow UnitOfWork) error

// Store is implemented by each engine.
type Store interface {
	// WithinTx runs fn in one read-write transaction, committing only if fn returns nil.
	WithinTx(ctx context.Context, fn TxFunc) error

	// View runs fn in a read-only transaction. Write calls inside fn fail.
	View(ctx context.Context, fn TxFunc) error

	// Messages is not transactional, member inbox writes happen after a unit of work committed.
	Messages() MessageStore
}
