// Package rentalstore provides the storage abstractions the rental and waitlist features depend on.
//
// This package defines the repository-style contracts (InventoryStore, MemberStore, RentalLedger,
// WaitlistStore, Outbox, MessageStore), the unit-of-work that makes one rental decision atomic,
// the EntryFilter used by the ledger queries, the OutboxRecord DTO, and common error definitions.
//
// Implementations live in sub-packages:
//   - memengine: in-memory, process-local, used by tests and the demo mode
//   - postgresengine: PostgreSQL via pgx, database/sql, or sqlx
//
// Common usage pattern:
//
//	err := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
//		title, err := uow.Inventory().GetTitle(ctx, titleID)
//		if err != nil {
//			return err
//		}
//
//		return uow.Inventory().AdjustCopies(ctx, title.ID, -1)
//	})
//
// A returned ErrConcurrencyConflict means another transaction changed the same title first,
// the whole unit of work was rolled back and can be retried.
package rentalstore
