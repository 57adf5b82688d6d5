package renttitle

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeRented means a copy was lent, Result.Entry is set.
	OutcomeRented = "rented"

	// OutcomeQueued means no copy was left and the member is waiting, Result.QueueItem is set.
	OutcomeQueued = "queued"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result is what a successful RentTitle command produced.
type Result struct {
	shell.HandlerResult
	Outcome   string
	Entry     *core.RentalEntry
	QueueItem *core.QueueItem
}

// IsQueued reports whether the member was put on the waitlist instead of getting a copy.
func (r Result) IsQueued() bool {
	return r.Outcome == OutcomeQueued
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Apply -> Commit -> Notify.
// External wrappers handle all observability concerns except failed notifications.
type CommandHandler struct {
	store        Store
	notifier     shell.Notifier
	logger       shell.Logger
	metrics      shell.MetricsCollector
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger used to report failed notifications.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithMetrics sets the collector used to count failed notifications.
func WithMetrics(metrics shell.MetricsCollector) Option {
	return func(h *CommandHandler) {
		h.metrics = metrics
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, notifier shell.Notifier, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		notifier: notifier,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
// Rule violations are returned as *core.Error, store failures as core.KindStorageFailure.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result
	var notifications core.Notifications

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, notifications, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, core.StorageFailure(err)
	}

	result.HandlerResult = shell.NewSuccessResult(retryMetrics, result.Outcome)
	shell.DeliverNotifications(ctx, h.notifier, notifications, h.logger, h.metrics)

	return result, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, core.Notifications, error) {
	var result Result
	var notifications core.Notifications

	ctx = rentalstore.WithStrongConsistency(ctx)

	err := h.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		snapshot, err := loadSnapshot(ctx, uow, command)
		if err != nil {
			return err
		}

		decision := Decide(snapshot, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		switch event := decision.Event.(type) {
		case core.TitleRented:
			if err := uow.Inventory().AdjustCopies(ctx, command.TitleID, -1); err != nil {
				return err
			}

			entry, err := uow.Ledger().Create(ctx, event.ToRentalEntry())
			if err != nil {
				return err
			}

			result = Result{Outcome: OutcomeRented, Entry: &entry}
			notifications = core.Notifications{core.RentedNotification(*snapshot.Member, *snapshot.Title)}

		case core.MemberQueuedForTitle:
			item, err := uow.Waitlist().Create(ctx, event.ToQueueItem())
			if err != nil {
				return err
			}

			result = Result{Outcome: OutcomeQueued, QueueItem: &item}
			notifications = core.Notifications{core.QueuedNotification(*snapshot.Member, *snapshot.Title)}
		}

		return nil
	})

	return result, notifications, err
}

func loadSnapshot(ctx context.Context, uow rentalstore.UnitOfWork, command Command) (Snapshot, error) {
	member, err := shell.FoundOrNil(uow.Members().GetMember(ctx, command.MemberID))
	if err != nil {
		return Snapshot{}, err
	}

	title, err := shell.FoundOrNil(uow.Inventory().GetTitle(ctx, command.TitleID))
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{Member: member, Title: title}
	if member == nil || title == nil {
		return snapshot, nil
	}

	snapshot.ActiveEntries, err = uow.Ledger().ActiveEntriesFor(ctx, command.MemberID)
	if err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
