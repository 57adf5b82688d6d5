package returntitle

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeReturned means the entry is closed, Result.Fee holds the late fee (zero if in time).
	OutcomeReturned = "returned"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result is what a successful ReturnTitle command produced.
type Result struct {
	shell.HandlerResult
	Entry core.RentalEntry
	Fee   decimal.Decimal
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Apply -> Commit -> Notify.
// The TitleReturned outbox record is written in the same unit of work as the entry and the copies.
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

	result.HandlerResult = shell.NewSuccessResult(retryMetrics, OutcomeReturned)
	shell.DeliverNotifications(ctx, h.notifier, notifications, h.logger, h.metrics)

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, core.Notifications, error) {
	var result Result
	var notifications core.Notifications

	ctx = rentalstore.WithStrongConsistency(ctx)

	err := h.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		access, err := shell.LoadEntryAccess(ctx, uow, command.EntryID, command.MemberID, command.TitleID)
		if err != nil {
			return err
		}

		decision := Decide(access, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		event, ok := decision.Event.(core.TitleReturned)
		if !ok {
			return nil
		}

		title, err := uow.Inventory().GetTitle(ctx, command.TitleID)
		if err != nil {
			return err
		}

		member, err := uow.Members().GetMember(ctx, command.MemberID)
		if err != nil {
			return err
		}

		returned := event.ApplyTo(*access.Entry)
		if err := uow.Ledger().Update(ctx, returned); err != nil {
			return err
		}

		if delta := copiesToRestock(title); delta != 0 {
			if err := uow.Inventory().AdjustCopies(ctx, title.ID, delta); err != nil {
				return err
			}
		}

		record, err := rentalstore.BuildOutboxRecordFromEvent(event)
		if err != nil {
			return err
		}

		if err := uow.Outbox().Append(ctx, record); err != nil {
			return err
		}

		result = Result{Entry: returned, Fee: event.Fee}
		notifications = core.Notifications{core.ReturnedNotification(member, title)}
		if event.HasFee() {
			notifications = append(notifications, core.OverdueFeeNotification(member, event.Fee))
		}

		return nil
	})

	return result, notifications, err
}
