package prolongrental

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeProlonged means the entry got another period, Result.Entry holds its new state.
	OutcomeProlonged = "prolonged"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result is what a successful ProlongRental command produced.
type Result struct {
	shell.HandlerResult
	Entry core.RentalEntry
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Update -> Commit.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        Store
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var entry core.RentalEntry

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		entry, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, core.StorageFailure(err)
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(retryMetrics, OutcomeProlonged),
		Entry:         entry,
	}, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.RentalEntry, error) {
	var prolonged core.RentalEntry

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

		event, ok := decision.Event.(core.RentalProlonged)
		if !ok {
			return nil
		}

		prolonged = event.ApplyTo(*access.Entry)

		return uow.Ledger().Update(ctx, prolonged)
	})

	return prolonged, err
}
