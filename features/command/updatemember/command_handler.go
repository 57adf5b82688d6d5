package updatemember

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeUpdated means the member data changed, Result.Member holds the new state.
	OutcomeUpdated = "updated"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result is what a successful UpdateMember command produced.
type Result struct {
	shell.HandlerResult
	Member core.Member
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Update -> Commit.
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
	var member core.Member
	var changed bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		member, changed, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, core.StorageFailure(err)
	}

	if !changed {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), Member: member}, nil
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(retryMetrics, OutcomeUpdated),
		Member:        member,
	}, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Member, bool, error) {
	var member core.Member
	var changed bool

	ctx = rentalstore.WithStrongConsistency(ctx)

	err := h.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		stored, err := shell.FoundOrNil(uow.Members().GetMember(ctx, command.MemberID))
		if err != nil {
			return err
		}

		decision := Decide(stored, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		event, ok := decision.Event.(core.MemberDetailsChanged)
		if !ok {
			member = *stored
			return nil
		}

		member = event.ToMember()
		changed = true

		return uow.Catalog().UpdateMember(ctx, member)
	})

	return member, changed, err
}
