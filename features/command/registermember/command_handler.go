package registermember

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeRegistered means a new member was created, Result.Member holds it.
	OutcomeRegistered = "registered"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result is what a RegisterMember command produced. Member is the new or the already registered member.
type Result struct {
	shell.HandlerResult
	Member core.Member
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Add -> Commit -> Notify.
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

// WithLogger sets the logger used to report a failed welcome message.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithMetrics sets the collector used to count failed welcome messages.
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
	var member core.Member
	var registered bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		member, registered, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, core.StorageFailure(err)
	}

	if !registered {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), Member: member}, nil
	}

	shell.DeliverNotifications(ctx, h.notifier, core.Notifications{core.WelcomeNotification(member)}, h.logger, h.metrics)

	return Result{
		HandlerResult: shell.NewSuccessResult(retryMetrics, OutcomeRegistered),
		Member:        member,
	}, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Member, bool, error) {
	var member core.Member
	var registered bool

	ctx = rentalstore.WithStrongConsistency(ctx)

	err := h.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		existing, err := shell.FoundOrNil(uow.Members().FindByPersonalID(ctx, command.PersonalID))
		if err != nil {
			return err
		}

		decision := Decide(existing, command)
		if decision.IsIdempotent() {
			member = *existing
			return nil
		}

		event, ok := decision.Event.(core.MemberRegistered)
		if !ok {
			return nil
		}

		member, err = uow.Catalog().AddMember(ctx, event.ToMember())
		registered = err == nil

		return err
	})

	return member, registered, err
}
