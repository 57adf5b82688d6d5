package waitlist

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	// OutcomeNotified means a waiting member was told the title is available.
	OutcomeNotified = "notified"
)

// Store defines the interface needed by the EventHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
}

// Result tells whom the returned title was handed to.
// Notified is nil and the result idempotent when nobody was waiting.
type Result struct {
	shell.HandlerResult
	Notified *core.WaitingMemberNotified
}

// EventHandler reacts to returned titles.
type EventHandler struct {
	store        Store
	notifier     shell.Notifier
	policy       Policy
	clock        shell.Clock
	retryOptions []shell.RetryOption
}

// Option configures an EventHandler.
type Option func(*EventHandler)

// WithPolicy sets the selection policy, the default is PolicyLatestFirst.
func WithPolicy(policy Policy) Option {
	return func(h *EventHandler) {
		h.policy = policy
	}
}

// WithClock sets the clock for the WaitingMemberNotified timestamp.
func WithClock(clock shell.Clock) Option {
	return func(h *EventHandler) {
		h.clock = clock
	}
}

// WithRetryOptions sets a custom retry configuration for OnTitleReturned.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *EventHandler) {
		h.retryOptions = opts
	}
}

// NewEventHandler creates a new EventHandler with optional configuration.
func NewEventHandler(store Store, notifier shell.Notifier, opts ...Option) (EventHandler, error) {
	if store == nil {
		return EventHandler{}, shell.ErrNilStore
	}

	if notifier == nil {
		return EventHandler{}, shell.ErrNilNotifier
	}

	handler := EventHandler{
		store:    store,
		notifier: notifier,
		policy:   PolicyLatestFirst,
		clock:    shell.SystemClock,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler, nil
}

// OnTitleReturned runs HandleWithin in its own unit of work, retrying on concurrency conflicts.
func (h EventHandler) OnTitleReturned(ctx context.Context, titleID core.TitleID) (Result, error) {
	var notified *core.WaitingMemberNotified

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(rentalstore.WithStrongConsistency(retryCtx), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
			var execErr error
			notified, execErr = h.HandleWithin(ctx, uow, titleID)

			return execErr
		})
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, core.StorageFailure(err)
	}

	if notified == nil {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics)}, nil
	}

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics, OutcomeNotified), Notified: notified}, nil
}

// HandleWithin does the work of OnTitleReturned inside a unit of work owned by the caller.
// The outbox relay uses it to mark the TitleReturned record published in the same unit of work.
// A notifier error is returned as is, so the caller rolls back and the item stays unresolved.
func (h EventHandler) HandleWithin(
	ctx context.Context,
	uow rentalstore.UnitOfWork,
	titleID core.TitleID,
) (*core.WaitingMemberNotified, error) {

	items, err := uow.Waitlist().UnresolvedFor(ctx, titleID)
	if err != nil {
		return nil, err
	}

	item, found := Select(items, h.policy)
	if !found {
		return nil, nil
	}

	title, err := uow.Inventory().GetTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	member, err := uow.Members().GetMember(ctx, item.MemberID)
	if err != nil {
		return nil, err
	}

	notification := core.TitleAvailableNotification(member, title)
	if err := h.notifier.Send(ctx, notification.MemberID, notification.Subject, notification.Body); err != nil {
		return nil, err
	}

	if err := uow.Waitlist().Resolve(ctx, item.ID); err != nil {
		return nil, err
	}

	event := core.BuildWaitingMemberNotified(item, h.clock())

	return &event, nil
}

// Consume handles one TitleReturned outbox record, it is the waitlist's entry point for the outbox relay.
func (h EventHandler) Consume(ctx context.Context, uow rentalstore.UnitOfWork, record rentalstore.OutboxRecord) error {
	event, err := record.DecodeTitleReturned()
	if err != nil {
		return err
	}

	_, err = h.HandleWithin(ctx, uow, event.TitleID)

	return err
}
