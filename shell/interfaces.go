package shell

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// ExposesHandlerResult is implemented by every command result that embeds HandlerResult.
type ExposesHandlerResult interface {
	Meta() HandlerResult
}

// CoreCommandHandler defines the contract for components that process commands without observability concerns.
// It is designed to be wrapped with the decorators in the observable package.
type CoreCommandHandler[C Command, R ExposesHandlerResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// CoreQueryHandler defines the contract for components that answer queries without observability concerns.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ViewsRentals is what query handlers need from a store: a read-only unit of work.
type ViewsRentals interface {
	View(ctx context.Context, fn rentalstore.TxFunc) error
}

// Notifier delivers a member notification.
// An error means the delivery did not happen, callers decide whether that matters.
type Notifier interface {
	Send(ctx context.Context, memberID int64, subject, body string) error
}

// Clock returns the current time, handlers take one to make due dates and fees testable.
type Clock func() time.Time

// SystemClock is the Clock used outside of tests.
func SystemClock() time.Time {
	return time.Now().UTC()
}
