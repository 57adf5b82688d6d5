package rentalstore

import "context"

// ConsistencyLevel tells an engine whether a View may read from a replica.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. It is what a context without a level gets.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency lets list queries read slightly stale data from a replica.
	EventualConsistency
)

type consistencyKey struct{}

// WithStrongConsistency marks ctx so that reads go to the primary.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, StrongConsistency)
}

// WithEventualConsistency marks ctx so that reads may go to a replica:
//
//	ctx = rentalstore.WithEventualConsistency(ctx)
//	err := store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error { ... })
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, EventualConsistency)
}

// ConsistencyFrom returns the level ctx was marked with, StrongConsistency by default.
func ConsistencyFrom(ctx context.Context) ConsistencyLevel {
	level, ok := ctx.Value(consistencyKey{}).(ConsistencyLevel)
	if !ok {
		return StrongConsistency
	}

	return level
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
