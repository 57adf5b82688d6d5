package shell

import "errors"

var (
	// ErrNilStore is returned when a handler is constructed without a store.
	ErrNilStore = errors.New("store must not be nil")

	// ErrNilNotifier is returned when a handler is constructed without a notifier.
	ErrNilNotifier = errors.New("notifier must not be nil")
)
