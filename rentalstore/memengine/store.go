package memengine

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// ErrReadOnlyView is returned by write operations inside View.
var ErrReadOnlyView = errors.New("write operation inside read-only view")

// Operation names passed to a FaultInjector.
const (
	OpAddTitle         = "add_title"
	OpAddMember        = "add_member"
	OpUpdateMember     = "update_member"
	OpAdjustCopies     = "adjust_copies"
	OpCreateEntry      = "create_entry"
	OpUpdateEntry      = "update_entry"
	OpCreateQueueItem  = "create_queue_item"
	OpResolveQueueItem = "resolve_queue_item"
	OpAppendOutbox     = "append_outbox"
	OpMarkPublished    = "mark_published"
	OpSaveMessage      = "save_message"
)

// FaultInjector is consulted before each write, a non-nil result fails that write.
type FaultInjector func(operation string) error

// Option defines a functional option for configuring a Store.
type Option func(*Store)

// WithFaultInjector installs a FaultInjector, tests use it to simulate storage failures.
func WithFaultInjector(injector FaultInjector) Option {
	return func(s *Store) {
		s.faults = injector
	}
}

// Store is the in-memory rentalstore.Store.
type Store struct {
	mu       sync.RWMutex
	state    *state
	messages *messageStore
	faults   FaultInjector
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{state: newState()}
	for _, option := range options {
		option(s)
	}

	s.messages = &messageStore{store: s}

	return s
}

// WithinTx runs fn against a copy of the state and installs the copy only if fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn rentalstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &unitOfWork{store: s, state: working}); err != nil {
		return err
	}

	s.state = working

	return nil
}

// View runs fn against the live state, write operations fail with ErrReadOnlyView.
func (s *Store) View(ctx context.Context, fn rentalstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &unitOfWork{store: s, state: s.state, readOnly: true})
}

// Messages returns the member inbox store.
func (s *Store) Messages() rentalstore.MessageStore {
	return s.messages
}

func (s *Store) fault(operation string) error {
	if s.faults == nil {
		return nil
	}

	return s.faults(operation)
}
