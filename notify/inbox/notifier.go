// Package inbox delivers member notifications by storing them as messages in the member's inbox.
package inbox

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// Notifier implements shell.Notifier on top of a rentalstore.MessageStore.
type Notifier struct {
	messages rentalstore.MessageStore
	clock    shell.Clock
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock sets the clock for the SendDate of stored messages.
func WithClock(clock shell.Clock) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

// NewNotifier creates a Notifier writing to messages.
func NewNotifier(messages rentalstore.MessageStore, opts ...Option) *Notifier {
	n := &Notifier{
		messages: messages,
		clock:    shell.SystemClock,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Send stores the notification as a message.
func (n *Notifier) Send(ctx context.Context, memberID int64, subject, body string) error {
	_, err := n.messages.Save(ctx, core.Message{
		MemberID: memberID,
		Subject:  subject,
		Body:     body,
		SendDate: n.clock(),
	})

	return err
}
