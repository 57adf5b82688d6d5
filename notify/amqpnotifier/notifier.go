// Package amqpnotifier publishes member notifications to a RabbitMQ exchange,
// where a mail or push gateway picks them up.
package amqpnotifier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const contentTypeJSON = "application/json"

var (
	// ErrEmptyExchange is returned when a Notifier is built without an exchange name.
	ErrEmptyExchange = errors.New("amqp exchange must not be empty")

	// ErrPublishFailed wraps a failed publish.
	ErrPublishFailed = errors.New("publishing notification failed")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher is the part of *amqp.Channel the Notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Payload is the JSON body of a published message.
type Payload struct {
	MemberID int64     `json:"memberId"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// Notifier implements shell.Notifier by publishing persistent JSON messages.
type Notifier struct {
	publisher  Publisher
	exchange   string
	routingKey string
	clock      shell.Clock
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock sets the clock for the message timestamp.
func WithClock(clock shell.Clock) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

// NewNotifier creates a Notifier publishing to exchange with routingKey.
func NewNotifier(publisher Publisher, exchange, routingKey string, opts ...Option) (*Notifier, error) {
	if exchange == "" {
		return nil, ErrEmptyExchange
	}

	n := &Notifier{
		publisher:  publisher,
		exchange:   exchange,
		routingKey: routingKey,
		clock:      shell.SystemClock,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Send publishes one notification.
func (n *Notifier) Send(ctx context.Context, memberID int64, subject, body string) error {
	now := n.clock()

	payload, err := json.Marshal(Payload{MemberID: memberID, Subject: subject, Body: body, SentAt: now})
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	msg := amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now,
		Body:         payload,
	}

	if err := n.publisher.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, msg); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	return nil
}
