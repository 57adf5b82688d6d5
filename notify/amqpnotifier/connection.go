package amqpnotifier

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrConnectFailed wraps failures while dialing and preparing the channel.
var ErrConnectFailed = errors.New("connecting to amqp broker failed")

// Connection owns the broker connection and the channel the Notifier publishes on.
type Connection struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

// Dial connects to url, opens a channel, and declares a durable topic exchange.
func Dial(url, exchange string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrConnectFailed, err)
	}

	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, errors.Join(ErrConnectFailed, err)
	}

	return &Connection{conn: conn, Channel: channel}, nil
}

// Close closes the channel and the connection.
func (c *Connection) Close() error {
	return errors.Join(c.Channel.Close(), c.conn.Close())
}
