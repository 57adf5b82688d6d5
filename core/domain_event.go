package core

import "time"

// DomainEvent is a fact produced by a Decide function. Failure events carry the rule that was violated.
type DomainEvent interface {
	EventType() string
	HasOccurredAt() time.Time
	IsErrorEvent() bool
}

// DomainEvents is a list of DomainEvent.
type DomainEvents = []DomainEvent
