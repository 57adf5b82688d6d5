package rentalstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrEmptyEventType = errors.New("event type must not be empty")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutboxRecordID identifies an OutboxRecord.
type OutboxRecordID = uuid.UUID

// OutboxRecords is an alias type for a slice of OutboxRecord
type OutboxRecords = []OutboxRecord

// OutboxRecord is a DTO (data transfer object) used by the Outbox to stage events for a relay.
//
// It is built on scalars to be agnostic of the implementation of domain events in the client code.
//
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildOutboxRecord
//   - BuildOutboxRecordFromEvent
type OutboxRecord struct {
	ID          OutboxRecordID
	EventType   string
	OccurredAt  time.Time
	PayloadJSON []byte
	PublishedAt *time.Time
}

// BuildOutboxRecord is a factory method for OutboxRecord.
//
// It assigns a fresh ID. Returns an error if eventType is empty or payloadJSON is not valid JSON.
func BuildOutboxRecord(eventType string, occurredAt time.Time, payloadJSON []byte) (OutboxRecord, error) {
	if eventType == "" {
		return OutboxRecord{}, ErrEmptyEventType
	}

	if !json.Valid(payloadJSON) {
		return OutboxRecord{}, ErrInvalidPayloadJSON
	}

	return OutboxRecord{
		ID:          uuid.New(),
		EventType:   eventType,
		OccurredAt:  occurredAt,
		PayloadJSON: payloadJSON,
	}, nil
}

// BuildOutboxRecordFromEvent marshals a domain event into an OutboxRecord.
func BuildOutboxRecordFromEvent(event core.DomainEvent) (OutboxRecord, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return OutboxRecord{}, errors.Join(ErrInvalidPayloadJSON, err)
	}

	return BuildOutboxRecord(event.EventType(), event.HasOccurredAt(), payloadJSON)
}

// IsPublished reports whether a relay already handed the record over.
func (r OutboxRecord) IsPublished() bool {
	return r.PublishedAt != nil
}

// DecodeTitleReturned unmarshals the payload of a TitleReturned record.
func (r OutboxRecord) DecodeTitleReturned() (core.TitleReturned, error) {
	var event core.TitleReturned
	if r.EventType != core.TitleReturnedEventType {
		return event, errors.Join(ErrInvalidPayloadJSON, errors.New("unexpected event type "+r.EventType))
	}

	if err := json.Unmarshal(r.PayloadJSON, &event); err != nil {
		return event, errors.Join(ErrInvalidPayloadJSON, err)
	}

	return event, nil
}
