package core

import (
	"time"
)

// TitleID identifies a Title (Book or Dvd).
type TitleID = int64

// MemberID identifies a Member.
type MemberID = int64

// RentalEntryID identifies a RentalEntry.
type RentalEntryID = int64

// QueueItemID identifies a QueueItem.
type QueueItemID = int64

// MessageID identifies a Message.
type MessageID = int64

// OccurredAt represents when something happened in the domain.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// CalendarDate truncates t to midnight UTC of the same calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
