package postgresengine

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/internal/adapters"
)

func scanTitle(rows adapters.DBRows) (core.Title, error) {
	var (
		title     core.Title
		titleType string
		pages     sql.NullInt64
		isbn      sql.NullString
		year      sql.NullInt64
		minutes   sql.NullInt64
	)

	err := rows.Scan(
		&title.ID, &titleType, &title.Author, &title.Name, &title.AvailableCopies, &title.TotalAvailableCopies,
		&pages, &isbn, &year, &minutes,
	)
	if err != nil {
		return core.Title{}, err
	}

	title.Type = core.TitleType(titleType)

	switch title.Type {
	case core.TitleTypeBook:
		title.Book = &core.BookDetails{NumberOfPages: int(pages.Int64), ISBN: isbn.String}
	case core.TitleTypeDvd:
		title.Dvd = &core.DvdDetails{PublishYear: int(year.Int64), NumberOfMinutes: int(minutes.Int64)}
	}

	return title, nil
}

func scanMember(rows adapters.DBRows) (core.Member, error) {
	var member core.Member

	err := rows.Scan(&member.ID, &member.FirstName, &member.LastName, &member.PersonalID, &member.DateOfBirth)
	member.DateOfBirth = member.DateOfBirth.UTC()

	return member, err
}

func scanEntry(rows adapters.DBRows) (core.RentalEntry, error) {
	var (
		entry      core.RentalEntry
		titleType  string
		returnDate sql.NullTime
	)

	err := rows.Scan(
		&entry.ID, &entry.MemberID, &entry.TitleID, &titleType,
		&entry.RentedDate, &entry.MaxReturnDate, &returnDate, &entry.TimesProlongued,
	)
	if err != nil {
		return core.RentalEntry{}, err
	}

	entry.TitleType = core.TitleType(titleType)
	entry.RentedDate = entry.RentedDate.UTC()
	entry.MaxReturnDate = entry.MaxReturnDate.UTC()
	entry.ReturnDate = utcOrNil(returnDate)

	return entry, nil
}

func scanQueueItem(rows adapters.DBRows) (core.QueueItem, error) {
	var item core.QueueItem

	err := rows.Scan(&item.ID, &item.MemberID, &item.TitleID, &item.TimeAdded, &item.IsResolved)
	item.TimeAdded = item.TimeAdded.UTC()

	return item, err
}

func scanMessage(rows adapters.DBRows) (core.Message, error) {
	var message core.Message

	err := rows.Scan(&message.ID, &message.MemberID, &message.Subject, &message.Body, &message.SendDate)
	message.SendDate = message.SendDate.UTC()

	return message, err
}

func scanOutboxRecord(rows adapters.DBRows) (rentalstore.OutboxRecord, error) {
	var (
		record      rentalstore.OutboxRecord
		id          uuid.UUID
		publishedAt sql.NullTime
	)

	err := rows.Scan(&id, &record.EventType, &record.OccurredAt, &record.PayloadJSON, &publishedAt)
	if err != nil {
		return rentalstore.OutboxRecord{}, err
	}

	record.ID = id
	record.OccurredAt = record.OccurredAt.UTC()
	record.PublishedAt = utcOrNil(publishedAt)

	return record, nil
}

func utcOrNil(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	utc := t.Time.UTC()

	return &utc
}
