package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const (
	statementAddTitle     = "add_title"
	statementAddMember    = "add_member"
	statementUpdateMember = "update_member"
	statementSyncSequence = "sync_sequence"
)

type catalog struct{ u *unitOfWork }

func (c catalog) AddTitle(ctx context.Context, title core.Title) (core.Title, error) {
	if !title.CopiesWithinBounds() {
		return core.Title{}, rentalstore.ErrCopiesOutOfBounds
	}

	record := goqu.Record{
		colTitleType:            string(title.Type),
		colAuthor:               title.Author,
		colName:                 title.Name,
		colAvailableCopies:      title.AvailableCopies,
		colTotalAvailableCopies: title.TotalAvailableCopies,
	}

	if title.Book != nil {
		record[colNumberOfPages] = title.Book.NumberOfPages
		record[colISBN] = title.Book.ISBN
	}

	if title.Dvd != nil {
		record[colPublishYear] = title.Dvd.PublishYear
		record[colNumberOfMinutes] = title.Dvd.NumberOfMinutes
	}

	id, err := c.insert(ctx, statementAddTitle, tableTitles, title.ID, record)
	if err != nil {
		return core.Title{}, err
	}

	title.ID = id

	return title, nil
}

func (c catalog) AddMember(ctx context.Context, member core.Member) (core.Member, error) {
	id, err := c.insert(ctx, statementAddMember, tableMembers, member.ID, goqu.Record{
		colFirstName:   member.FirstName,
		colLastName:    member.LastName,
		colPersonalID:  member.PersonalID,
		colDateOfBirth: member.DateOfBirth,
	})
	if err != nil {
		return core.Member{}, err
	}

	member.ID = id

	return member, nil
}

func (c catalog) UpdateMember(ctx context.Context, member core.Member) error {
	rowsAffected, err := c.u.exec(ctx, statementUpdateMember,
		dialect.Update(tableMembers).
			Set(goqu.Record{
				colFirstName:   member.FirstName,
				colLastName:    member.LastName,
				colPersonalID:  member.PersonalID,
				colDateOfBirth: member.DateOfBirth,
			}).
			Where(goqu.C(colID).Eq(member.ID)),
	)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return rentalstore.ErrRecordNotFound
	}

	return nil
}

// insert keeps an explicit id and moves the serial sequence past it.
func (c catalog) insert(ctx context.Context, statement, table string, id int64, record goqu.Record) (int64, error) {
	if id != 0 {
		record[colID] = id
	}

	rows, err := c.u.query(ctx, statement, dialect.Insert(table).Rows(record).Returning(colID))
	if err != nil {
		return 0, err
	}

	assigned, err := single(ctx, c.u, rows, scanID)
	if err != nil {
		return 0, err
	}

	if id == 0 {
		return assigned, nil
	}

	_, err = c.u.exec(ctx, statementSyncSequence, dialect.From(table).Select(
		goqu.L("setval(pg_get_serial_sequence(?, ?), MAX(id))", table, colID),
	))
	if err != nil {
		return 0, err
	}

	return assigned, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return *t
}
