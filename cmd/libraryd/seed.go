package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const (
	logMsgSeeded   = "demo data seeded"
	logAttrTitles  = "titles_added"
	logAttrMembers = "members_added"
)

func demoTitles() []core.Title {
	return []core.Title{
		core.NewBook(1, "George Orwell", "1984", 5, core.BookDetails{NumberOfPages: 328, ISBN: "978-0451524935"}),
		core.NewBook(2, "Aldous Huxley", "Brave New World", 3, core.BookDetails{NumberOfPages: 268, ISBN: "978-0060850524"}),
		core.NewDvd(3, "Christopher Nolan", "Inception", 4, core.DvdDetails{PublishYear: 2010, NumberOfMinutes: 148}),
		core.NewDvd(4, "Steven Spielberg", "Jurassic Park", 2, core.DvdDetails{PublishYear: 1993, NumberOfMinutes: 127}),
	}
}

func demoMembers() []core.Member {
	return []core.Member{
		{ID: 1, FirstName: "John", LastName: "Doe", PersonalID: "123456789", DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, FirstName: "Jane", LastName: "Smith", PersonalID: "987654321", DateOfBirth: time.Date(1985, 7, 12, 0, 0, 0, 0, time.UTC)},
	}
}

// seedReport counts what a seed run added.
type seedReport struct {
	Titles  int
	Members int
}

// seedStore adds the demo catalog in one unit of work. Ids that already exist are left untouched.
func seedStore(ctx context.Context, store rentalstore.Store) (seedReport, error) {
	var report seedReport

	err := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		report = seedReport{}

		for _, title := range demoTitles() {
			_, err := uow.Inventory().GetTitle(ctx, title.ID)
			switch {
			case err == nil:
				continue
			case !errors.Is(err, rentalstore.ErrRecordNotFound):
				return err
			}

			if _, err := uow.Catalog().AddTitle(ctx, title); err != nil {
				return err
			}
			report.Titles++
		}

		for _, member := range demoMembers() {
			exists, err := uow.Members().Exists(ctx, member.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			if _, err := uow.Catalog().AddMember(ctx, member); err != nil {
				return err
			}
			report.Members++
		}

		return nil
	})

	return report, err
}

func seed(ctx context.Context, store rentalstore.Store, logger *slog.Logger) error {
	report, err := seedStore(ctx, store)
	if err != nil {
		return err
	}

	logger.Info(logMsgSeeded, logAttrTitles, report.Titles, logAttrMembers, report.Members)

	return nil
}
