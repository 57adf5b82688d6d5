package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	statementGetTitle     = "get_title"
	statementListTitles   = "list_titles"
	statementAdjustCopies = "adjust_copies"
)

type inventory struct{ u *unitOfWork }

func (i inventory) GetTitle(ctx context.Context, id core.TitleID) (core.Title, error) {
	rows, err := i.u.query(ctx, statementGetTitle,
		dialect.From(tableTitles).Select(titleColumns...).Where(goqu.C(colID).Eq(id)),
	)
	if err != nil {
		return core.Title{}, err
	}

	return single(ctx, i.u, rows, scanTitle)
}

func (i inventory) ListTitles(ctx context.Context, titleType core.TitleType) ([]core.Title, error) {
	query := dialect.From(tableTitles).Select(titleColumns...).Order(goqu.C(colID).Asc())
	if titleType != "" {
		query = query.Where(goqu.C(colTitleType).Eq(string(titleType)))
	}

	rows, err := i.u.query(ctx, statementListTitles, query)
	if err != nil {
		return nil, err
	}

	return collect(ctx, i.u, rows, scanTitle)
}

// AdjustCopies is a guarded UPDATE: the row only changes if the new counter stays within bounds.
func (i inventory) AdjustCopies(ctx context.Context, id core.TitleID, delta int) error {
	rowsAffected, err := i.u.exec(ctx, statementAdjustCopies,
		dialect.Update(tableTitles).
			Set(goqu.Record{colAvailableCopies: goqu.L(colAvailableCopies+" + ?", delta)}).
			Where(
				goqu.C(colID).Eq(id),
				goqu.L(colAvailableCopies+" + ? BETWEEN 0 AND "+colTotalAvailableCopies, delta),
			),
	)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return i.u.missingOrConflict(ctx, statementAdjustCopies, tableTitles, id)
	}

	return nil
}
