package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	statementGetMember          = "get_member"
	statementListMembers        = "list_members"
	statementMemberByPersonalID = "member_by_personal_id"
	statementMemberExists       = "member_exists"
)

type members struct{ u *unitOfWork }

func (m members) GetMember(ctx context.Context, id core.MemberID) (core.Member, error) {
	rows, err := m.u.query(ctx, statementGetMember,
		dialect.From(tableMembers).Select(memberColumns...).Where(goqu.C(colID).Eq(id)),
	)
	if err != nil {
		return core.Member{}, err
	}

	return single(ctx, m.u, rows, scanMember)
}

func (m members) Exists(ctx context.Context, id core.MemberID) (bool, error) {
	return m.u.exists(ctx, statementMemberExists, tableMembers, id)
}

func (m members) ListMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := m.u.query(ctx, statementListMembers,
		dialect.From(tableMembers).Select(memberColumns...).Order(goqu.C(colID).Asc()),
	)
	if err != nil {
		return nil, err
	}

	return collect(ctx, m.u, rows, scanMember)
}

func (m members) FindByPersonalID(ctx context.Context, personalID string) (core.Member, error) {
	rows, err := m.u.query(ctx, statementMemberByPersonalID,
		dialect.From(tableMembers).
			Select(memberColumns...).
			Where(goqu.C(colPersonalID).Eq(personalID)).
			Order(goqu.C(colID).Asc()).
			Limit(1),
	)
	if err != nil {
		return core.Member{}, err
	}

	return single(ctx, m.u, rows, scanMember)
}
