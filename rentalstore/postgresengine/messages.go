package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/internal/adapters"
)

const (
	statementSaveMessage       = "save_message"
	statementMessagesForMember = "messages_for_member"
)

// messageStore writes every message in its own short transaction.
type messageStore struct {
	store *Store
}

func (m messageStore) Save(ctx context.Context, message core.Message) (core.Message, error) {
	err := m.store.runTx(ctx, operationMessages, adapters.TxOptions{}, func(ctx context.Context, u *unitOfWork) error {
		rows, err := u.query(ctx, statementSaveMessage,
			dialect.Insert(tableMessages).Rows(goqu.Record{
				colMemberID: message.MemberID,
				colSubject:  message.Subject,
				colBody:     message.Body,
				colSendDate: message.SendDate,
			}).Returning(colID),
		)
		if err != nil {
			return err
		}

		message.ID, err = single(ctx, u, rows, scanID)

		return err
	})
	if err != nil {
		return core.Message{}, err
	}

	return message, nil
}

func (m messageStore) ForMember(ctx context.Context, memberID core.MemberID) ([]core.Message, error) {
	var found []core.Message

	err := m.store.runTx(ctx, operationMessages, adapters.TxOptions{ReadOnly: true}, func(ctx context.Context, u *unitOfWork) error {
		rows, err := u.query(ctx, statementMessagesForMember,
			dialect.From(tableMessages).
				Select(messageColumns...).
				Where(goqu.C(colMemberID).Eq(memberID)).
				Order(goqu.C(colID).Asc()),
		)
		if err != nil {
			return err
		}

		found, err = collect(ctx, u, rows, scanMessage)

		return err
	})

	return found, err
}
