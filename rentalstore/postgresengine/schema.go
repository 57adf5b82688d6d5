package postgresengine

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const (
	dialectPostgres = "postgres"

	tableTitles        = "titles"
	tableMembers       = "members"
	tableRentalEntries = "rental_entries"
	tableQueueItems    = "queue_items"
	tableMessages      = "messages"
	tableOutbox        = "outbox"

	colID                   = "id"
	colTitleType            = "title_type"
	colAuthor               = "author"
	colName                 = "name"
	colAvailableCopies      = "available_copies"
	colTotalAvailableCopies = "total_available_copies"
	colNumberOfPages        = "number_of_pages"
	colISBN                 = "isbn"
	colPublishYear          = "publish_year"
	colNumberOfMinutes      = "number_of_minutes"
	colFirstName            = "first_name"
	colLastName             = "last_name"
	colPersonalID           = "personal_id"
	colDateOfBirth          = "date_of_birth"
	colMemberID             = "member_id"
	colTitleID              = "title_id"
	colRentedDate           = "rented_date"
	colMaxReturnDate        = "max_return_date"
	colReturnDate           = "return_date"
	colTimesProlongued      = "times_prolongued"
	colTimeAdded            = "time_added"
	colIsResolved           = "is_resolved"
	colSubject              = "subject"
	colBody                 = "body"
	colSendDate             = "send_date"
	colSequenceNumber       = "sequence_number"
	colEventType            = "event_type"
	colOccurredAt           = "occurred_at"
	colPayload              = "payload"
	colPublishedAt          = "published_at"

	castJsonb = "?::jsonb"
)

var dialect = goqu.Dialect(dialectPostgres)

var (
	titleColumns = []any{
		colID, colTitleType, colAuthor, colName, colAvailableCopies, colTotalAvailableCopies,
		colNumberOfPages, colISBN, colPublishYear, colNumberOfMinutes,
	}
	memberColumns    = []any{colID, colFirstName, colLastName, colPersonalID, colDateOfBirth}
	entryColumns     = []any{colID, colMemberID, colTitleID, colTitleType, colRentedDate, colMaxReturnDate, colReturnDate, colTimesProlongued}
	queueItemColumns = []any{colID, colMemberID, colTitleID, colTimeAdded, colIsResolved}
	messageColumns   = []any{colID, colMemberID, colSubject, colBody, colSendDate}
	outboxColumns    = []any{colID, colEventType, colOccurredAt, colPayload, colPublishedAt}
)
