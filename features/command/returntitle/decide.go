package returntitle

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Decide implements the business logic to determine whether a rental entry can be returned.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A rental entry addressed by EntryID, MemberID, and TitleID
//	WHEN: ReturnTitle command is received
//	ERROR: the shared entry preconditions of core.EntryAccess (NotFound, Mismatch, AlreadyReturned)
//	THEN: TitleReturned, carrying the late fee computed from the persisted due date
func Decide(access core.EntryAccess, command Command) core.DecisionResult {
	if violation, violated := access.Violation(); violated {
		event := core.BuildReturningTitleFailed(
			command.EntryID,
			command.MemberID,
			command.TitleID,
			violation.Kind,
			violation.Message,
			command.OccurredAt,
		)

		return core.ErrorDecision(event, event.ToError())
	}

	return core.SuccessDecision(core.BuildTitleReturned(*access.Entry, command.OccurredAt))
}

// copiesToRestock is 1, or 0 when all copies of the title are already in stock.
func copiesToRestock(title core.Title) int {
	if title.AllCopiesInStock() {
		return 0
	}

	return 1
}
