package prolongrental

import (
	"fmt"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Decide implements the business logic to determine whether a rental entry can be prolonged.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A rental entry addressed by EntryID, MemberID, and TitleID
//	WHEN: ProlongRental command is received
//	ERROR: the shared entry preconditions of core.EntryAccess (NotFound, Mismatch, AlreadyReturned)
//	ERROR: ProlongLimitReached if the entry was prolonged 2 times
//	THEN: RentalProlonged, the period restarts now and the due date covers one more period
func Decide(access core.EntryAccess, command Command) core.DecisionResult {
	if violation, violated := access.Violation(); violated {
		return failed(command, violation.Kind, violation.Message)
	}

	if !access.Entry.CanBeProlonged() {
		return failed(command, core.KindProlongLimitReached,
			fmt.Sprintf("rental entry %d was already prolonged %d times", command.EntryID, access.Entry.TimesProlongued))
	}

	return core.SuccessDecision(core.BuildRentalProlonged(*access.Entry, command.OccurredAt))
}

func failed(command Command, kind core.ErrorKind, info string) core.DecisionResult {
	event := core.BuildProlongingRentalFailed(
		command.EntryID,
		command.MemberID,
		command.TitleID,
		kind,
		info,
		command.OccurredAt,
	)

	return core.ErrorDecision(event, event.ToError())
}
