package updatemember

import (
	"fmt"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Decide implements the business logic to determine whether the data of a member changes.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: The member addressed by MemberID, nil if unknown
//	WHEN: UpdateMember command is received
//	ERROR: NotFound if the member does not exist
//	IDEMPOTENCY: If the stored data already equals the command, nothing changes
//	THEN: MemberDetailsChanged otherwise
func Decide(member *core.Member, command Command) core.DecisionResult {
	if member == nil {
		event := core.BuildChangingMemberDetailsFailed(
			command.MemberID,
			core.KindNotFound,
			fmt.Sprintf("member %d not found", command.MemberID),
			command.OccurredAt,
		)

		return core.ErrorDecision(event, event.ToError())
	}

	changed := command.member()
	if sameDetails(*member, changed) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMemberDetailsChanged(changed, command.OccurredAt))
}

func sameDetails(a, b core.Member) bool {
	return a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.PersonalID == b.PersonalID &&
		a.DateOfBirth.Equal(b.DateOfBirth)
}
