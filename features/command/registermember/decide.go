package registermember

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Decide implements the business logic to determine whether a member should be registered.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A person with PersonalID, and the member already carrying that id, if any
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	ERROR: None (always succeeds)
//	IDEMPOTENCY: If a member with the personal id exists, nothing is registered
func Decide(existing *core.Member, command Command) core.DecisionResult {
	if existing != nil {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMemberRegistered(
		command.FirstName,
		command.LastName,
		command.PersonalID,
		command.DateOfBirth,
		command.OccurredAt,
	))
}
