package renttitle

import (
	"fmt"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Snapshot is the state Decide needs, loaded by the CommandHandler inside the unit of work.
// A nil Member or Title means the record does not exist.
type Snapshot struct {
	Member        *core.Member
	Title         *core.Title
	ActiveEntries []core.RentalEntry
}

// state represents the facts relevant for the decision, projected from the Snapshot.
type state struct {
	memberIsUnknown       bool
	titleIsUnknown        bool
	titleIsRentedByMember bool
	activeRentalCount     int
	noCopyAvailable       bool
}

// Decide implements the business logic to determine whether a title can be rented to a member.
// This is a pure function with no side effects.
//
// Business Rules (first match wins):
//
//	GIVEN: A member with MemberID and a title with TitleID
//	WHEN: RentTitle command is received
//	ERROR: NotFound if the member or the title does not exist
//	ERROR: AlreadyRented if the member holds an active rental of this title
//	ERROR: MemberRentalLimitReached if the member holds 2 active rentals
//	THEN: MemberQueuedForTitle if no copy is available
//	THEN: TitleRented otherwise
func Decide(snapshot Snapshot, command Command) core.DecisionResult {
	s := project(snapshot, command)

	if s.memberIsUnknown {
		return failed(command, core.KindNotFound, fmt.Sprintf("member %d not found", command.MemberID))
	}

	if s.titleIsUnknown {
		return failed(command, core.KindNotFound, fmt.Sprintf("title %d not found", command.TitleID))
	}

	if s.titleIsRentedByMember {
		return failed(command, core.KindAlreadyRented,
			fmt.Sprintf("member %d already rents title %d", command.MemberID, command.TitleID))
	}

	if s.activeRentalCount >= core.MaxActiveRentalsPerMember {
		return failed(command, core.KindMemberRentalLimitReached,
			fmt.Sprintf("member %d already rents %d titles", command.MemberID, s.activeRentalCount))
	}

	if s.noCopyAvailable {
		return core.SuccessDecision(core.BuildMemberQueuedForTitle(command.MemberID, command.TitleID, command.OccurredAt))
	}

	return core.SuccessDecision(
		core.BuildTitleRented(command.MemberID, command.TitleID, snapshot.Title.Type, command.OccurredAt),
	)
}

func failed(command Command, kind core.ErrorKind, info string) core.DecisionResult {
	event := core.BuildRentingTitleFailed(command.MemberID, command.TitleID, kind, info, command.OccurredAt)

	return core.ErrorDecision(event, event.ToError())
}

// project derives the decision state from the snapshot.
func project(snapshot Snapshot, command Command) state {
	s := state{
		memberIsUnknown: snapshot.Member == nil,
		titleIsUnknown:  snapshot.Title == nil,
	}

	for _, entry := range snapshot.ActiveEntries {
		if entry.MemberID != command.MemberID || entry.IsReturned() {
			continue
		}

		s.activeRentalCount++

		if entry.TitleID == command.TitleID {
			s.titleIsRentedByMember = true
		}
	}

	if snapshot.Title != nil {
		s.noCopyAvailable = !snapshot.Title.HasAvailableCopy()
	}

	return s
}
