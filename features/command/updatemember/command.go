package updatemember

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	commandType = "UpdateMember"
)

// Command represents the intent to overwrite the personal data of a member.
type Command struct {
	MemberID    core.MemberID
	FirstName   string
	LastName    string
	PersonalID  string
	DateOfBirth time.Time
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	memberID core.MemberID,
	firstName string,
	lastName string,
	personalID string,
	dateOfBirth time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		MemberID:    memberID,
		FirstName:   firstName,
		LastName:    lastName,
		PersonalID:  personalID,
		DateOfBirth: dateOfBirth,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

func (c Command) member() core.Member {
	return core.Member{
		ID:          c.MemberID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PersonalID:  c.PersonalID,
		DateOfBirth: core.CalendarDate(c.DateOfBirth),
	}
}
