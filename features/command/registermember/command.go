package registermember

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent of a person to become a library member.
type Command struct {
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
	firstName string,
	lastName string,
	personalID string,
	dateOfBirth time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		FirstName:   firstName,
		LastName:    lastName,
		PersonalID:  personalID,
		DateOfBirth: dateOfBirth,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
