package returntitle

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	commandType = "ReturnTitle"
)

// Command represents the intent of a member to bring a rented title back.
type Command struct {
	EntryID    core.RentalEntryID
	MemberID   core.MemberID
	TitleID    core.TitleID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	entryID core.RentalEntryID,
	memberID core.MemberID,
	titleID core.TitleID,
	occurredAt time.Time,
) Command {

	return Command{
		EntryID:    entryID,
		MemberID:   memberID,
		TitleID:    titleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
