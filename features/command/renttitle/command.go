package renttitle

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	commandType = "RentTitle"
)

// Command represents the intent of a member to rent a title.
type Command struct {
	MemberID   core.MemberID
	TitleID    core.TitleID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID core.MemberID, titleID core.TitleID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		TitleID:    titleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
