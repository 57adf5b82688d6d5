package core

import (
	"time"
)

// QueueItem is a waitlist record of a member wanting a title that had no copy left.
type QueueItem struct {
	ID         QueueItemID
	MemberID   MemberID
	TitleID    TitleID
	TimeAdded  time.Time
	IsResolved bool
}
