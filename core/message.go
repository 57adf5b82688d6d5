package core

import (
	"time"
)

// Message is a notification delivered to a member's inbox.
type Message struct {
	ID       MessageID
	MemberID MemberID
	Subject  string
	Body     string
	SendDate time.Time
}
