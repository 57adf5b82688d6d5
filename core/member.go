package core

import (
	"time"
)

// Member is a registered library user.
type Member struct {
	ID          MemberID
	FirstName   string
	LastName    string
	PersonalID  string
	DateOfBirth time.Time
}

// FullName returns "FirstName LastName".
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
