package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	subjectQueued       = "You were added to Queue"
	subjectRented       = "Thank you for renting"
	subjectOverdueFee   = "Returnal FEE"
	subjectReturnedFmt  = "%s was successfully returned"
	subjectAvailableFmt = "Title %s available!"
	subjectWelcome      = "Welcome to our team"
	signature           = "\n Best Regards Library Team <3"
	feeCurrency         = "EUR"
)

// Notification is a subject and body addressed to one member.
type Notification struct {
	MemberID MemberID
	Subject  string
	Body     string
}

// Notifications is a slice of Notification instances.
type Notifications = []Notification

// QueuedNotification tells the member they were put on the waitlist of the title.
func QueuedNotification(member Member, title Title) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  subjectQueued,
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s, you were added to queue for %s.%s",
			member.LastName, title.Name, signature,
		),
	}
}

// RentedNotification thanks the member for renting the title.
func RentedNotification(member Member, title Title) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  subjectRented,
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s, thank you for renting %s. We hope you are enjoying our services%s",
			member.LastName, title.Name, signature,
		),
	}
}

// ReturnedNotification confirms a successful return of the title.
func ReturnedNotification(member Member, title Title) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  fmt.Sprintf(subjectReturnedFmt, title.Name),
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s, title %s was successfully returned. Thank you for using our services%s",
			member.LastName, title.Name, signature,
		),
	}
}

// OverdueFeeNotification tells the member which late fee they owe.
func OverdueFeeNotification(member Member, fee decimal.Decimal) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  subjectOverdueFee,
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s, we penalize you for not returning the title within a sufficient period of time. You have to pay %s%s%s",
			member.LastName, fee.StringFixed(2), feeCurrency, signature,
		),
	}
}

// TitleAvailableNotification tells a waiting member that the title can be rented again.
func TitleAvailableNotification(member Member, title Title) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  fmt.Sprintf(subjectAvailableFmt, title.Name),
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s,\n\tthe title %s is available for rent!\nBest regards,\t The Library Team <3",
			member.LastName, title.Name,
		),
	}
}

// WelcomeNotification greets a newly registered member.
func WelcomeNotification(member Member) Notification {
	return Notification{
		MemberID: member.ID,
		Subject:  subjectWelcome,
		Body: fmt.Sprintf(
			"Dear Mr/Mrs %s, we are glad that you became a part of our team. We hope you will enjoy our services. %s",
			member.LastName, signature,
		),
	}
}
