package spies

import (
	"context"
	"sync"
)

// SentNotification is one captured Notifier.Send call.
type SentNotification struct {
	MemberID int64
	Subject  string
	Body     string
}

// NotifierSpy captures notifications and can be told to fail.
type NotifierSpy struct {
	mu      sync.Mutex
	sent    []SentNotification
	failing error
}

// NewNotifierSpy creates a NotifierSpy that accepts every notification.
func NewNotifierSpy() *NotifierSpy {
	return &NotifierSpy{sent: make([]SentNotification, 0)}
}

// FailWith makes every following Send return err, nil switches back to delivering.
func (n *NotifierSpy) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failing = err
}

// Send implements shell.Notifier.
func (n *NotifierSpy) Send(_ context.Context, memberID int64, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failing != nil {
		return n.failing
	}

	n.sent = append(n.sent, SentNotification{MemberID: memberID, Subject: subject, Body: body})

	return nil
}

// Sent returns a copy of the delivered notifications.
func (n *NotifierSpy) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()

	sent := make([]SentNotification, len(n.sent))
	copy(sent, n.sent)

	return sent
}

// SubjectsFor returns the subjects delivered to a member, in delivery order.
func (n *NotifierSpy) SubjectsFor(memberID int64) []string {
	subjects := make([]string, 0)
	for _, s := range n.Sent() {
		if s.MemberID == memberID {
			subjects = append(subjects, s.Subject)
		}
	}

	return subjects
}
