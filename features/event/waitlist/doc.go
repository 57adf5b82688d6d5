// Package waitlist hands a returned title to one waiting member.
//
// OnTitleReturned is fed by the outbox relay with the TitleReturned messages the returntitle feature persists.
// It selects one unresolved queue item by Policy, notifies that member, and resolves the item.
// Resolving happens only after the notification went out, inside the same unit of work,
// so a failed delivery leaves the item waiting for the next relay pass.
package waitlist
