// Package returntitle closes an active rental entry, puts the copy back into stock, assesses the late fee,
// and records a TitleReturned message in the outbox for the waitlist.
package returntitle
