// Package renttitle lends a copy of a title to a member, or puts the member on the waitlist
// when no copy is left.
//
// The feature slice keeps the pure decision (Decide) apart from the shell (CommandHandler),
// which loads the snapshot, applies the decision in one unit of work, and notifies the member after commit.
package renttitle
