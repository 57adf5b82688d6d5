package core

// EntryAccess is what prolonging and returning need to know about the addressed entry and member.
type EntryAccess struct {
	EntryID      RentalEntryID
	MemberID     MemberID
	TitleID      TitleID
	Entry        *RentalEntry
	MemberExists bool
}

// Violation checks the preconditions shared by prolonging and returning, in this order:
// entry exists, member exists, entry belongs to the member, entry is for the title, entry is still active.
// The second return value is false when all preconditions hold.
func (a EntryAccess) Violation() (*Error, bool) {
	switch {
	case a.Entry == nil:
		return NewError(KindNotFound, "rental entry %d not found", a.EntryID), true

	case !a.MemberExists:
		return NewError(KindNotFound, "member %d not found", a.MemberID), true

	case a.Entry.MemberID != a.MemberID:
		return NewError(KindMismatch, "rental entry %d belongs to member %d, not to member %d",
			a.EntryID, a.Entry.MemberID, a.MemberID), true

	case a.Entry.TitleID != a.TitleID:
		return NewError(KindMismatch, "rental entry %d is for title %d, not for title %d",
			a.EntryID, a.Entry.TitleID, a.TitleID), true

	case a.Entry.IsReturned():
		return NewError(KindAlreadyReturned, "rental entry %d was already returned", a.EntryID), true

	default:
		return nil, false
	}
}
