package rest

import (
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const feeDecimals = 2

// EntryRequest is the body of the rent, prolong, and return routes.
type EntryRequest struct {
	MemberID core.MemberID `json:"memberId" validate:"required,gt=0"`
	TitleID  core.TitleID  `json:"titleId"  validate:"required,gt=0"`
}

// MemberRequest is the body of the register and update member routes. DateOfBirth is a calendar date.
type MemberRequest struct {
	FirstName   string `json:"firstName"   validate:"required,max=255"`
	LastName    string `json:"lastName"    validate:"required,max=255"`
	PersonalID  string `json:"personalId"  validate:"required,max=255"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

// MemberResponse is a member on the wire.
type MemberResponse struct {
	ID          core.MemberID `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	PersonalID  string        `json:"personalId"`
	DateOfBirth string        `json:"dateOfBirth"`
}

// MemberCommandResponse is the body of a register or update member request.
type MemberCommandResponse struct {
	Outcome string         `json:"outcome"`
	Member  MemberResponse `json:"member"`
}

// MembersResponse is the member register.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
	Count   int              `json:"count"`
}

// MemberDetailsResponse is one member with the number of titles it holds.
type MemberDetailsResponse struct {
	Member            MemberResponse `json:"member"`
	ActiveRentalCount int            `json:"activeRentalCount"`
}

// TitleResponse is a title on the wire, with the fields of its variant set.
type TitleResponse struct {
	ID                   core.TitleID   `json:"id"`
	Type                 core.TitleType `json:"type"`
	Author               string         `json:"author"`
	Name                 string         `json:"name"`
	AvailableCopies      int            `json:"availableCopies"`
	TotalAvailableCopies int            `json:"totalAvailableCopies"`
	NumberOfPages        int            `json:"numberOfPages,omitempty"`
	ISBN                 string         `json:"isbn,omitempty"`
	PublishYear          int            `json:"publishYear,omitempty"`
	NumberOfMinutes      int            `json:"numberOfMinutes,omitempty"`
}

// TitlesResponse lists titles, optionally of one variant.
type TitlesResponse struct {
	Type   core.TitleType  `json:"type,omitempty"`
	Titles []TitleResponse `json:"titles"`
	Count  int             `json:"count"`
}

// TitleDetailsResponse is one title with the length of its waitlist.
type TitleDetailsResponse struct {
	Title          TitleResponse `json:"title"`
	WaitingMembers int           `json:"waitingMembers"`
}

// QueueItemsResponse is the whole waitlist.
type QueueItemsResponse struct {
	Items []QueueItemResponse `json:"items"`
	Count int                 `json:"count"`
}

// EntryResponse is a rental entry on the wire.
type EntryResponse struct {
	ID              core.RentalEntryID `json:"id"`
	MemberID        core.MemberID      `json:"memberId"`
	TitleID         core.TitleID       `json:"titleId"`
	TitleType       core.TitleType     `json:"titleType"`
	RentedDate      time.Time          `json:"rentedDate"`
	MaxReturnDate   time.Time          `json:"maxReturnDate"`
	ReturnDate      *time.Time         `json:"returnDate,omitempty"`
	TimesProlongued int                `json:"timesProlongued"`
}

// RentResponse is the body of a rent request, with either the entry or the queue item set.
type RentResponse struct {
	Outcome   string             `json:"outcome"`
	Entry     *EntryResponse     `json:"entry,omitempty"`
	QueueItem *QueueItemResponse `json:"queueItem,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// ProlongResponse is the body of a prolong request.
type ProlongResponse struct {
	Outcome string        `json:"outcome"`
	Entry   EntryResponse `json:"entry"`
}

// ReturnResponse is the body of a return request. Fee is a decimal string with two places.
type ReturnResponse struct {
	Outcome string        `json:"outcome"`
	Entry   EntryResponse `json:"entry"`
	Fee     string        `json:"fee"`
}

// QueueItemResponse is a waitlist item on the wire.
type QueueItemResponse struct {
	ID         core.QueueItemID `json:"id"`
	MemberID   core.MemberID    `json:"memberId"`
	TitleID    core.TitleID     `json:"titleId"`
	TimeAdded  time.Time        `json:"timeAdded"`
	IsResolved bool             `json:"isResolved"`
}

// PastDueEntryResponse is an overdue entry with its accrued fee.
type PastDueEntryResponse struct {
	Entry       EntryResponse `json:"entry"`
	OverdueDays int           `json:"overdueDays"`
	AccruedFee  string        `json:"accruedFee"`
}

// PastDueResponse lists the overdue entries.
type PastDueResponse struct {
	AsOf    time.Time              `json:"asOf"`
	Entries []PastDueEntryResponse `json:"entries"`
	Count   int                    `json:"count"`
}

// EntriesResponse lists rental entries, optionally of one member or one title.
type EntriesResponse struct {
	MemberID    core.MemberID   `json:"memberId,omitempty"`
	TitleID     core.TitleID    `json:"titleId,omitempty"`
	Entries     []EntryResponse `json:"entries"`
	ActiveCount *int            `json:"activeCount,omitempty"`
	Count       int             `json:"count"`
}

// MessageResponse is an inbox message on the wire.
type MessageResponse struct {
	ID       core.MessageID `json:"id"`
	Subject  string         `json:"subject"`
	Body     string         `json:"body"`
	SendDate time.Time      `json:"sendDate"`
}

// MessagesResponse is a member inbox.
type MessagesResponse struct {
	MemberID core.MemberID     `json:"memberId"`
	Messages []MessageResponse `json:"messages"`
	Count    int               `json:"count"`
}

// WaitlistResponse is the unresolved waitlist of a title.
type WaitlistResponse struct {
	TitleID         core.TitleID        `json:"titleId"`
	AvailableCopies int                 `json:"availableCopies"`
	Items           []QueueItemResponse `json:"items"`
	Count           int                 `json:"count"`
}

func toEntryResponse(entry core.RentalEntry) EntryResponse {
	return EntryResponse{
		ID:              entry.ID,
		MemberID:        entry.MemberID,
		TitleID:         entry.TitleID,
		TitleType:       entry.TitleType,
		RentedDate:      entry.RentedDate,
		MaxReturnDate:   entry.MaxReturnDate,
		ReturnDate:      entry.ReturnDate,
		TimesProlongued: entry.TimesProlongued,
	}
}

func toEntryResponses(entries []core.RentalEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryResponse(entry))
	}

	return out
}

func toQueueItemResponse(item core.QueueItem) QueueItemResponse {
	return QueueItemResponse{
		ID:         item.ID,
		MemberID:   item.MemberID,
		TitleID:    item.TitleID,
		TimeAdded:  item.TimeAdded,
		IsResolved: item.IsResolved,
	}
}

func toQueueItemResponses(items []core.QueueItem) []QueueItemResponse {
	out := make([]QueueItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toQueueItemResponse(item))
	}

	return out
}

func toMessageResponses(messages []core.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, MessageResponse{
			ID:       message.ID,
			Subject:  message.Subject,
			Body:     message.Body,
			SendDate: message.SendDate,
		})
	}

	return out
}

func toMemberResponse(member core.Member) MemberResponse {
	return MemberResponse{
		ID:          member.ID,
		FirstName:   member.FirstName,
		LastName:    member.LastName,
		PersonalID:  member.PersonalID,
		DateOfBirth: member.DateOfBirth.Format(time.DateOnly),
	}
}

func toMemberResponses(members []core.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, toMemberResponse(member))
	}

	return out
}

func toTitleResponse(title core.Title) TitleResponse {
	out := TitleResponse{
		ID:                   title.ID,
		Type:                 title.Type,
		Author:               title.Author,
		Name:                 title.Name,
		AvailableCopies:      title.AvailableCopies,
		TotalAvailableCopies: title.TotalAvailableCopies,
	}

	if title.Book != nil {
		out.NumberOfPages = title.Book.NumberOfPages
		out.ISBN = title.Book.ISBN
	}

	if title.Dvd != nil {
		out.PublishYear = title.Dvd.PublishYear
		out.NumberOfMinutes = title.Dvd.NumberOfMinutes
	}

	return out
}

func toTitleResponses(titles []core.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(titles))
	for _, title := range titles {
		out = append(out, toTitleResponse(title))
	}

	return out
}
