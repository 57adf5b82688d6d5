package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/prolongrental"
	"github.com/AntonStoeckl/library-rentals-go/features/command/registermember"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/features/command/returntitle"
	"github.com/AntonStoeckl/library-rentals-go/features/command/updatemember"
	"github.com/AntonStoeckl/library-rentals-go/features/query/memberdetails"
	"github.com/AntonStoeckl/library-rentals-go/features/query/memberentries"
	"github.com/AntonStoeckl/library-rentals-go/features/query/membermessages"
	"github.com/AntonStoeckl/library-rentals-go/features/query/members"
	"github.com/AntonStoeckl/library-rentals-go/features/query/pastdueentries"
	"github.com/AntonStoeckl/library-rentals-go/features/query/queueitemdetails"
	"github.com/AntonStoeckl/library-rentals-go/features/query/queueitems"
	"github.com/AntonStoeckl/library-rentals-go/features/query/rentalentries"
	"github.com/AntonStoeckl/library-rentals-go/features/query/rentalentrydetails"
	"github.com/AntonStoeckl/library-rentals-go/features/query/titledetails"
	"github.com/AntonStoeckl/library-rentals-go/features/query/titles"
	"github.com/AntonStoeckl/library-rentals-go/features/query/titlewaitlist"
	"github.com/AntonStoeckl/library-rentals-go/features/query/unreturnedentries"
	"github.com/AntonStoeckl/library-rentals-go/ratelimit"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	paramID        = "id"
	paramMemberID  = "memberId"
	paramTitleID   = "titleId"
	paramTitleType = "type"
)

type controller struct {
	handlers    Handlers
	limiter     ratelimit.Limiter
	logger      *slog.Logger
	clock       shell.Clock
	afterReturn func()
}

// POST /rental-entries
func (c *controller) rent(ctx echo.Context) error {
	req, err := bindEntryRequest(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.Rent.Handle(
		ctx.Request().Context(),
		renttitle.BuildCommand(req.MemberID, req.TitleID, c.clock()),
	)
	if err != nil {
		return err
	}

	if result.IsQueued() {
		body := RentResponse{
			Outcome: result.Outcome,
			Message: fmt.Sprintf("no copy of title %d left, member %d was added to the queue", req.TitleID, req.MemberID),
		}
		if result.QueueItem != nil {
			item := toQueueItemResponse(*result.QueueItem)
			body.QueueItem = &item
		}

		return ctx.JSON(http.StatusAccepted, body)
	}

	entry := toEntryResponse(*result.Entry)

	return ctx.JSON(http.StatusCreated, RentResponse{Outcome: result.Outcome, Entry: &entry})
}

// POST /rental-entries/:id/prolong
func (c *controller) prolong(ctx echo.Context) error {
	entryID, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, err := bindEntryRequest(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.Prolong.Handle(
		ctx.Request().Context(),
		prolongrental.BuildCommand(entryID, req.MemberID, req.TitleID, c.clock()),
	)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ProlongResponse{
		Outcome: result.BusinessOutcome,
		Entry:   toEntryResponse(result.Entry),
	})
}

// POST /rental-entries/:id/return
func (c *controller) returnTitle(ctx echo.Context) error {
	entryID, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, err := bindEntryRequest(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.Return.Handle(
		ctx.Request().Context(),
		returntitle.BuildCommand(entryID, req.MemberID, req.TitleID, c.clock()),
	)
	if err != nil {
		return err
	}

	c.afterReturn()

	return ctx.JSON(http.StatusOK, ReturnResponse{
		Outcome: result.BusinessOutcome,
		Entry:   toEntryResponse(result.Entry),
		Fee:     result.Fee.StringFixed(feeDecimals),
	})
}

// GET /rental-entries/past-due
func (c *controller) pastDue(ctx echo.Context) error {
	result, err := c.handlers.PastDue.Handle(ctx.Request().Context(), pastdueentries.BuildQuery(c.clock()))
	if err != nil {
		return err
	}

	entries := make([]PastDueEntryResponse, 0, len(result.Entries))
	for _, pastDue := range result.Entries {
		entries = append(entries, PastDueEntryResponse{
			Entry:       toEntryResponse(pastDue.Entry),
			OverdueDays: pastDue.OverdueDays,
			AccruedFee:  pastDue.AccruedFee.StringFixed(feeDecimals),
		})
	}

	return ctx.JSON(http.StatusOK, PastDueResponse{AsOf: result.AsOf, Entries: entries, Count: result.Count})
}

// GET /rental-entries/unreturned[?memberId=]
func (c *controller) unreturned(ctx echo.Context) error {
	query := unreturnedentries.BuildQuery()

	if raw := ctx.QueryParam(paramMemberID); raw != "" {
		memberID, err := parseID(raw, paramMemberID)
		if err != nil {
			return err
		}

		query = unreturnedentries.BuildQueryForMember(memberID)
	}

	result, err := c.handlers.Unreturned.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, EntriesResponse{
		MemberID: result.MemberID,
		Entries:  toEntryResponses(result.Entries),
		Count:    result.Count,
	})
}

// GET /rental-entries[?titleId=]
func (c *controller) entries(ctx echo.Context) error {
	query := rentalentries.BuildQuery()

	if raw := ctx.QueryParam(paramTitleID); raw != "" {
		titleID, err := parseID(raw, paramTitleID)
		if err != nil {
			return err
		}

		query = rentalentries.BuildQueryForTitle(titleID)
	}

	result, err := c.handlers.Entries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, EntriesResponse{
		TitleID: result.TitleID,
		Entries: toEntryResponses(result.Entries),
		Count:   result.Count,
	})
}

// GET /rental-entries/:id
func (c *controller) entryDetails(ctx echo.Context) error {
	entryID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.EntryDetails.Handle(ctx.Request().Context(), rentalentrydetails.BuildQuery(entryID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toEntryResponse(result.Entry))
}

// POST /members
func (c *controller) registerMember(ctx echo.Context) error {
	req, dateOfBirth, err := bindMemberRequest(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.RegisterMember.Handle(
		ctx.Request().Context(),
		registermember.BuildCommand(req.FirstName, req.LastName, req.PersonalID, dateOfBirth, c.clock()),
	)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}

	return ctx.JSON(status, MemberCommandResponse{
		Outcome: result.BusinessOutcome,
		Member:  toMemberResponse(result.Member),
	})
}

// PUT /members/:id
func (c *controller) updateMember(ctx echo.Context) error {
	memberID, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, dateOfBirth, err := bindMemberRequest(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.UpdateMember.Handle(
		ctx.Request().Context(),
		updatemember.BuildCommand(memberID, req.FirstName, req.LastName, req.PersonalID, dateOfBirth, c.clock()),
	)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, MemberCommandResponse{
		Outcome: result.BusinessOutcome,
		Member:  toMemberResponse(result.Member),
	})
}

// GET /members
func (c *controller) members(ctx echo.Context) error {
	result, err := c.handlers.Members.Handle(ctx.Request().Context(), members.BuildQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, MembersResponse{Members: toMemberResponses(result.Members), Count: result.Count})
}

// GET /members/:id
func (c *controller) memberDetails(ctx echo.Context) error {
	memberID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.MemberDetails.Handle(ctx.Request().Context(), memberdetails.BuildQuery(memberID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, MemberDetailsResponse{
		Member:            toMemberResponse(result.Member),
		ActiveRentalCount: result.ActiveRentalCount,
	})
}

// GET /members/:id/rental-entries
func (c *controller) memberEntries(ctx echo.Context) error {
	memberID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.MemberEntries.Handle(ctx.Request().Context(), memberentries.BuildQuery(memberID))
	if err != nil {
		return err
	}

	active := result.ActiveCount

	return ctx.JSON(http.StatusOK, EntriesResponse{
		MemberID:    result.MemberID,
		Entries:     toEntryResponses(result.Entries),
		ActiveCount: &active,
		Count:       result.Count,
	})
}

// GET /members/:id/messages
func (c *controller) memberMessages(ctx echo.Context) error {
	memberID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.MemberMessages.Handle(ctx.Request().Context(), membermessages.BuildQuery(memberID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, MessagesResponse{
		MemberID: result.MemberID,
		Messages: toMessageResponses(result.Messages),
		Count:    result.Count,
	})
}

// GET /titles/:id/queue
func (c *controller) titleWaitlist(ctx echo.Context) error {
	titleID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.TitleWaitlist.Handle(ctx.Request().Context(), titlewaitlist.BuildQuery(titleID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, WaitlistResponse{
		TitleID:         result.TitleID,
		AvailableCopies: result.AvailableCopies,
		Items:           toQueueItemResponses(result.Items),
		Count:           result.Count,
	})
}

// GET /titles[?type=Book|Dvd]
func (c *controller) titles(ctx echo.Context) error {
	query := titles.BuildQuery()
	if raw := ctx.QueryParam(paramTitleType); raw != "" {
		query = titles.BuildQueryForType(core.TitleType(raw))
	}

	result, err := c.handlers.Titles.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, TitlesResponse{
		Type:   result.TitleType,
		Titles: toTitleResponses(result.Titles),
		Count:  result.Count,
	})
}

// GET /titles/:id
func (c *controller) titleDetails(ctx echo.Context) error {
	titleID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.TitleDetails.Handle(ctx.Request().Context(), titledetails.BuildQuery(titleID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, TitleDetailsResponse{
		Title:          toTitleResponse(result.Title),
		WaitingMembers: result.WaitingMembers,
	})
}

// GET /queue-items
func (c *controller) queueItems(ctx echo.Context) error {
	result, err := c.handlers.QueueItems.Handle(ctx.Request().Context(), queueitems.BuildQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, QueueItemsResponse{Items: toQueueItemResponses(result.Items), Count: result.Count})
}

// GET /queue-items/:id
func (c *controller) queueItemDetails(ctx echo.Context) error {
	itemID, err := pathID(ctx)
	if err != nil {
		return err
	}

	result, err := c.handlers.QueueItemDetails.Handle(ctx.Request().Context(), queueitemdetails.BuildQuery(itemID))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toQueueItemResponse(result.Item))
}

func bindEntryRequest(ctx echo.Context) (EntryRequest, error) {
	var req EntryRequest
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &req); err != nil {
		return EntryRequest{}, err
	}

	if err := ctx.Validate(req); err != nil {
		return EntryRequest{}, err
	}

	return req, nil
}

func bindMemberRequest(ctx echo.Context) (MemberRequest, time.Time, error) {
	var req MemberRequest
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &req); err != nil {
		return MemberRequest{}, time.Time{}, err
	}

	if err := ctx.Validate(req); err != nil {
		return MemberRequest{}, time.Time{}, err
	}

	dateOfBirth, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return MemberRequest{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid dateOfBirth %q", req.DateOfBirth))
	}

	return req, dateOfBirth, nil
}

func pathID(ctx echo.Context) (int64, error) {
	return parseID(ctx.Param(paramID), paramID)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, raw))
	}

	return id, nil
}
