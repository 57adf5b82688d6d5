package rest

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

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

// Handlers are the command and query handlers served by the API.
// Plain feature handlers and their observable wrappers both fit.
type Handlers struct {
	Rent             shell.CoreCommandHandler[renttitle.Command, renttitle.Result]
	Prolong          shell.CoreCommandHandler[prolongrental.Command, prolongrental.Result]
	Return           shell.CoreCommandHandler[returntitle.Command, returntitle.Result]
	RegisterMember   shell.CoreCommandHandler[registermember.Command, registermember.Result]
	UpdateMember     shell.CoreCommandHandler[updatemember.Command, updatemember.Result]
	PastDue          shell.CoreQueryHandler[pastdueentries.Query, pastdueentries.PastDueEntries]
	Unreturned       shell.CoreQueryHandler[unreturnedentries.Query, unreturnedentries.UnreturnedEntries]
	Entries          shell.CoreQueryHandler[rentalentries.Query, rentalentries.RentalEntries]
	EntryDetails     shell.CoreQueryHandler[rentalentrydetails.Query, rentalentrydetails.RentalEntryDetails]
	Members          shell.CoreQueryHandler[members.Query, members.Members]
	MemberDetails    shell.CoreQueryHandler[memberdetails.Query, memberdetails.MemberDetails]
	MemberEntries    shell.CoreQueryHandler[memberentries.Query, memberentries.MemberEntries]
	MemberMessages   shell.CoreQueryHandler[membermessages.Query, membermessages.MemberMessages]
	Titles           shell.CoreQueryHandler[titles.Query, titles.Titles]
	TitleDetails     shell.CoreQueryHandler[titledetails.Query, titledetails.TitleDetails]
	TitleWaitlist    shell.CoreQueryHandler[titlewaitlist.Query, titlewaitlist.TitleWaitlist]
	QueueItems       shell.CoreQueryHandler[queueitems.Query, queueitems.QueueItems]
	QueueItemDetails shell.CoreQueryHandler[queueitemdetails.Query, queueitemdetails.QueueItemDetails]
}

// Option configures the API.
type Option func(*controller)

// WithLimiter throttles the command routes, the default admits everything.
func WithLimiter(limiter ratelimit.Limiter) Option {
	return func(c *controller) {
		c.limiter = limiter
	}
}

// WithLogger sets the logger for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *controller) {
		c.logger = logger
	}
}

// WithClock sets the clock that timestamps commands and the past-due query.
func WithClock(clock shell.Clock) Option {
	return func(c *controller) {
		c.clock = clock
	}
}

// WithAfterReturn registers a hook that runs after a successful return, e.g. to trigger the outbox relay.
// A nil hook keeps the no-op default.
func WithAfterReturn(hook func()) Option {
	return func(c *controller) {
		if hook != nil {
			c.afterReturn = hook
		}
	}
}

// New builds the echo instance with all routes and middlewares registered.
func New(handlers Handlers, opts ...Option) *echo.Echo {
	c := &controller{
		handlers:    handlers,
		limiter:     ratelimit.Unlimited{},
		logger:      slog.Default(),
		clock:       shell.SystemClock,
		afterReturn: func() {},
	}

	for _, opt := range opts {
		opt(c)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = c.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLog(c.logger))

	throttle := throttleByClient(c.limiter)

	e.POST("/rental-entries", c.rent, throttle)
	e.POST("/rental-entries/:id/prolong", c.prolong, throttle)
	e.POST("/rental-entries/:id/return", c.returnTitle, throttle)
	e.GET("/rental-entries", c.entries)
	e.GET("/rental-entries/past-due", c.pastDue)
	e.GET("/rental-entries/unreturned", c.unreturned)
	e.GET("/rental-entries/:id", c.entryDetails)

	e.POST("/members", c.registerMember, throttle)
	e.PUT("/members/:id", c.updateMember, throttle)
	e.GET("/members", c.members)
	e.GET("/members/:id", c.memberDetails)
	e.GET("/members/:id/rental-entries", c.memberEntries)
	e.GET("/members/:id/messages", c.memberMessages)

	e.GET("/titles", c.titles)
	e.GET("/titles/:id", c.titleDetails)
	e.GET("/titles/:id/queue", c.titleWaitlist)

	e.GET("/queue-items", c.queueItems)
	e.GET("/queue-items/:id", c.queueItemDetails)

	return e
}
