package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/prolongrental"
	"github.com/AntonStoeckl/library-rentals-go/features/command/registermember"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/features/command/returntitle"
	"github.com/AntonStoeckl/library-rentals-go/features/command/updatemember"
	"github.com/AntonStoeckl/library-rentals-go/features/event/waitlist"
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
	"github.com/AntonStoeckl/library-rentals-go/shell"
	"github.com/AntonStoeckl/library-rentals-go/shell/config"
	"github.com/AntonStoeckl/library-rentals-go/shell/observable"
	"github.com/AntonStoeckl/library-rentals-go/shell/outboxrelay"
	"github.com/AntonStoeckl/library-rentals-go/transport/rest"
)

const (
	logMsgListening    = "http server listening"
	logMsgShuttingDown = "shutting down"
	logAttrAddress     = "address"
)

// application is the wired process: the REST handler set and the relay feeding the waitlist.
type application struct {
	handlers rest.Handlers
	relay    *outboxrelay.Relay
}

func commandOptions[C shell.Command, R shell.ExposesHandlerResult](deps *dependencies, logger *slog.Logger) []observable.CommandOption[C, R] {
	options := []observable.CommandOption[C, R]{observable.WithCommandLogging[C, R](logger)}

	if deps.telemetry.enabled() {
		options = append(options,
			observable.WithCommandMetrics[C, R](deps.telemetry.metrics),
			observable.WithCommandTracing[C, R](deps.telemetry.tracing),
			observable.WithCommandContextualLogging[C, R](deps.telemetry.logger),
		)
	}

	return options
}

func queryOptions[Q shell.Query, R any](deps *dependencies, logger *slog.Logger) []observable.QueryOption[Q, R] {
	options := []observable.QueryOption[Q, R]{observable.WithQueryLogging[Q, R](logger)}

	if deps.telemetry.enabled() {
		options = append(options,
			observable.WithQueryMetrics[Q, R](deps.telemetry.metrics),
			observable.WithQueryTracing[Q, R](deps.telemetry.tracing),
			observable.WithQueryContextualLogging[Q, R](deps.telemetry.logger),
		)
	}

	return options
}

func buildApplication(cfg *config.Config, deps *dependencies, logger *slog.Logger) (*application, error) {
	policy, err := waitlist.ParsePolicy(cfg.Waitlist.Policy)
	if err != nil {
		return nil, err
	}

	waitlistHandler, err := waitlist.NewEventHandler(deps.store, deps.notifier, waitlist.WithPolicy(policy))
	if err != nil {
		return nil, err
	}

	relayOptions := []outboxrelay.Option{
		outboxrelay.WithConsumer(core.TitleReturnedEventType, waitlistHandler),
		outboxrelay.WithInterval(cfg.Relay.Interval),
		outboxrelay.WithBatchSize(cfg.Relay.BatchSize),
		outboxrelay.WithLogger(logger),
	}
	if deps.telemetry.enabled() {
		relayOptions = append(relayOptions, outboxrelay.WithMetrics(deps.telemetry.metrics))
	}

	relay, err := outboxrelay.New(deps.store, relayOptions...)
	if err != nil {
		return nil, err
	}

	rentHandler, err := observable.NewCommandWrapper[renttitle.Command, renttitle.Result](
		renttitle.NewCommandHandler(deps.store, deps.notifier, renttitle.WithLogger(logger)),
		commandOptions[renttitle.Command, renttitle.Result](deps, logger)...,
	)
	if err != nil {
		return nil, err
	}

	prolongHandler, err := observable.NewCommandWrapper[prolongrental.Command, prolongrental.Result](
		prolongrental.NewCommandHandler(deps.store),
		commandOptions[prolongrental.Command, prolongrental.Result](deps, logger)...,
	)
	if err != nil {
		return nil, err
	}

	returnHandler, err := observable.NewCommandWrapper[returntitle.Command, returntitle.Result](
		returntitle.NewCommandHandler(deps.store, deps.notifier, returntitle.WithLogger(logger)),
		commandOptions[returntitle.Command, returntitle.Result](deps, logger)...,
	)
	if err != nil {
		return nil, err
	}

	registerHandler, err := observable.NewCommandWrapper[registermember.Command, registermember.Result](
		registermember.NewCommandHandler(deps.store, deps.notifier, registermember.WithLogger(logger)),
		commandOptions[registermember.Command, registermember.Result](deps, logger)...,
	)
	if err != nil {
		return nil, err
	}

	updateHandler, err := observable.NewCommandWrapper[updatemember.Command, updatemember.Result](
		updatemember.NewCommandHandler(deps.store),
		commandOptions[updatemember.Command, updatemember.Result](deps, logger)...,
	)
	if err != nil {
		return nil, err
	}

	return &application{
		relay: relay,
		handlers: rest.Handlers{
			Rent:           rentHandler,
			Prolong:        prolongHandler,
			Return:         returnHandler,
			RegisterMember: registerHandler,
			UpdateMember:   updateHandler,
			PastDue: observable.NewQueryWrapper[pastdueentries.Query, pastdueentries.PastDueEntries](
				pastdueentries.NewQueryHandler(deps.store),
				queryOptions[pastdueentries.Query, pastdueentries.PastDueEntries](deps, logger)...,
			),
			Unreturned: observable.NewQueryWrapper[unreturnedentries.Query, unreturnedentries.UnreturnedEntries](
				unreturnedentries.NewQueryHandler(deps.store),
				queryOptions[unreturnedentries.Query, unreturnedentries.UnreturnedEntries](deps, logger)...,
			),
			Entries: observable.NewQueryWrapper[rentalentries.Query, rentalentries.RentalEntries](
				rentalentries.NewQueryHandler(deps.store),
				queryOptions[rentalentries.Query, rentalentries.RentalEntries](deps, logger)...,
			),
			EntryDetails: observable.NewQueryWrapper[rentalentrydetails.Query, rentalentrydetails.RentalEntryDetails](
				rentalentrydetails.NewQueryHandler(deps.store),
				queryOptions[rentalentrydetails.Query, rentalentrydetails.RentalEntryDetails](deps, logger)...,
			),
			Members: observable.NewQueryWrapper[members.Query, members.Members](
				members.NewQueryHandler(deps.store),
				queryOptions[members.Query, members.Members](deps, logger)...,
			),
			MemberDetails: observable.NewQueryWrapper[memberdetails.Query, memberdetails.MemberDetails](
				memberdetails.NewQueryHandler(deps.store),
				queryOptions[memberdetails.Query, memberdetails.MemberDetails](deps, logger)...,
			),
			MemberEntries: observable.NewQueryWrapper[memberentries.Query, memberentries.MemberEntries](
				memberentries.NewQueryHandler(deps.store),
				queryOptions[memberentries.Query, memberentries.MemberEntries](deps, logger)...,
			),
			MemberMessages: observable.NewQueryWrapper[membermessages.Query, membermessages.MemberMessages](
				membermessages.NewQueryHandler(deps.store),
				queryOptions[membermessages.Query, membermessages.MemberMessages](deps, logger)...,
			),
			Titles: observable.NewQueryWrapper[titles.Query, titles.Titles](
				titles.NewQueryHandler(deps.store),
				queryOptions[titles.Query, titles.Titles](deps, logger)...,
			),
			TitleDetails: observable.NewQueryWrapper[titledetails.Query, titledetails.TitleDetails](
				titledetails.NewQueryHandler(deps.store),
				queryOptions[titledetails.Query, titledetails.TitleDetails](deps, logger)...,
			),
			TitleWaitlist: observable.NewQueryWrapper[titlewaitlist.Query, titlewaitlist.TitleWaitlist](
				titlewaitlist.NewQueryHandler(deps.store),
				queryOptions[titlewaitlist.Query, titlewaitlist.TitleWaitlist](deps, logger)...,
			),
			QueueItems: observable.NewQueryWrapper[queueitems.Query, queueitems.QueueItems](
				queueitems.NewQueryHandler(deps.store),
				queryOptions[queueitems.Query, queueitems.QueueItems](deps, logger)...,
			),
			QueueItemDetails: observable.NewQueryWrapper[queueitemdetails.Query, queueitemdetails.QueueItemDetails](
				queueitemdetails.NewQueryHandler(deps.store),
				queryOptions[queueitemdetails.Query, queueitemdetails.QueueItemDetails](deps, logger)...,
			),
		},
	}, nil
}

// router builds the echo instance. A successful return triggers an immediate relay flush.
func (a *application) router(deps *dependencies, logger *slog.Logger) http.Handler {
	return rest.New(a.handlers,
		rest.WithLimiter(deps.limiter),
		rest.WithLogger(logger),
		rest.WithAfterReturn(a.relay.Trigger),
	)
}

func serve(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) error {
	app, err := buildApplication(cfg, deps, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router(deps, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info(logMsgListening, logAttrAddress, server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		return app.relay.Run(gctx)
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.Info(logMsgShuttingDown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
