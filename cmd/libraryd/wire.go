package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/AntonStoeckl/library-rentals-go/notify/amqpnotifier"
	"github.com/AntonStoeckl/library-rentals-go/notify/inbox"
	"github.com/AntonStoeckl/library-rentals-go/ratelimit"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/oteladapters"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/migrations"
	"github.com/AntonStoeckl/library-rentals-go/shell"
	"github.com/AntonStoeckl/library-rentals-go/shell/config"
)

const (
	logMsgMigrated    = "database migrations applied"
	logMsgCloseFailed = "closing dependency failed"
	logAttrVersions   = "versions"
	logAttrDependency = "dependency"
)

// telemetry holds the OpenTelemetry collectors, all nil when telemetry is disabled.
type telemetry struct {
	providers *oteladapters.Providers
	metrics   shell.MetricsCollector
	tracing   shell.TracingCollector
	logger    shell.ContextualLogger
}

func (t telemetry) enabled() bool {
	return t.providers != nil
}

type closer struct {
	name  string
	close func() error
}

// dependencies are the long-lived collaborators of the process.
type dependencies struct {
	store     rentalstore.Store
	notifier  shell.Notifier
	limiter   ratelimit.Limiter
	telemetry telemetry
	closers   []closer
}

func (d *dependencies) onClose(name string, fn func() error) {
	d.closers = append(d.closers, closer{name: name, close: fn})
}

// close releases the dependencies in reverse order of creation.
func (d *dependencies) close(logger *slog.Logger) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].close(); err != nil {
			logger.Warn(logMsgCloseFailed, logAttrDependency, d.closers[i].name, shell.LogAttrError, err.Error())
		}
	}
}

func wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	if err := deps.build(ctx, cfg, logger); err != nil {
		deps.close(logger)
		return nil, err
	}

	return deps, nil
}

func (d *dependencies) build(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var err error

	if cfg.Telemetry.Enabled {
		if d.telemetry, err = buildTelemetry(cfg.Telemetry); err != nil {
			return err
		}
		d.onClose("telemetry", func() error { return d.telemetry.providers.Shutdown(context.Background()) })
	}

	if d.store, err = buildStore(ctx, cfg.Database, d, logger); err != nil {
		return err
	}

	if d.notifier, err = buildNotifier(cfg, d); err != nil {
		return err
	}

	d.limiter, err = buildLimiter(cfg, d)

	return err
}

func buildTelemetry(cfg config.TelemetryConfig) (telemetry, error) {
	providers, err := oteladapters.NewProviders(cfg.ServiceName)
	if err != nil {
		return telemetry{}, fmt.Errorf("telemetry: %w", err)
	}

	return telemetry{
		providers: providers,
		metrics:   oteladapters.NewMetricsCollector(providers.Meter(cfg.ServiceName)),
		tracing:   oteladapters.NewTracingCollector(providers.Tracer(cfg.ServiceName)),
		logger:    oteladapters.NewSlogBridgeLogger(cfg.ServiceName),
	}, nil
}

func storeOptions(deps *dependencies, logger *slog.Logger) []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithLogger(logger)}

	if deps.telemetry.enabled() {
		options = append(options,
			postgresengine.WithContextualLogger(deps.telemetry.logger),
			postgresengine.WithMetrics(deps.telemetry.metrics),
			postgresengine.WithTracing(deps.telemetry.tracing),
		)
	}

	return options
}

func buildStore(ctx context.Context, db config.DatabaseConfig, deps *dependencies, logger *slog.Logger) (rentalstore.Store, error) {
	switch db.Driver {
	case config.DriverMem:
		return memengine.NewStore(), nil

	case config.DriverPGX:
		pool, err := config.OpenPGXPool(ctx, db, db.DSN)
		if err != nil {
			return nil, err
		}
		deps.onClose("pgx pool", func() error { pool.Close(); return nil })

		if err := migrate(ctx, db, stdlib.OpenDBFromPool(pool), logger); err != nil {
			return nil, err
		}

		var replica *pgxpool.Pool
		if db.ReplicaDSN != "" {
			if replica, err = config.OpenPGXPool(ctx, db, db.ReplicaDSN); err != nil {
				return nil, err
			}
			deps.onClose("pgx replica pool", func() error { replica.Close(); return nil })
		}

		return postgresengine.NewStoreFromPGXPoolAndReplica(pool, replica, storeOptions(deps, logger)...)

	case config.DriverSQL:
		handle, err := config.OpenSQLDB(ctx, db)
		if err != nil {
			return nil, err
		}
		deps.onClose("sql db", handle.Close)

		if err := migrate(ctx, db, handle, logger); err != nil {
			return nil, err
		}

		return postgresengine.NewStoreFromSQLDB(handle, storeOptions(deps, logger)...)

	case config.DriverSQLX:
		handle, err := config.OpenSQLX(ctx, db)
		if err != nil {
			return nil, err
		}
		deps.onClose("sqlx db", handle.Close)

		if err := migrate(ctx, db, handle.DB, logger); err != nil {
			return nil, err
		}

		return postgresengine.NewStoreFromSQLX(handle, storeOptions(deps, logger)...)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

func migrate(ctx context.Context, db config.DatabaseConfig, handle *sql.DB, logger *slog.Logger) error {
	if db.SkipMigrations {
		return nil
	}

	versions, err := migrations.Up(ctx, handle)
	if err != nil {
		return err
	}

	logger.Info(logMsgMigrated, logAttrVersions, versions)

	return nil
}

func buildNotifier(cfg *config.Config, deps *dependencies) (shell.Notifier, error) {
	if cfg.Notifier.Kind != config.NotifierAMQP {
		return inbox.NewNotifier(deps.store.Messages()), nil
	}

	conn, err := amqpnotifier.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	deps.onClose("amqp connection", conn.Close)

	return amqpnotifier.NewNotifier(conn.Channel, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
}

func buildLimiter(cfg *config.Config, deps *dependencies) (ratelimit.Limiter, error) {
	quota := cfg.RateLimit

	switch {
	case quota.Disabled:
		return ratelimit.Unlimited{}, nil

	case quota.Kind == config.LimiterRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.onClose("redis client", client.Close)

		return ratelimit.NewRedisFixedWindow(client, quota.Requests, quota.Window)

	default:
		return ratelimit.NewTokenBucket(quota.Requests, quota.Window)
	}
}
