package config

import (
	"fmt"
	"slices"
)

// Validate performs rule validation on the loaded configuration.
// It must be called after loading, Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DriverPGX, DriverSQL, DriverSQLX, DriverMem}, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of pgx, sql, sqlx, memory (got %q)", c.Database.Driver)
	}

	if c.Database.Driver != DriverMem && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for driver %s", c.Database.Driver)
	}

	if c.Database.ReplicaDSN != "" && c.Database.Driver != DriverPGX {
		return fmt.Errorf("database.replica_dsn is only supported by driver pgx")
	}

	if !slices.Contains([]string{NotifierInbox, NotifierAMQP}, c.Notifier.Kind) {
		return fmt.Errorf("notifier.kind must be inbox or amqp (got %q)", c.Notifier.Kind)
	}

	if !slices.Contains([]string{LimiterMemory, LimiterRedis}, c.RateLimit.Kind) {
		return fmt.Errorf("ratelimit.kind must be memory or redis (got %q)", c.RateLimit.Kind)
	}

	if !c.RateLimit.Disabled && (c.RateLimit.Window <= 0 || c.RateLimit.Requests <= 0) {
		return fmt.Errorf("ratelimit.window and ratelimit.requests must be > 0")
	}

	if !slices.Contains([]string{PolicyLatestFirst, PolicyFCFS}, c.Waitlist.Policy) {
		return fmt.Errorf("waitlist.policy must be latest_first or fcfs (got %q)", c.Waitlist.Policy)
	}

	if c.Relay.Interval <= 0 || c.Relay.BatchSize <= 0 {
		return fmt.Errorf("relay.interval and relay.batch_size must be > 0")
	}

	return nil
}
