package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090

database:
  driver: "pgx"
  dsn: "postgres://u:p@localhost:5432/library"
  max_conns: 10

notifier:
  kind: "amqp"

ratelimit:
  kind: "redis"
  window: "5s"
  requests: 2

waitlist:
  policy: "fcfs"

log:
  level: "debug"
  format: "text"
`

func Test_Load_ValidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.Equal(t, DriverPGX, cfg.Database.Driver)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, NotifierAMQP, cfg.Notifier.Kind)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, PolicyFCFS, cfg.Waitlist.Policy)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults for sections absent from the file.
	assert.Equal(t, 50, cfg.Relay.BatchSize)
	assert.Equal(t, "library.notifications", cfg.AMQP.Exchange)
}

func Test_Load_EnvOnlyDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverMem, cfg.Database.Driver)
	assert.Equal(t, NotifierInbox, cfg.Notifier.Kind)
	assert.Equal(t, LimiterMemory, cfg.RateLimit.Kind)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 1, cfg.RateLimit.Requests)
	assert.Equal(t, PolicyLatestFirst, cfg.Waitlist.Policy)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "libraryd", cfg.Telemetry.ServiceName)
}

func Test_Load_EnvOverridesYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))
	t.Setenv("WAITLIST_POLICY", "latest_first")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, PolicyLatestFirst, cfg.Waitlist.Policy)
}

func Test_Load_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

func Test_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database:  DatabaseConfig{Driver: DriverMem},
			Notifier:  NotifierConfig{Kind: NotifierInbox},
			RateLimit: RateLimitConfig{Kind: LimiterMemory, Window: time.Second, Requests: 1},
			Waitlist:  WaitlistConfig{Policy: PolicyLatestFirst},
			Relay:     RelayConfig{Interval: time.Second, BatchSize: 10},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: false},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "pgx without dsn", mutate: func(c *Config) { c.Database.Driver = DriverPGX }, wantErr: true},
		{name: "replica with sql driver", mutate: func(c *Config) {
			c.Database.Driver = DriverSQL
			c.Database.DSN = "postgres://x"
			c.Database.ReplicaDSN = "postgres://y"
		}, wantErr: true},
		{name: "unknown notifier", mutate: func(c *Config) { c.Notifier.Kind = "smtp" }, wantErr: true},
		{name: "unknown policy", mutate: func(c *Config) { c.Waitlist.Policy = "random" }, wantErr: true},
		{name: "zero window", mutate: func(c *Config) { c.RateLimit.Window = 0 }, wantErr: true},
		{name: "zero window but disabled", mutate: func(c *Config) {
			c.RateLimit.Window = 0
			c.RateLimit.Disabled = true
		}, wantErr: false},
		{name: "zero batch", mutate: func(c *Config) { c.Relay.BatchSize = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_PGXPoolConfig_AppliesPoolSettings(t *testing.T) {
	db := DatabaseConfig{MaxConns: 7, MinConns: 1, MaxConnLifetime: time.Minute, ConnectTimeout: 3 * time.Second}

	poolConfig, err := PGXPoolConfig(db, "postgres://u:p@localhost:5432/library")

	require.NoError(t, err)
	assert.Equal(t, int32(7), poolConfig.MaxConns)
	assert.Equal(t, int32(1), poolConfig.MinConns)
	assert.Equal(t, 3*time.Second, poolConfig.ConnConfig.ConnectTimeout)
}
