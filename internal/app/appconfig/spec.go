package appconfig

import (
	"time"

	"github.com/laddertrack/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9280"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program would provide a more contextual message when
	// encountered a panic and skips the graceful fiber shutdown on exit.
	DevMode bool `split_words:"true"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// RiotAPIKey is the key sent as X-Riot-Token on every league entries request.
	RiotAPIKey string `required:"true" split_words:"true"`

	// RiotAPIBaseURL is the scheme+host template of the league endpoint; the %s verb is substituted
	// with the account's region subdomain.
	RiotAPIBaseURL string `split_words:"true" default:"https://%s.api.riotgames.com"`

	// RiotAPITimeout bounds a single outbound provider call. There is deliberately no timeout
	// spanning a whole sync batch.
	RiotAPITimeout time.Duration `split_words:"true" default:"10s"`

	// rank sync worker

	// SyncEnabled to indicate whether to start the background rank sync worker within this instance.
	SyncEnabled bool `split_words:"true" default:"true"`

	// SyncInterval is the pause between two full roster passes of the sync worker.
	SyncInterval time.Duration `split_words:"true" default:"1h"`

	// SyncBatchSize is the number of accounts polled before the worker sleeps SyncBatchDelay,
	// as rate-limit courtesy towards the provider.
	SyncBatchSize int `split_words:"true" default:"10"`

	SyncBatchDelay time.Duration `split_words:"true" default:"10s"`

	// member stats aggregation

	// StatsTimezone is the single reference timezone used to bucket events into calendar days.
	// This is a deliberate literal policy: "today" is the same day for every account.
	StatsTimezone string `split_words:"true" default:"America/Los_Angeles"`

	// MaxSamplesPerAccount caps the per-account day-sample history returned to clients.
	MaxSamplesPerAccount int `split_words:"true" default:"50"`

	// CacheDefaultTTL is applied when a member-stats cache entry is populated on an organic read miss.
	CacheDefaultTTL time.Duration `split_words:"true" default:"30m"`

	// CacheRefreshTTL is applied when an entry is populated by the sync worker or an
	// explicit administrative refresh.
	CacheRefreshTTL time.Duration `split_words:"true" default:"2h"`
}

type Config struct {
	ConfigSpec

	AppContext appcontext.Ctx
}
