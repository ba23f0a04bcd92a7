package main

import (
	"time"

	"github.com/dmitrymomot/schemakit/pkg/httpserver"
	"github.com/dmitrymomot/schemakit/pkg/metrics"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

type appConfig struct {
	Env            string `env:"APP_ENV" envDefault:"development"`
	ServiceName    string `env:"APP_NAME" envDefault:"schemad"`
	DefinitionsDir string `env:"DEFINITIONS_DIR" envDefault:"schemas"`
	MaxBodyBytes   int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	CheckCacheSize int           `env:"CHECK_CACHE_SIZE" envDefault:"1024"`
	CheckCacheTTL  time.Duration `env:"CHECK_CACHE_TTL" envDefault:"30s"`

	HTTP     httpserver.Config
	Schema   schema.Config
	Metrics  metrics.Config
	Redis    redisConfig
	Postgres postgresConfig
	Mongo    mongoConfig
}

// Backends are optional: an empty URL leaves the backend and its named
// checks out.

type redisConfig struct {
	URL            string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

type postgresConfig struct {
	URL               string        `env:"PG_CONN_URL"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`
}

type mongoConfig struct {
	URL            string        `env:"MONGODB_URL"`
	Database       string        `env:"MONGODB_DATABASE" envDefault:"schemakit"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"20"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`
}
