package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/schemakit/handler"
	"github.com/dmitrymomot/schemakit/pkg/checks"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

var (
	errRedisNotReady    = errors.New("redis is not ready")
	errPostgresNotReady = errors.New("postgres is not ready")
	errMongoNotReady    = errors.New("mongodb is not ready")
)

// backends holds the connected stores. Factories and readiness probes are
// produced only for the ones configured.
type backends struct {
	redis    *redis.Client
	postgres *pgxpool.Pool
	mongo    *mongo.Client
	mongoDB  string
}

func connectBackends(ctx context.Context, cfg appConfig, log *slog.Logger) (*backends, error) {
	b := &backends{mongoDB: cfg.Mongo.Database}

	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.redis = client
		log.InfoContext(ctx, "connected", logger.Component("redis"))
	}
	if cfg.Postgres.URL != "" {
		pool, err := connectPostgres(ctx, cfg.Postgres)
		if err != nil {
			b.close(ctx)
			return nil, err
		}
		b.postgres = pool
		log.InfoContext(ctx, "connected", logger.Component("postgres"))
	}
	if cfg.Mongo.URL != "" {
		client, err := connectMongo(ctx, cfg.Mongo)
		if err != nil {
			b.close(ctx)
			return nil, err
		}
		b.mongo = client
		log.InfoContext(ctx, "connected", logger.Component("mongo"))
	}
	return b, nil
}

func (b *backends) factories() checks.Factories {
	f := checks.Factories{}
	if b.redis != nil {
		f = f.Merge(checks.RedisFactories(b.redis))
	}
	if b.postgres != nil {
		f = f.Merge(checks.PostgresFactories(b.postgres))
	}
	if b.mongo != nil {
		db := b.mongo.Database(b.mongoDB)
		f = f.Merge(checks.MongoFactories(func(name string) checks.Counter {
			return db.Collection(name)
		}))
	}
	return f
}

func (b *backends) readiness() []handler.RouterOption {
	var opts []handler.RouterOption
	if b.redis != nil {
		opts = append(opts, handler.WithReadiness("redis", func(ctx context.Context) error {
			return b.redis.Ping(ctx).Err()
		}))
	}
	if b.postgres != nil {
		opts = append(opts, handler.WithReadiness("postgres", b.postgres.Ping))
	}
	if b.mongo != nil {
		opts = append(opts, handler.WithReadiness("mongo", func(ctx context.Context) error {
			return b.mongo.Ping(ctx, nil)
		}))
	}
	return opts
}

func (b *backends) close(ctx context.Context) {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.postgres != nil {
		b.postgres.Close()
	}
	if b.mongo != nil {
		_ = b.mongo.Disconnect(ctx)
	}
}

func connectRedis(ctx context.Context, cfg redisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(errRedisNotReady, err)
	}

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opt)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
		if err := sleep(ctx, cfg.RetryInterval); err != nil {
			return nil, errors.Join(errRedisNotReady, err)
		}
	}
	return nil, errors.Join(errRedisNotReady, lastErr)
}

// connectPostgres waits attempt*RetryInterval between attempts.
func connectPostgres(ctx context.Context, cfg postgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Join(errPostgresNotReady, err)
	}
	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MaxIdleConns
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		if err := sleep(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
			return nil, errors.Join(errPostgresNotReady, err)
		}
	}
	return nil, errors.Join(errPostgresNotReady, lastErr)
}

func connectMongo(ctx context.Context, cfg mongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err
		if err := sleep(ctx, cfg.RetryInterval); err != nil {
			return nil, errors.Join(errMongoNotReady, err)
		}
	}
	return nil, errors.Join(errMongoNotReady, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
