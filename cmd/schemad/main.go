// Command schemad serves the schema definitions of a directory over HTTP.
//
// Every YAML or JSON file in DEFINITIONS_DIR becomes a schema validated at
// POST /schemas/{name}/validate. Named checks backed by Redis, PostgreSQL
// or MongoDB are available when the matching connection URL is set.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/dmitrymomot/schemakit/handler"
	"github.com/dmitrymomot/schemakit/pkg/cache"
	"github.com/dmitrymomot/schemakit/pkg/checks"
	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/definition"
	"github.com/dmitrymomot/schemakit/pkg/httpserver"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/metrics"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "schemad: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(handler.RequestIDExtractor()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("schemad stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	b, err := connectBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(context.WithoutCancel(ctx))

	factories := b.factories()
	if cfg.CheckCacheSize > 0 {
		factories = factories.WithCache(cache.NewLRUCache[string, bool](cfg.CheckCacheSize, cache.WithTTL(cfg.CheckCacheTTL)))
	}

	collector := metrics.NewCollector(cfg.Metrics, nil)
	reg, err := buildRegistry(os.DirFS(cfg.DefinitionsDir), factories,
		schema.WithConfig(cfg.Schema),
		schema.WithObserver(collector),
		schema.WithLogger(log.With(logger.Component("validator"))),
	)
	if err != nil {
		return err
	}
	for _, info := range reg.List() {
		log.InfoContext(ctx, "schema loaded", logger.Schema(info.Name), slog.Int("fields", info.Fields))
	}

	router := handler.NewRouter(reg, append(b.readiness(),
		handler.WithRouterLogger(log.With(logger.Component("http"))),
		handler.WithMetrics(collector.Handler()),
		handler.WithValidateOptions(handler.WithMaxBodyBytes(cfg.MaxBodyBytes)),
	)...)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log.With(logger.Component("httpserver"))),
		httpserver.WithSignals(),
	)
	return srv.Run(ctx, router)
}

// buildRegistry loads every definition in fsys and registers a validator
// for each under its definition name.
func buildRegistry(fsys fs.FS, factories checks.Factories, opts ...schema.Option) (*handler.Registry, error) {
	defs, err := definition.LoadFS(fsys, definition.WithFactories(factories))
	if err != nil {
		return nil, err
	}

	reg := handler.NewRegistry()
	for _, d := range defs {
		v := schema.NewValidator(d.Schema, slices.Concat(opts, []schema.Option{schema.WithName(d.Name)})...)
		reg.Register(d.Name, d.Description, v)
	}
	return reg, nil
}
