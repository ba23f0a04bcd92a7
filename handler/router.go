package handler

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	logger    *slog.Logger
	metrics   http.Handler
	readiness map[string]func(context.Context) error
	validate  []ValidateOption
}

func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics serves h on GET /metrics.
func WithMetrics(h http.Handler) RouterOption {
	return func(c *routerConfig) {
		c.metrics = h
	}
}

// WithReadiness adds a dependency probed by GET /readyz.
func WithReadiness(name string, check func(context.Context) error) RouterOption {
	return func(c *routerConfig) {
		if check != nil {
			c.readiness[name] = check
		}
	}
}

// WithValidateOptions passes options to the Validate middleware of the
// validation endpoint.
func WithValidateOptions(opts ...ValidateOption) RouterOption {
	return func(c *routerConfig) {
		c.validate = append(c.validate, opts...)
	}
}

// NewRouter serves the validators in reg.
func NewRouter(reg *Registry, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		logger:    logger.Nop(),
		readiness: map[string]func(context.Context) error{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	validateOpts := append([]ValidateOption{WithValidateLogger(cfg.logger)}, cfg.validate...)

	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, RequestLogger(cfg.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render(w, r, JSONError(ErrNotFound))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render(w, r, JSON(map[string]string{"status": "alive"}))
	})
	r.Get("/readyz", readiness(cfg))
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}

	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			render(w, r, JSON(reg.List()))
		})
		r.Post("/{name}/validate", func(w http.ResponseWriter, r *http.Request) {
			v, ok := reg.Lookup(chi.URLParam(r, "name"))
			if !ok {
				render(w, r, JSONError(ErrSchemaNotFound))
				return
			}
			Validate(v, validateOpts...)(http.HandlerFunc(echoRecord)).ServeHTTP(w, r)
		})
	})

	return r
}

func echoRecord(w http.ResponseWriter, r *http.Request) {
	rec := RecordFromContext(r.Context())
	if rec == nil {
		render(w, r, JSONError(ErrNilRecord))
		return
	}
	render(w, r, JSON(rec))
}

func readiness(cfg routerConfig) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(cfg.readiness))
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		failed := NewValidationError()
		for _, name := range names {
			if err := cfg.readiness[name](ctx); err != nil {
				cfg.logger.ErrorContext(ctx, "readiness check failed",
					logger.Component(name),
					logger.Error(err),
				)
				failed.Add(name, err.Error())
			}
		}
		if !failed.IsEmpty() {
			render(w, r, JSON(JSONResponse{Error: &ErrorDetail{
				Code:    ErrServiceUnavailable.Key,
				Message: "not ready",
				Details: failed,
			}}, WithJSONStatus(http.StatusServiceUnavailable)))
			return
		}
		render(w, r, JSON(map[string]string{"status": "ready"}))
	}
}
