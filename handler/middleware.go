package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// DefaultMaxBodyBytes caps request bodies read by Validate.
const DefaultMaxBodyBytes int64 = 1 << 20

type recordKey struct{}

// RecordFromContext returns the record validated by Validate, defaults
// included.
func RecordFromContext(ctx context.Context) map[string]any {
	rec, _ := ctx.Value(recordKey{}).(map[string]any)
	return rec
}

// ValidateOption configures Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	maxBytes int64
	logger   *slog.Logger
}

// WithMaxBodyBytes limits the size of the request body.
func WithMaxBodyBytes(n int64) ValidateOption {
	return func(c *validateConfig) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithValidateLogger logs requests that could not be validated.
func WithValidateLogger(l *slog.Logger) ValidateOption {
	return func(c *validateConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Validate decodes the JSON object body of each request and validates it
// with v. Valid requests reach next with the augmented record available
// through RecordFromContext. Invalid records get 422; malformed bodies 400,
// 413 or 415; checks that time out 504 and failing checks 503.
func Validate(v *schema.Validator, opts ...ValidateOption) func(http.Handler) http.Handler {
	cfg := validateConfig{maxBytes: DefaultMaxBodyBytes, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			record, err := decodeRecord(w, r, cfg.maxBytes)
			if err != nil {
				render(w, r, JSONError(err))
				return
			}

			out, err := v.Validate(ctx, record)
			if err != nil {
				if _, ok := schema.AsValidationError(err); !ok {
					cfg.logger.ErrorContext(ctx, "validation failed to complete",
						logger.Schema(v.Name()),
						logger.Error(err),
					)
				}
				render(w, r, JSONError(classify(err)))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, recordKey{}, out)))
		})
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, schema.ErrCheckTimeout):
		return errors.Join(ErrGatewayTimeout, err)
	case errors.Is(err, schema.ErrCheckFailed):
		return errors.Join(ErrServiceUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrServiceUnavailable, err)
	}
	return err
}

func decodeRecord(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]any, error) {
	if !isJSON(r.Header.Get("Content-Type")) {
		return nil, ErrUnsupportedMediaType
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Join(ErrRequestEntityTooLarge, err)
		}
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidJSON
	}

	record, ok := body.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return record, nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
