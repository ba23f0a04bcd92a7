package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/handler"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := handler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	}))

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(handler.RequestIDHeader, "abc-123_XYZ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123_XYZ", seen)
		assert.Equal(t, "abc-123_XYZ", rec.Header().Get(handler.RequestIDHeader))
	})

	for name, incoming := range map[string]string{
		"missing":   "",
		"bad chars": "abc 123<script>",
		"too long":  strings.Repeat("a", 129),
	} {
		t.Run("replaces "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if incoming != "" {
				req.Header.Set(handler.RequestIDHeader, incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			assert.Equal(t, seen, rec.Header().Get(handler.RequestIDHeader))
		})
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, handler.RequestIDFromContext(context.Background()))
	assert.Equal(t, "x", handler.RequestIDFromContext(handler.WithRequestID(context.Background(), "x")))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(handler.RequestIDExtractor()),
	)

	log.InfoContext(handler.WithRequestID(context.Background(), "req-42"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	log.InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "request_id")
}
