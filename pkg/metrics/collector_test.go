package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/metrics"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, outcome string) float64 {
	t.Helper()

	for _, m := range family(t, reg, name).GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" && l.GetValue() == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCollector_Observe(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.Config{Namespace: "test", Subsystem: "validator"}, reg)
	assert.Same(t, reg, c.Registry())

	c.ObserveValidation("signup", schema.OutcomeValid, 2*time.Millisecond)
	c.ObserveValidation("signup", schema.OutcomeInvalid, time.Millisecond)
	c.ObserveValidation("signup", schema.OutcomeInvalid, time.Millisecond)
	c.ObserveCheck("signup", schema.OutcomeError, 10*time.Millisecond)

	expected := `
# HELP test_validator_validations_total Records validated, by schema and outcome.
# TYPE test_validator_validations_total counter
test_validator_validations_total{outcome="invalid",schema="signup"} 2
test_validator_validations_total{outcome="valid",schema="signup"} 1
# HELP test_validator_checks_total Custom checks run, by schema and outcome.
# TYPE test_validator_checks_total counter
test_validator_checks_total{outcome="error",schema="signup"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_validator_validations_total", "test_validator_checks_total")
	assert.NoError(t, err)

	hist := family(t, reg, "test_validator_validation_duration_seconds").GetMetric()
	require.Len(t, hist, 1)
	assert.Equal(t, uint64(3), hist[0].GetHistogram().GetSampleCount())

	hist = family(t, reg, "test_validator_check_duration_seconds").GetMetric()
	require.Len(t, hist, 1)
	assert.Equal(t, uint64(1), hist[0].GetHistogram().GetSampleCount())
}

func TestCollector_WithValidator(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.Config{Namespace: "app", Subsystem: "forms"}, reg)

	s := schema.MustNew(&schema.StringField{
		Base: schema.Base{Key: "handle", Required: true, Checks: []schema.Check{{
			Func:    func(_ context.Context, _ string, v any) (bool, error) { return v != "root", nil },
			Message: "reserved",
		}}},
	})
	v := schema.NewValidator(s, schema.WithName("profile"), schema.WithObserver(c))

	ctx := context.Background()
	_, _ = v.Validate(ctx, map[string]any{"handle": "gopher"})
	_, _ = v.Validate(ctx, map[string]any{"handle": "root"})
	_, _ = v.Validate(ctx, map[string]any{})

	assert.InDelta(t, 1, counterValue(t, reg, "app_forms_validations_total", "valid"), 0)
	assert.InDelta(t, 2, counterValue(t, reg, "app_forms_validations_total", "invalid"), 0)
	assert.InDelta(t, 1, counterValue(t, reg, "app_forms_checks_total", "valid"), 0)
	assert.InDelta(t, 1, counterValue(t, reg, "app_forms_checks_total", "invalid"), 0)
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	c := metrics.NewCollector(metrics.Config{}, nil)
	c.ObserveValidation("orders", schema.OutcomeError, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `schemakit_validations_total{outcome="error",schema="orders"} 1`)
}
