package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"bikeshare/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func metricsOnlyConfig() *OTelConfig {
	cfg := OTelConfigFromTelemetry(config.Default().Telemetry)
	cfg.EnableTracing = false
	cfg.EnableMetrics = true
	return cfg
}

// TestOTelInitialization tests OpenTelemetry initialization
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(metricsOnlyConfig(), discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_Disabled(t *testing.T) {
	cfg := metricsOnlyConfig()
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)

	// no-op instruments still work
	metrics, err := CreateAnalysisMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordView(context.Background(), "chicago", 0)
}

func TestOTelInitialization_UnsupportedExporter(t *testing.T) {
	cfg := metricsOnlyConfig()
	cfg.EnableTracing = true
	cfg.TraceExporter = "jaeger"

	_, err := InitializeOTel(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

// TestAnalysisMetricsExposition checks recorded values reach /metrics
func TestAnalysisMetricsExposition(t *testing.T) {
	providers, err := InitializeOTel(metricsOnlyConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateAnalysisMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordDatasetLoad(ctx, "chicago", 42, 10*time.Millisecond, nil)
	metrics.RecordDatasetLoad(ctx, "boston", 0, time.Millisecond, errors.New("unknown region"))
	metrics.RecordView(ctx, "chicago", 0)
	metrics.RecordSection(ctx, "time", time.Millisecond)
	metrics.RecordPage(ctx, "chicago")
	metrics.RecordHTTPRequest(ctx, http.MethodGet, "/api/v1/regions", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "dataset_loads_total")
	assert.Contains(t, body, `status="failure"`)
	assert.Contains(t, body, "dataset_records_loaded_total")
	assert.Contains(t, body, "filtered_view_empty_total")
	assert.Contains(t, body, "raw_pages_served_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestAnalysisMetrics_NilSafe(t *testing.T) {
	var metrics *AnalysisMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordDatasetLoad(ctx, "chicago", 1, time.Second, nil)
		metrics.RecordView(ctx, "chicago", 1)
		metrics.RecordSection(ctx, "user", time.Second)
		metrics.RecordPage(ctx, "chicago")
		metrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Second)
	})
}

// TestSpanHelpers tests span attribute and error recording
func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "load")
	SetSpanAttributes(ctx, map[string]interface{}{
		"region":  "chicago",
		"records": 12,
		"mean":    1.5,
		"cached":  false,
		"other":   time.Second,
	})
	RecordError(ctx, errors.New("missing column"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "chicago", attrs["region"])
	assert.Equal(t, "12", attrs["records"])
	assert.Equal(t, "false", attrs["cached"])
	assert.Equal(t, "1s", attrs["other"])

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestSpanHelpers_NonRecording(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		SetSpanAttributes(ctx, map[string]interface{}{"a": 1})
		RecordError(ctx, errors.New("x"))
	})
}
