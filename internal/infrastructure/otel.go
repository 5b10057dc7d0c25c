package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"bikeshare/internal/config"
)

const (
	ServiceName = "bikeshare-explorer"
	MeterName   = "bikeshare"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// OTelConfigFromTelemetry adapts the application telemetry settings
func OTelConfigFromTelemetry(cfg config.TelemetryConfig) *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: config.AppVersion,
		Environment:    env,
		TraceExporter:  cfg.TraceExporter,
		EnableMetrics:  cfg.EnableMetrics,
		EnableTracing:  cfg.EnableTracing,
		SampleRatio:    cfg.SampleRatio,
	}
}

// InitializeOTel initializes tracing and metrics. Disabled signals fall back
// to no-op implementations so callers never need nil checks.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = OTelConfigFromTelemetry(config.Default().Telemetry)
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	// Set up global propagators for trace context
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
		)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics wires a Prometheus-backed meter provider. Each call gets
// its own registry so repeated initialization never collides.
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	otel.SetMeterProvider(mp)

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", "prometheus"))

	return nil
}

// AnalysisMetrics holds the application-specific instruments
type AnalysisMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Dataset metrics
	DatasetLoadsTotal   metric.Int64Counter
	DatasetLoadDuration metric.Float64Histogram
	RecordsLoaded       metric.Int64Counter

	// Analysis metrics
	ViewRows        metric.Int64Histogram
	EmptyViewsTotal metric.Int64Counter
	SectionDuration metric.Float64Histogram
	PagesServed     metric.Int64Counter
}

// CreateAnalysisMetrics creates application-specific metrics
func CreateAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	datasetLoadsTotal, err := meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Total number of dataset loads by region and outcome"),
	)
	if err != nil {
		return nil, err
	}

	datasetLoadDuration, err := meter.Float64Histogram(
		"dataset_load_duration_seconds",
		metric.WithDescription("Time spent reading and parsing a dataset"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	recordsLoaded, err := meter.Int64Counter(
		"dataset_records_loaded_total",
		metric.WithDescription("Total number of trip records parsed"),
	)
	if err != nil {
		return nil, err
	}

	viewRows, err := meter.Int64Histogram(
		"filtered_view_rows",
		metric.WithDescription("Number of rows selected by a filter"),
	)
	if err != nil {
		return nil, err
	}

	emptyViewsTotal, err := meter.Int64Counter(
		"filtered_view_empty_total",
		metric.WithDescription("Total number of filters that selected no rows"),
	)
	if err != nil {
		return nil, err
	}

	sectionDuration, err := meter.Float64Histogram(
		"statistics_section_duration_seconds",
		metric.WithDescription("Time spent computing one statistics section"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	pagesServed, err := meter.Int64Counter(
		"raw_pages_served_total",
		metric.WithDescription("Total number of raw data pages served"),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		DatasetLoadsTotal:   datasetLoadsTotal,
		DatasetLoadDuration: datasetLoadDuration,
		RecordsLoaded:       recordsLoaded,
		ViewRows:            viewRows,
		EmptyViewsTotal:     emptyViewsTotal,
		SectionDuration:     sectionDuration,
		PagesServed:         pagesServed,
	}, nil
}

// RecordDatasetLoad records the outcome of one dataset load
func (m *AnalysisMetrics) RecordDatasetLoad(ctx context.Context, region string, records int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("region", region),
		attribute.String("status", status),
	)

	m.DatasetLoadsTotal.Add(ctx, 1, attrs)
	m.DatasetLoadDuration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		m.RecordsLoaded.Add(ctx, int64(records), metric.WithAttributes(attribute.String("region", region)))
	}
}

// RecordView records the size of a filtered view
func (m *AnalysisMetrics) RecordView(ctx context.Context, region string, rows int) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("region", region))
	m.ViewRows.Record(ctx, int64(rows), attrs)
	if rows == 0 {
		m.EmptyViewsTotal.Add(ctx, 1, attrs)
	}
}

// RecordSection records how long one statistics section took
func (m *AnalysisMetrics) RecordSection(ctx context.Context, section string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SectionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("section", section)))
}

// RecordPage records one served page of raw rows
func (m *AnalysisMetrics) RecordPage(ctx context.Context, region string) {
	if m == nil {
		return
	}
	m.PagesServed.Add(ctx, 1, metric.WithAttributes(attribute.String("region", region)))
}

// RecordHTTPRequest records one completed HTTP request
func (m *AnalysisMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
