package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"bikeshare/internal/dataprocessing"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

// Analysis is one loaded dataset narrowed by a validated selection.
// Every run builds a fresh Analysis; nothing is cached between runs.
type Analysis struct {
	Selection validation.Selection
	Store     *dataprocessing.RecordStore
	View      *dataprocessing.FilteredView
	TraceID   string
}

// AnalysisService runs the load, filter, report and page steps
type AnalysisService struct {
	loader    *dataprocessing.Loader
	validator *validation.SelectionValidator
	tracer    trace.Tracer
	metrics   *infrastructure.AnalysisMetrics
	logger    *slog.Logger
}

// Option configures an AnalysisService
type Option func(*AnalysisService)

// WithTracer sets the tracer used for spans
func WithTracer(tracer trace.Tracer) Option {
	return func(s *AnalysisService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments updated by the service
func WithMetrics(metrics *infrastructure.AnalysisMetrics) Option {
	return func(s *AnalysisService) {
		s.metrics = metrics
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(loader *dataprocessing.Loader, validator *validation.SelectionValidator, logger *slog.Logger, opts ...Option) *AnalysisService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	s := &AnalysisService{
		loader:    loader,
		validator: validator,
		tracer:    tracenoop.NewTracerProvider().Tracer("bikeshare"),
		logger:    infrastructure.WithComponent(logger, "analysis_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Regions lists the regions a selection may name
func (s *AnalysisService) Regions() []string {
	return s.validator.Regions()
}

// Validator exposes the selection validator for interactive prompts
func (s *AnalysisService) Validator() *validation.SelectionValidator {
	return s.validator
}

// Load validates sel, reads its dataset and applies its filters
func (s *AnalysisService) Load(ctx context.Context, sel validation.Selection) (*Analysis, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	traceID := infrastructure.GetTraceID(ctx)

	sel, err := s.validator.Validate(sel)
	if err != nil {
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "Rejected selection",
			slog.String("region", sel.Region),
			slog.String("month", sel.Month),
			slog.String("day", sel.Day))
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "analysis.load", trace.WithAttributes(
		attribute.String("region", sel.Region),
		attribute.String("month", sel.Month),
		attribute.String("day", sel.Day),
	))
	defer span.End()

	start := time.Now()
	store, err := s.loader.Load(ctx, sel.Region)
	if err != nil {
		s.metrics.RecordDatasetLoad(ctx, sel.Region, 0, time.Since(start), err)
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	s.metrics.RecordDatasetLoad(ctx, sel.Region, store.Len(), time.Since(start), nil)

	view := dataprocessing.Apply(store, sel.Filter())
	s.metrics.RecordView(ctx, sel.Region, view.Len())

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"records":       store.Len(),
		"view_rows":     view.Len(),
		"has_gender":    store.HasGender(),
		"has_birthyear": store.HasBirthYear(),
	})

	s.logger.InfoContext(ctx, "Selection applied",
		slog.String("region", sel.Region),
		slog.String("month", sel.Month),
		slog.String("day", sel.Day),
		slog.Int("records", store.Len()),
		slog.Int("view_rows", view.Len()))

	return &Analysis{Selection: sel, Store: store, View: view, TraceID: traceID}, nil
}

// Report computes the four statistic groups. An empty view yields a report
// with NoData set and no sections.
func (s *AnalysisService) Report(ctx context.Context, a *Analysis) (*domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.report", trace.WithAttributes(
		attribute.String("region", a.Selection.Region),
		attribute.Int("view_rows", a.View.Len()),
	))
	defer span.End()

	report := &domain.Report{
		Region:  a.Selection.Region,
		Month:   a.Selection.Month,
		Day:     a.Selection.Day,
		Trips:   a.View.Len(),
		Elapsed: make(map[string]time.Duration, 4),
	}

	if a.View.Len() == 0 {
		report.NoData = true
		s.logger.InfoContext(ctx, "No trips match selection",
			slog.String("region", a.Selection.Region),
			slog.String("month", a.Selection.Month),
			slog.String("day", a.Selection.Day))
		return report, nil
	}

	sections := []struct {
		name string
		run  func() error
	}{
		{domain.SectionTime, func() error {
			stats, err := dataprocessing.TemporalStats(a.View)
			report.Time = &stats
			return err
		}},
		{domain.SectionStation, func() error {
			stats, err := dataprocessing.StationStats(a.View)
			report.Station = &stats
			return err
		}},
		{domain.SectionDuration, func() error {
			stats, err := dataprocessing.DurationStats(a.View)
			report.Trip = &stats
			return err
		}},
		{domain.SectionUser, func() error {
			stats, err := dataprocessing.UserStats(a.View)
			report.User = &stats
			return err
		}},
	}

	for _, section := range sections {
		start := time.Now()
		if err := section.run(); err != nil {
			if errors.Is(err, apperrors.ErrEmptyView) {
				report.NoData = true
				return report, nil
			}
			infrastructure.RecordError(ctx, err)
			return nil, err
		}
		elapsed := time.Since(start)
		report.Elapsed[section.name] = elapsed
		s.metrics.RecordSection(ctx, section.name, elapsed)
	}

	s.logger.DebugContext(ctx, "Report computed",
		slog.String("region", report.Region),
		slog.Int("trips", report.Trips))

	return report, nil
}

// Page returns the raw rows of page number n (0-based) of the view
func (s *AnalysisService) Page(ctx context.Context, a *Analysis, n int) dataprocessing.Page {
	page := dataprocessing.NewCursorAt(a.View, dataprocessing.PageOffset(n)).Advance()
	s.metrics.RecordPage(ctx, a.Selection.Region)
	return page
}
