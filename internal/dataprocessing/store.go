package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// RecordStore holds every trip of one regional dataset in file order.
// It is immutable once built.
type RecordStore struct {
	region  string
	source  string
	records []domain.TripRecord
	caps    domain.Capabilities
}

// Len returns the number of records
func (s *RecordStore) Len() int {
	return len(s.records)
}

// At returns the record at position i in file order
func (s *RecordStore) At(i int) domain.TripRecord {
	return s.records[i]
}

// Records exposes the backing slice. Callers must not modify it.
func (s *RecordStore) Records() []domain.TripRecord {
	return s.records
}

// Capabilities reports which optional columns the dataset carries
func (s *RecordStore) Capabilities() domain.Capabilities {
	return s.caps
}

// HasGender reports whether the dataset has a Gender column
func (s *RecordStore) HasGender() bool {
	return s.caps.HasGender
}

// HasBirthYear reports whether the dataset has a Birth Year column
func (s *RecordStore) HasBirthYear() bool {
	return s.caps.HasBirthYear
}

// Region returns the normalized region the store was loaded for
func (s *RecordStore) Region() string {
	return s.region
}

// Source returns the file the records were read from
func (s *RecordStore) Source() string {
	return s.source
}

// All returns an unfiltered view over the whole store
func (s *RecordStore) All() *FilteredView {
	return Apply(s, AllFilter())
}

// Loader builds record stores from the configured region datasets
type Loader struct {
	datasets config.DatasetsConfig
	logger   *slog.Logger
}

// NewLoader creates a loader over the given region to file mapping
func NewLoader(datasets config.DatasetsConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		datasets: datasets,
		logger:   logger.With(slog.String("component", "loader")),
	}
}

// Regions lists the regions this loader can serve
func (l *Loader) Regions() []string {
	return l.datasets.Regions()
}

// Load reads and parses the dataset for region. Every failure is returned as
// a LOAD error and the whole load is abandoned.
func (l *Loader) Load(ctx context.Context, region string) (*RecordStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := l.datasets.Path(region)
	if !ok {
		return nil, apperrors.NewLoadError(
			fmt.Sprintf("unknown region %q", region),
			apperrors.NewNotFoundError("region "+region),
		).WithContext("region", region)
	}

	start := time.Now()
	l.logger.DebugContext(ctx, "Loading dataset",
		slog.String("region", region),
		slog.String("path", path))

	var (
		store *RecordStore
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		store, err = ParseXLSX(path)
	default:
		store, err = parseCSVFile(path)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "Dataset load failed",
			slog.String("region", region),
			slog.String("path", path),
			slog.String("error", err.Error()))
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("region", region)
		}
		return nil, err
	}

	store.region = config.NormalizeRegion(region)

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("region", store.region),
		slog.Int("records", store.Len()),
		slog.Bool("has_gender", store.caps.HasGender),
		slog.Bool("has_birth_year", store.caps.HasBirthYear),
		slog.Duration("duration", time.Since(start)))

	return store, nil
}

func parseCSVFile(path string) (*RecordStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open dataset", err).WithContext("source", path)
	}
	defer f.Close()

	return ParseCSV(f, path)
}
