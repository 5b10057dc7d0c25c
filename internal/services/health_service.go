package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	datasets  config.DatasetsConfig
	validator *validation.DatasetValidator
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   string                     `json:"version"`
	Runtime   map[string]interface{}     `json:"runtime,omitempty"`
	Datasets  []validation.DatasetStatus `json:"datasets,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, datasets config.DatasetsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.Int("datasets", len(datasets.Files)))

	return &HealthService{
		version:   version,
		datasets:  datasets,
		validator: validation.NewDatasetValidator(logger),
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("version", hs.version),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports whether every configured dataset can be read.
// The service is "ready" only when all datasets are, "degraded" when some
// are, and "not_ready" when none are.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	statuses := hs.validator.ValidateDatasets(hs.datasets)

	ready := 0
	for _, s := range statuses {
		if s.Ready {
			ready++
		}
	}

	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Datasets:  statuses,
	}
	switch {
	case ready == 0:
		status.Status = "not_ready"
	case ready < len(statuses):
		status.Status = "degraded"
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: datasets unavailable",
			slog.String("status", status.Status),
			slog.Int("ready", ready),
			slog.Int("total", len(statuses)))
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"name":         config.AppName,
		"version":      hs.version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"data_format":  info.DataFormat,
		"api_version":  info.APIVersion,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}
