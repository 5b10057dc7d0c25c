package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bikeshare/internal/config"
)

// DatasetStatus describes whether one configured dataset file is usable
type DatasetStatus struct {
	Region string `json:"region"`
	Path   string `json:"path"`
	Ready  bool   `json:"ready"`
	Error  string `json:"error,omitempty"`
}

// DatasetValidator checks configured dataset files before they are loaded
type DatasetValidator struct {
	logger *slog.Logger
}

// NewDatasetValidator creates a new dataset validator
func NewDatasetValidator(logger *slog.Logger) *DatasetValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetValidator{
		logger: logger.With(slog.String("component", "dataset_validator")),
	}
}

// ValidateDatasets reports the status of every configured region in sorted
// region order. A missing file is reported, not returned as an error, so the
// remaining regions stay usable.
func (v *DatasetValidator) ValidateDatasets(datasets config.DatasetsConfig) []DatasetStatus {
	statuses := make([]DatasetStatus, 0, len(datasets.Files))
	for _, region := range datasets.Regions() {
		path, _ := datasets.Path(region)
		status := DatasetStatus{Region: region, Path: path, Ready: true}
		if err := v.ValidateFile(path); err != nil {
			status.Ready = false
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// ValidateFile checks that a dataset file exists, is readable and has a
// supported extension
func (v *DatasetValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("Dataset file does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat dataset file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Dataset path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".xlsx", ".xlsm":
	default:
		v.logger.Error("Unsupported dataset format",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s has unsupported extension %q", path, ext)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Dataset file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Dataset file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
