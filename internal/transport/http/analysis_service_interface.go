package http

import (
	"context"

	"bikeshare/internal/dataprocessing"
	"bikeshare/internal/services"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations used by handlers
type AnalysisServiceInterface interface {
	Regions() []string
	Load(ctx context.Context, sel validation.Selection) (*services.Analysis, error)
	Report(ctx context.Context, analysis *services.Analysis) (*domain.Report, error)
	Page(ctx context.Context, analysis *services.Analysis, n int) dataprocessing.Page
}
