package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

type regionKey struct{}

// AnalysisHandler serves statistics and raw trip pages for each region
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// RegionsResponse lists what a client may ask for
type RegionsResponse struct {
	Regions  []string `json:"regions"`
	Months   []string `json:"months"`
	Days     []string `json:"days"`
	PageSize int      `json:"page_size"`
}

// TripsResponse is one page of raw trips
type TripsResponse struct {
	Region       string              `json:"region"`
	Month        string              `json:"month"`
	Day          string              `json:"day"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"page_size"`
	Offset       int                 `json:"offset"`
	Total        int                 `json:"total"`
	Done         bool                `json:"done"`
	Capabilities domain.Capabilities `json:"capabilities"`
	Rows         []domain.TripRecord `json:"rows"`
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/regions", h.ListRegions)
	r.Route("/regions/{region}", func(r chi.Router) {
		r.Use(h.RegionCtx)
		r.Get("/stats", h.GetStats)
		r.Get("/trips", h.GetTrips)
	})

	return r
}

// RegionCtx resolves the {region} parameter and rejects unknown regions with 404
func (h *AnalysisHandler) RegionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		region := config.NormalizeRegion(chi.URLParam(r, "region"))
		for _, known := range h.service.Regions() {
			if region == known {
				ctx := context.WithValue(r.Context(), regionKey{}, region)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		h.errorHandler.HandleError(w, r, apierrors.ErrRegionNotFound.WithDetails(
			fmt.Sprintf("Region %q not found", region),
			map[string]interface{}{"regions": h.service.Regions()},
		))
	})
}

// ListRegions handles GET /api/v1/regions
func (h *AnalysisHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, RegionsResponse{
		Regions:  h.service.Regions(),
		Months:   withAll(dataprocessing.Months),
		Days:     withAll(dataprocessing.Weekdays),
		PageSize: dataprocessing.PageSize,
	})
}

// GetStats handles GET /api/v1/regions/{region}/stats?month=&day=
func (h *AnalysisHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sel, err := h.selection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.Load(ctx, sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Report(ctx, analysis)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(ctx, "stats served",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("region", report.Region),
		slog.Int("trips", report.Trips),
		slog.Bool("no_data", report.NoData))

	render.JSON(w, r, report)
}

// GetTrips handles GET /api/v1/regions/{region}/trips?month=&day=&page=
func (h *AnalysisHandler) GetTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sel, err := h.selection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.Load(ctx, sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page := h.service.Page(ctx, analysis, sel.Page)
	rows := page.Rows
	if rows == nil {
		rows = []domain.TripRecord{}
	}

	render.JSON(w, r, TripsResponse{
		Region:       analysis.Selection.Region,
		Month:        analysis.Selection.Month,
		Day:          analysis.Selection.Day,
		Page:         sel.Page,
		PageSize:     dataprocessing.PageSize,
		Offset:       page.Offset,
		Total:        analysis.View.Len(),
		Done:         page.Done,
		Capabilities: analysis.Store.Capabilities(),
		Rows:         rows,
	})
}

// selection builds a selection from the path region and query parameters
func (h *AnalysisHandler) selection(r *http.Request) (validation.Selection, error) {
	region, _ := r.Context().Value(regionKey{}).(string)
	q := r.URL.Query()

	sel := validation.Selection{
		Region: region,
		Month:  q.Get("month"),
		Day:    q.Get("day"),
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return sel, apierrors.ErrFieldValidation("page", "page must be a non-negative integer")
		}
		if page > dataprocessing.MaxPage {
			return sel, apierrors.ErrFieldValidation("page", fmt.Sprintf("page must not exceed %d", dataprocessing.MaxPage))
		}
		sel.Page = page
	}
	return sel, nil
}

func withAll(values []string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, values...)
	return append(out, config.FilterAll)
}
