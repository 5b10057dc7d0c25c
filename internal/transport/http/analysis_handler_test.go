package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataprocessing"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/services"
	"bikeshare/internal/shared/testutil"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

// MockAnalysisService is a mock implementation of AnalysisServiceInterface
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Regions() []string {
	return []string{"chicago", "new york city", "washington"}
}

func (m *MockAnalysisService) Load(ctx context.Context, sel validation.Selection) (*services.Analysis, error) {
	args := m.Called(sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Analysis), args.Error(1)
}

func (m *MockAnalysisService) Report(ctx context.Context, analysis *services.Analysis) (*domain.Report, error) {
	args := m.Called(analysis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockAnalysisService) Page(ctx context.Context, analysis *services.Analysis, n int) dataprocessing.Page {
	args := m.Called(analysis, n)
	return args.Get(0).(dataprocessing.Page)
}

func chicagoAnalysis(t *testing.T) *services.Analysis {
	t.Helper()
	store, err := dataprocessing.ParseCSV(strings.NewReader(testutil.ChicagoCSV), "chicago.csv")
	require.NoError(t, err)
	return &services.Analysis{
		Selection: validation.Selection{Region: "chicago", Month: "all", Day: "all"},
		Store:     store,
		View:      store.All(),
	}
}

func setupAnalysisRouter(svc AnalysisServiceInterface) http.Handler {
	handler := NewAnalysisHandler(svc, testutil.DiscardLogger(), apierrors.NewErrorHandler(testutil.DiscardLogger(), false))
	r := chi.NewRouter()
	r.Mount("/api/v1", handler.Routes())
	return r
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestAnalysisHandler_ListRegions(t *testing.T) {
	w, body := doGet(t, setupAnalysisRouter(&MockAnalysisService{}), "/api/v1/regions")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["regions"], 3)
	assert.Len(t, body["months"], 7)
	assert.Len(t, body["days"], 8)
	assert.Equal(t, float64(5), body["page_size"])
}

func TestAnalysisHandler_GetStats(t *testing.T) {
	analysis := chicagoAnalysis(t)

	tests := []struct {
		name       string
		target     string
		setup      func(m *MockAnalysisService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "success",
			target: "/api/v1/regions/chicago/stats",
			setup: func(m *MockAnalysisService) {
				m.On("Load", validation.Selection{Region: "chicago"}).Return(analysis, nil)
				m.On("Report", analysis).Return(&domain.Report{Region: "chicago", Month: "all", Day: "all", Trips: 6}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "no data is not an error",
			target: "/api/v1/regions/chicago/stats?month=february",
			setup: func(m *MockAnalysisService) {
				m.On("Load", validation.Selection{Region: "chicago", Month: "february"}).Return(analysis, nil)
				m.On("Report", analysis).Return(&domain.Report{Region: "chicago", NoData: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown region",
			target:     "/api/v1/regions/boston/stats",
			setup:      func(m *MockAnalysisService) {},
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeRegionNotFound,
		},
		{
			name:   "invalid month",
			target: "/api/v1/regions/chicago/stats?month=july",
			setup: func(m *MockAnalysisService) {
				m.On("Load", validation.Selection{Region: "chicago", Month: "july"}).
					Return(nil, apierrors.NewValidationErrors([]apierrors.ValidationError{{Field: "month", Message: "not a valid month"}}))
			},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "dataset missing",
			target: "/api/v1/regions/new%20york%20city/stats",
			setup: func(m *MockAnalysisService) {
				m.On("Load", validation.Selection{Region: "new york city"}).
					Return(nil, apierrors.NewLoadError("failed to open dataset", fmt.Errorf("no such file")))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   apierrors.TypeDatasetUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAnalysisService{}
			tt.setup(svc)

			w, body := doGet(t, setupAnalysisRouter(svc), tt.target)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, body["type"])
			} else {
				assert.Equal(t, "chicago", body["region"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_GetTrips(t *testing.T) {
	analysis := chicagoAnalysis(t)
	svc := &MockAnalysisService{}
	svc.On("Load", validation.Selection{Region: "chicago", Page: 1}).Return(analysis, nil)
	svc.On("Page", analysis, 1).Return(dataprocessing.NewCursorAt(analysis.View, 5).Advance())

	w, body := doGet(t, setupAnalysisRouter(svc), "/api/v1/regions/Chicago/trips?page=1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), body["offset"])
	assert.Equal(t, float64(6), body["total"])
	assert.Equal(t, true, body["done"])
	assert.Len(t, body["rows"], 1)
	svc.AssertExpectations(t)
}

func TestAnalysisHandler_GetTripsPastTheEnd(t *testing.T) {
	analysis := chicagoAnalysis(t)
	svc := &MockAnalysisService{}
	svc.On("Load", validation.Selection{Region: "chicago", Page: 9}).Return(analysis, nil)
	svc.On("Page", analysis, 9).Return(dataprocessing.Page{Offset: 45, Done: true})

	w, body := doGet(t, setupAnalysisRouter(svc), "/api/v1/regions/chicago/trips?page=9")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, body["rows"])
	assert.Equal(t, true, body["done"])
}

func TestAnalysisHandler_GetTripsAcceptsMaxPage(t *testing.T) {
	analysis := chicagoAnalysis(t)
	svc := &MockAnalysisService{}
	svc.On("Load", validation.Selection{Region: "chicago", Page: dataprocessing.MaxPage}).Return(analysis, nil)
	svc.On("Page", analysis, dataprocessing.MaxPage).Return(dataprocessing.Page{Offset: dataprocessing.PageOffset(dataprocessing.MaxPage), Done: true})

	w, body := doGet(t, setupAnalysisRouter(svc), "/api/v1/regions/chicago/trips?page="+strconv.Itoa(dataprocessing.MaxPage))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, body["rows"])
	assert.Equal(t, true, body["done"])
}

func TestAnalysisHandler_GetTripsRejectsBadPage(t *testing.T) {
	for _, page := range []string{"-1", "two", "1844674407370955162", strconv.Itoa(dataprocessing.MaxPage + 1)} {
		t.Run(page, func(t *testing.T) {
			svc := &MockAnalysisService{}

			w, body := doGet(t, setupAnalysisRouter(svc), "/api/v1/regions/chicago/trips?page="+page)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apierrors.TypeValidation, body["type"])
			svc.AssertNotCalled(t, "Load", mock.Anything)
		})
	}
}

func TestAnalysisHandler_UnknownRegionListsRegions(t *testing.T) {
	svc := &MockAnalysisService{}

	w, body := doGet(t, setupAnalysisRouter(svc), "/api/v1/regions/boston/trips")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrRegionNotFound.ErrorCode, body["error_code"])
	assert.Equal(t, `Region "boston" not found`, body["detail"])
	assert.Equal(t, map[string]interface{}{
		"regions": []interface{}{"chicago", "new york city", "washington"},
	}, body["details"])
}
