package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	"github.com/tehnczon/projectecho/internal/analytics/http/dto"
	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

type MockAnalyticsUseCase struct {
	mock.Mock
}

func (m *MockAnalyticsUseCase) Aggregate(ctx context.Context, record *surveyDomain.RawSurveyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnalyticsUseCase) GetSummary(ctx context.Context) (*domain.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func setupTestHandler(t *testing.T) (*SummaryHandler, *MockAnalyticsUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(MockAnalyticsUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSummaryHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestSummaryHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		summary := domain.NewSummary()
		summary.TotalUsers = 7
		summary.LastUpdated = time.Now().UTC()
		summary.Counts["cityCount"]["Zamboanga"] = 5
		summary.Counts["cityCount"][domain.UnknownBucket] = 2
		summary.Counts["diagnosedSTICount"]["false"] = 7

		mockUseCase.On("GetSummary", mock.Anything).Return(summary, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/analytics/summary")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(7), response.TotalUsers)
		assert.Equal(t, int64(5), response.CityCount["Zamboanga"])
		assert.Equal(t, int64(2), response.CityCount["Unknown"])
		assert.Equal(t, int64(7), response.DiagnosedSTICount["false"])
		assert.NotNil(t, response.BarangayCount)
	})

	t.Run("Success_EmptySummary", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("GetSummary", mock.Anything).Return(domain.NewSummary(), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/analytics/summary")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(0), response["totalUsers"])
		// Count maps serialize as empty objects, not null
		assert.NotNil(t, response["genderIdentityCount"])
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("GetSummary", mock.Anything).
			Return(nil, errors.New("query failed")).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/analytics/summary")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
