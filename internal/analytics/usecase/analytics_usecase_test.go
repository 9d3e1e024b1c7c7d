package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	apperrors "github.com/tehnczon/projectecho/internal/errors"
	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) ClaimRecord(ctx context.Context, recordID uuid.UUID) (bool, error) {
	args := m.Called(ctx, recordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSummaryRepository) IncrementBuckets(ctx context.Context, summaryID string, increments []domain.BucketIncrement) error {
	args := m.Called(ctx, summaryID, increments)
	return args.Error(0)
}

func (m *MockSummaryRepository) IncrementTotal(ctx context.Context, summaryID string) error {
	args := m.Called(ctx, summaryID)
	return args.Error(0)
}

func (m *MockSummaryRepository) GetSummary(ctx context.Context, summaryID string) (*domain.Summary, error) {
	args := m.Called(ctx, summaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestAnalyticsUseCase_Aggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("counts record into every dimension", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		record := &surveyDomain.RawSurveyRecord{
			ID:           uuid.Must(uuid.NewV7()),
			City:         strPtr("Zamboanga"),
			DiagnosedSTI: boolPtr(true),
		}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		summaryRepo.On("ClaimRecord", ctx, record.ID).Return(true, nil)
		summaryRepo.On("IncrementBuckets", ctx, domain.SummaryID, domain.Increments(record)).Return(nil)
		summaryRepo.On("IncrementTotal", ctx, domain.SummaryID).Return(nil)

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		err := uc.Aggregate(ctx, record)

		require.NoError(t, err)
		summaryRepo.AssertExpectations(t)
	})

	t.Run("already claimed record is a no-op", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		record := &surveyDomain.RawSurveyRecord{ID: uuid.Must(uuid.NewV7())}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		summaryRepo.On("ClaimRecord", ctx, record.ID).Return(false, nil)

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		err := uc.Aggregate(ctx, record)

		require.NoError(t, err)
		summaryRepo.AssertNotCalled(t, "IncrementBuckets", mock.Anything, mock.Anything, mock.Anything)
		summaryRepo.AssertNotCalled(t, "IncrementTotal", mock.Anything, mock.Anything)
	})

	t.Run("bucket increment failure aborts the whole fold", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		record := &surveyDomain.RawSurveyRecord{ID: uuid.Must(uuid.NewV7())}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		summaryRepo.On("ClaimRecord", ctx, record.ID).Return(true, nil)
		summaryRepo.On("IncrementBuckets", ctx, domain.SummaryID, mock.Anything).
			Return(errors.New("deadlock detected"))

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		err := uc.Aggregate(ctx, record)

		assert.ErrorIs(t, err, apperrors.ErrSummaryCommitFailed)
		summaryRepo.AssertNotCalled(t, "IncrementTotal", mock.Anything, mock.Anything)
	})

	t.Run("total increment failure surfaces as commit failure", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		record := &surveyDomain.RawSurveyRecord{ID: uuid.Must(uuid.NewV7())}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		summaryRepo.On("ClaimRecord", ctx, record.ID).Return(true, nil)
		summaryRepo.On("IncrementBuckets", ctx, domain.SummaryID, mock.Anything).Return(nil)
		summaryRepo.On("IncrementTotal", ctx, domain.SummaryID).Return(errors.New("connection reset"))

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		err := uc.Aggregate(ctx, record)

		assert.ErrorIs(t, err, apperrors.ErrSummaryCommitFailed)
	})

	t.Run("claim failure surfaces as commit failure", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		record := &surveyDomain.RawSurveyRecord{ID: uuid.Must(uuid.NewV7())}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		summaryRepo.On("ClaimRecord", ctx, record.ID).Return(false, errors.New("connection refused"))

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		err := uc.Aggregate(ctx, record)

		assert.ErrorIs(t, err, apperrors.ErrSummaryCommitFailed)
	})
}

func TestAnalyticsUseCase_GetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns current summary", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		expected := domain.NewSummary()
		expected.TotalUsers = 42
		expected.Counts["cityCount"]["Zamboanga"] = 40
		summaryRepo.On("GetSummary", ctx, domain.SummaryID).Return(expected, nil)

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		summary, err := uc.GetSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(42), summary.TotalUsers)
		assert.Equal(t, int64(40), summary.Counts["cityCount"]["Zamboanga"])
	})

	t.Run("propagates repository error", func(t *testing.T) {
		txManager := new(MockTxManager)
		summaryRepo := new(MockSummaryRepository)

		summaryRepo.On("GetSummary", ctx, domain.SummaryID).Return(nil, errors.New("query failed"))

		uc := NewAnalyticsUseCase(txManager, summaryRepo, newTestLogger())
		summary, err := uc.GetSummary(ctx)

		assert.Error(t, err)
		assert.Nil(t, summary)
	})
}
