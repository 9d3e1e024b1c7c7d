package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	outboxDomain "github.com/tehnczon/projectecho/internal/outbox/domain"
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

type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) GetByID(ctx context.Context, id uuid.UUID) (*surveyDomain.RawSurveyRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*surveyDomain.RawSurveyRecord), args.Error(1)
}

func recordCreatedEvent(t *testing.T, recordID uuid.UUID) *outboxDomain.OutboxEvent {
	t.Helper()

	payload, err := json.Marshal(surveyDomain.RecordCreatedPayload{RecordID: recordID})
	require.NoError(t, err)

	return &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: surveyDomain.EventTypeRecordCreated,
		Payload:   string(payload),
		Status:    outboxDomain.OutboxEventStatusPending,
	}
}

func TestRecordEventProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("loads record and aggregates it", func(t *testing.T) {
		analytics := new(MockAnalyticsUseCase)
		recordSource := new(MockRecordSource)

		recordID := uuid.Must(uuid.NewV7())
		record := &surveyDomain.RawSurveyRecord{ID: recordID}

		recordSource.On("GetByID", ctx, recordID).Return(record, nil)
		analytics.On("Aggregate", ctx, record).Return(nil)

		processor := NewRecordEventProcessor(analytics, recordSource, newTestLogger())
		err := processor.Process(ctx, recordCreatedEvent(t, recordID))

		require.NoError(t, err)
		analytics.AssertExpectations(t)
	})

	t.Run("malformed payload fails the event", func(t *testing.T) {
		analytics := new(MockAnalyticsUseCase)
		recordSource := new(MockRecordSource)

		event := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: surveyDomain.EventTypeRecordCreated,
			Payload:   "not json",
		}

		processor := NewRecordEventProcessor(analytics, recordSource, newTestLogger())
		err := processor.Process(ctx, event)

		assert.Error(t, err)
		analytics.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
	})

	t.Run("missing record fails the event for retry", func(t *testing.T) {
		analytics := new(MockAnalyticsUseCase)
		recordSource := new(MockRecordSource)

		recordID := uuid.Must(uuid.NewV7())
		recordSource.On("GetByID", ctx, recordID).Return(nil, surveyDomain.ErrRecordNotFound)

		processor := NewRecordEventProcessor(analytics, recordSource, newTestLogger())
		err := processor.Process(ctx, recordCreatedEvent(t, recordID))

		assert.ErrorIs(t, err, surveyDomain.ErrRecordNotFound)
	})

	t.Run("aggregation error propagates", func(t *testing.T) {
		analytics := new(MockAnalyticsUseCase)
		recordSource := new(MockRecordSource)

		recordID := uuid.Must(uuid.NewV7())
		record := &surveyDomain.RawSurveyRecord{ID: recordID}

		recordSource.On("GetByID", ctx, recordID).Return(record, nil)
		analytics.On("Aggregate", ctx, record).Return(errors.New("commit failed"))

		processor := NewRecordEventProcessor(analytics, recordSource, newTestLogger())
		err := processor.Process(ctx, recordCreatedEvent(t, recordID))

		assert.Error(t, err)
	})

	t.Run("unknown event type is acknowledged", func(t *testing.T) {
		analytics := new(MockAnalyticsUseCase)
		recordSource := new(MockRecordSource)

		event := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: "billing.invoice_created",
			Payload:   "{}",
		}

		processor := NewRecordEventProcessor(analytics, recordSource, newTestLogger())
		err := processor.Process(ctx, event)

		require.NoError(t, err)
		analytics.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
		recordSource.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
