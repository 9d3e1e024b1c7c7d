package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/tehnczon/projectecho/internal/outbox/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEventProcessor is a mock implementation of EventProcessor
type MockEventProcessor struct {
	mock.Mock
}

func (m *MockEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func pendingEvent() *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: "survey_record.created",
		Payload:   `{"record_id":"0192f0c1-0000-7000-8000-000000000000"}`,
		Status:    domain.OutboxEventStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func newUseCase(
	repo *MockOutboxEventRepository,
	processor *MockEventProcessor,
) (*OutboxUseCase, *MockTxManager) {
	txManager := &MockTxManager{}
	config := Config{
		Interval:   10 * time.Millisecond,
		BatchSize:  10,
		MaxRetries: 3,
	}
	return NewOutboxUseCase(config, txManager, repo, processor, slog.New(slog.DiscardHandler)), txManager
}

func TestProcessEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("marks processed on success", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		event := pendingEvent()
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", mock.Anything, event).Return(nil)
		repo.On("Update", mock.Anything, event).Return(nil)

		err := uc.ProcessEvents(ctx)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutboxEventStatusProcessed, event.Status)
		assert.NotNil(t, event.ProcessedAt)
		repo.AssertExpectations(t)
		processor.AssertExpectations(t)
	})

	t.Run("no-op when there are no pending events", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{}, nil)

		err := uc.ProcessEvents(ctx)
		assert.NoError(t, err)
		processor.AssertNotCalled(t, "Process")
	})

	t.Run("records failure and keeps event pending for retry", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		event := pendingEvent()
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", mock.Anything, event).Return(errors.New("summary commit failed"))
		repo.On("Update", mock.Anything, event).Return(nil)

		err := uc.ProcessEvents(ctx)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutboxEventStatusPending, event.Status)
		assert.Equal(t, 1, event.Retries)
		assert.NotNil(t, event.LastError)
	})

	t.Run("marks failed after max retries", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		event := pendingEvent()
		event.Retries = 2

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", mock.Anything, event).Return(errors.New("boom"))
		repo.On("Update", mock.Anything, event).Return(nil)

		err := uc.ProcessEvents(ctx)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutboxEventStatusFailed, event.Status)
		assert.Equal(t, 3, event.Retries)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).Return(nil, errors.New("db down"))

		err := uc.ProcessEvents(ctx)
		assert.Error(t, err)
	})
}

func TestStart(t *testing.T) {
	t.Run("stops on context cancellation", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		processor := &MockEventProcessor{}
		uc, txManager := newUseCase(repo, processor)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{}, nil).Maybe()

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- uc.Start(ctx)
		}()

		time.Sleep(30 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("Start did not stop after cancellation")
		}
	})
}
