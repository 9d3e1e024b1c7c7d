package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/metrics"
	"github.com/tehnczon/projectecho/internal/survey/domain"
)

// surveyUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type surveyUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewSurveyUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewSurveyUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &surveyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateRecord records metrics for record creation operations.
func (s *surveyUseCaseWithMetrics) CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.RawSurveyRecord, error) {
	start := time.Now()
	record, err := s.next.CreateRecord(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "survey", "record_create", status)
	s.metrics.RecordDuration(ctx, "survey", "record_create", time.Since(start), status)

	return record, err
}

// GetRecord records metrics for record reads.
func (s *surveyUseCaseWithMetrics) GetRecord(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error) {
	start := time.Now()
	record, err := s.next.GetRecord(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "survey", "record_get", status)
	s.metrics.RecordDuration(ctx, "survey", "record_get", time.Since(start), status)

	return record, err
}
