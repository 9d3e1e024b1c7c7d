package usecase

import (
	"context"
	"time"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	"github.com/tehnczon/projectecho/internal/metrics"
	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

// analyticsUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type analyticsUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAnalyticsUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewAnalyticsUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &analyticsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Aggregate records metrics for aggregation operations.
func (a *analyticsUseCaseWithMetrics) Aggregate(ctx context.Context, record *surveyDomain.RawSurveyRecord) error {
	start := time.Now()
	err := a.next.Aggregate(ctx, record)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "analytics", "record_aggregate", status)
	a.metrics.RecordDuration(ctx, "analytics", "record_aggregate", time.Since(start), status)

	return err
}

// GetSummary records metrics for summary reads.
func (a *analyticsUseCaseWithMetrics) GetSummary(ctx context.Context) (*domain.Summary, error) {
	start := time.Now()
	summary, err := a.next.GetSummary(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "analytics", "summary_get", status)
	a.metrics.RecordDuration(ctx, "analytics", "summary_get", time.Since(start), status)

	return summary, err
}
