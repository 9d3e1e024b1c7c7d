// Package usecase implements the analytics aggregation business logic.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	"github.com/tehnczon/projectecho/internal/database"
	apperrors "github.com/tehnczon/projectecho/internal/errors"
	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

// UseCase defines the interface for analytics operations
type UseCase interface {
	Aggregate(ctx context.Context, record *surveyDomain.RawSurveyRecord) error
	GetSummary(ctx context.Context) (*domain.Summary, error)
}

// SummaryRepository defines analytics counter repository operations
type SummaryRepository interface {
	ClaimRecord(ctx context.Context, recordID uuid.UUID) (bool, error)
	IncrementBuckets(ctx context.Context, summaryID string, increments []domain.BucketIncrement) error
	IncrementTotal(ctx context.Context, summaryID string) error
	GetSummary(ctx context.Context, summaryID string) (*domain.Summary, error)
}

// AnalyticsUseCase folds survey records into the singleton summary.
//
// Aggregation runs under at-least-once delivery, so the whole fold is one
// transaction gated by a claim on the record ID: either the claim, all
// fifteen bucket increments and the total bump commit together, or none do.
// A redelivered record loses the claim and leaves the summary untouched.
type AnalyticsUseCase struct {
	txManager   database.TxManager
	summaryRepo SummaryRepository
	logger      *slog.Logger
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase
func NewAnalyticsUseCase(
	txManager database.TxManager,
	summaryRepo SummaryRepository,
	logger *slog.Logger,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		txManager:   txManager,
		summaryRepo: summaryRepo,
		logger:      logger,
	}
}

// Aggregate counts one survey record into the summary. Calling it again for
// the same record is a no-op.
func (uc *AnalyticsUseCase) Aggregate(ctx context.Context, record *surveyDomain.RawSurveyRecord) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		claimed, err := uc.summaryRepo.ClaimRecord(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to claim survey record: %w: %w", apperrors.ErrSummaryCommitFailed, err)
		}
		if !claimed {
			uc.logger.Info("survey record already aggregated, skipping",
				slog.String("record_id", record.ID.String()),
			)
			return nil
		}

		if err := uc.summaryRepo.IncrementBuckets(ctx, domain.SummaryID, domain.Increments(record)); err != nil {
			return fmt.Errorf("failed to increment summary buckets: %w: %w", apperrors.ErrSummaryCommitFailed, err)
		}

		if err := uc.summaryRepo.IncrementTotal(ctx, domain.SummaryID); err != nil {
			return fmt.Errorf("failed to increment user total: %w: %w", apperrors.ErrSummaryCommitFailed, err)
		}

		uc.logger.Info("survey record aggregated",
			slog.String("record_id", record.ID.String()),
		)

		return nil
	})
}

// GetSummary returns the current aggregate counters.
func (uc *AnalyticsUseCase) GetSummary(ctx context.Context) (*domain.Summary, error) {
	summary, err := uc.summaryRepo.GetSummary(ctx, domain.SummaryID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load analytics summary")
	}
	return summary, nil
}
