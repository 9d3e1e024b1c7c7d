package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/identity/domain"
	"github.com/tehnczon/projectecho/internal/metrics"
)

// identityUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type identityUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewIdentityUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &identityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Submit records metrics for identity submissions.
func (i *identityUseCaseWithMetrics) Submit(ctx context.Context, phoneNumber string) (*domain.EncryptedIdentity, error) {
	start := time.Now()
	identity, err := i.next.Submit(ctx, phoneNumber)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "identity_submit", status)
	i.metrics.RecordDuration(ctx, "identity", "identity_submit", time.Since(start), status)

	return identity, err
}

// FindByPhone records metrics for blind index lookups.
func (i *identityUseCaseWithMetrics) FindByPhone(ctx context.Context, phoneNumber string) ([]*domain.EncryptedIdentity, error) {
	start := time.Now()
	identities, err := i.next.FindByPhone(ctx, phoneNumber)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "identity_find", status)
	i.metrics.RecordDuration(ctx, "identity", "identity_find", time.Since(start), status)

	return identities, err
}

// Reveal records metrics for identity decryption.
func (i *identityUseCaseWithMetrics) Reveal(ctx context.Context, id uuid.UUID) (string, error) {
	start := time.Now()
	phoneNumber, err := i.next.Reveal(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "identity_reveal", status)
	i.metrics.RecordDuration(ctx, "identity", "identity_reveal", time.Since(start), status)

	return phoneNumber, err
}
