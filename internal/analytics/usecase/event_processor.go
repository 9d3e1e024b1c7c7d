package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
	outboxDomain "github.com/tehnczon/projectecho/internal/outbox/domain"
	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

// RecordSource loads survey records referenced by outbox events.
type RecordSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*surveyDomain.RawSurveyRecord, error)
}

// RecordEventProcessor consumes survey_record.created outbox events and feeds
// them into the aggregation use case. It is the event-processing half of the
// creation trigger: the outbox worker guarantees delivery, Aggregate
// guarantees exactly-once counting.
type RecordEventProcessor struct {
	analytics    UseCase
	recordSource RecordSource
	logger       *slog.Logger
}

// NewRecordEventProcessor creates a new RecordEventProcessor
func NewRecordEventProcessor(
	analytics UseCase,
	recordSource RecordSource,
	logger *slog.Logger,
) *RecordEventProcessor {
	return &RecordEventProcessor{
		analytics:    analytics,
		recordSource: recordSource,
		logger:       logger,
	}
}

// Process handles a single outbox event. Unknown event types are logged and
// acknowledged so they don't clog the queue.
func (p *RecordEventProcessor) Process(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	switch event.EventType {
	case surveyDomain.EventTypeRecordCreated:
		return p.processRecordCreated(ctx, event)
	default:
		p.logger.Warn("unknown outbox event type, acknowledging",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
		)
		return nil
	}
}

func (p *RecordEventProcessor) processRecordCreated(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	var payload surveyDomain.RecordCreatedPayload
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal record created payload")
	}

	record, err := p.recordSource.GetByID(ctx, payload.RecordID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load survey record for aggregation")
	}

	return p.analytics.Aggregate(ctx, record)
}
