// Package usecase implements the survey ingest business logic.
//
// Record creation is the aggregation trigger: the record and its
// survey_record.created outbox event are written in one transaction, so a
// committed record is always picked up by the aggregation worker and an
// aborted one never is.
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/database"
	apperrors "github.com/tehnczon/projectecho/internal/errors"
	outboxDomain "github.com/tehnczon/projectecho/internal/outbox/domain"
	outboxUsecase "github.com/tehnczon/projectecho/internal/outbox/usecase"
	"github.com/tehnczon/projectecho/internal/survey/domain"
)

// CreateRecordInput contains the ingestion payload. Every field is optional;
// the closed, typed shape is the only schema enforcement at this boundary —
// absent values fall back to the aggregation sentinels downstream.
type CreateRecordInput struct {
	GenderIdentity *string `json:"genderIdentity"`
	City           *string `json:"city"`
	CivilStatus    *string `json:"civilStatus"`
	EducationLevel *string `json:"educationLevel"`
	AgeRange       *string `json:"ageRange"`
	Barangay       *string `json:"barangay"`

	DiagnosedSTI           *bool `json:"diagnosedSTI"`
	HasHepatitis           *bool `json:"hasHepatitis"`
	HasTuberculosis        *bool `json:"hasTuberculosis"`
	HasMultiplePartnerRisk *bool `json:"hasMultiplePartnerRisk"`
	IsOFW                  *bool `json:"isOFW"`
	IsPregnant             *bool `json:"isPregnant"`
	IsStudying             *bool `json:"isStudying"`
	LivingWithPartner      *bool `json:"livingWithPartner"`
	MotherHadHIV           *bool `json:"motherHadHIV"`
}

// UseCase defines the interface for survey ingest operations
type UseCase interface {
	CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.RawSurveyRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error)
}

// SurveyRepository defines survey record repository operations
type SurveyRepository interface {
	Create(ctx context.Context, record *domain.RawSurveyRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error)
}

// SurveyUseCase handles survey ingest business logic
type SurveyUseCase struct {
	txManager  database.TxManager
	surveyRepo SurveyRepository
	outboxRepo outboxUsecase.OutboxEventRepository
}

// NewSurveyUseCase creates a new SurveyUseCase
func NewSurveyUseCase(
	txManager database.TxManager,
	surveyRepo SurveyRepository,
	outboxRepo outboxUsecase.OutboxEventRepository,
) *SurveyUseCase {
	return &SurveyUseCase{
		txManager:  txManager,
		surveyRepo: surveyRepo,
		outboxRepo: outboxRepo,
	}
}

// CreateRecord persists a raw survey record together with its creation event.
func (uc *SurveyUseCase) CreateRecord(
	ctx context.Context,
	input CreateRecordInput,
) (*domain.RawSurveyRecord, error) {
	record := &domain.RawSurveyRecord{
		ID:                     uuid.Must(uuid.NewV7()),
		GenderIdentity:         input.GenderIdentity,
		City:                   input.City,
		CivilStatus:            input.CivilStatus,
		EducationLevel:         input.EducationLevel,
		AgeRange:               input.AgeRange,
		Barangay:               input.Barangay,
		DiagnosedSTI:           input.DiagnosedSTI,
		HasHepatitis:           input.HasHepatitis,
		HasTuberculosis:        input.HasTuberculosis,
		HasMultiplePartnerRisk: input.HasMultiplePartnerRisk,
		IsOFW:                  input.IsOFW,
		IsPregnant:             input.IsPregnant,
		IsStudying:             input.IsStudying,
		LivingWithPartner:      input.LivingWithPartner,
		MotherHadHIV:           input.MotherHadHIV,
		CreatedAt:              time.Now().UTC(),
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.surveyRepo.Create(ctx, record); err != nil {
			return err
		}

		payload, err := json.Marshal(domain.RecordCreatedPayload{RecordID: record.ID})
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal record created payload")
		}

		event := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: domain.EventTypeRecordCreated,
			Payload:   string(payload),
			Status:    outboxDomain.OutboxEventStatusPending,
		}

		return uc.outboxRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetRecord retrieves a raw survey record by ID.
func (uc *SurveyUseCase) GetRecord(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error) {
	return uc.surveyRepo.GetByID(ctx, id)
}
