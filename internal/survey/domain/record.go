// Package domain defines the raw survey record owned by the ingest boundary.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeRecordCreated is emitted on the outbox when a record is created.
// The aggregation worker consumes it.
const EventTypeRecordCreated = "survey_record.created"

// RecordCreatedPayload is the outbox payload for EventTypeRecordCreated.
type RecordCreatedPayload struct {
	RecordID uuid.UUID `json:"record_id"`
}

// RawSurveyRecord is one anonymous survey submission. The field set is
// closed: six categorical string fields and nine boolean risk/status fields,
// all optional at ingestion. Records are immutable once created; the
// aggregation pipeline folds each record into the analytics summary exactly
// once.
type RawSurveyRecord struct {
	ID uuid.UUID

	// Categorical fields. A nil value aggregates into the "Unknown" bucket.
	GenderIdentity *string
	City           *string
	CivilStatus    *string
	EducationLevel *string
	AgeRange       *string
	Barangay       *string

	// Boolean fields. A nil value aggregates into the "false" bucket.
	DiagnosedSTI           *bool
	HasHepatitis           *bool
	HasTuberculosis        *bool
	HasMultiplePartnerRisk *bool
	IsOFW                  *bool
	IsPregnant             *bool
	IsStudying             *bool
	LivingWithPartner      *bool
	MotherHadHIV           *bool

	CreatedAt time.Time
}
