package dto

import (
	"time"

	"github.com/tehnczon/projectecho/internal/survey/domain"
)

// RecordResponse is the API representation of a stored survey record.
type RecordResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	GenderIdentity *string `json:"genderIdentity,omitempty"`
	City           *string `json:"city,omitempty"`
	CivilStatus    *string `json:"civilStatus,omitempty"`
	EducationLevel *string `json:"educationLevel,omitempty"`
	AgeRange       *string `json:"ageRange,omitempty"`
	Barangay       *string `json:"barangay,omitempty"`

	DiagnosedSTI           *bool `json:"diagnosedSTI,omitempty"`
	HasHepatitis           *bool `json:"hasHepatitis,omitempty"`
	HasTuberculosis        *bool `json:"hasTuberculosis,omitempty"`
	HasMultiplePartnerRisk *bool `json:"hasMultiplePartnerRisk,omitempty"`
	IsOFW                  *bool `json:"isOFW,omitempty"`
	IsPregnant             *bool `json:"isPregnant,omitempty"`
	IsStudying             *bool `json:"isStudying,omitempty"`
	LivingWithPartner      *bool `json:"livingWithPartner,omitempty"`
	MotherHadHIV           *bool `json:"motherHadHIV,omitempty"`
}

// ToRecordResponse converts a domain record to its API representation.
func ToRecordResponse(record *domain.RawSurveyRecord) RecordResponse {
	return RecordResponse{
		ID:                     record.ID.String(),
		CreatedAt:              record.CreatedAt,
		GenderIdentity:         record.GenderIdentity,
		City:                   record.City,
		CivilStatus:            record.CivilStatus,
		EducationLevel:         record.EducationLevel,
		AgeRange:               record.AgeRange,
		Barangay:               record.Barangay,
		DiagnosedSTI:           record.DiagnosedSTI,
		HasHepatitis:           record.HasHepatitis,
		HasTuberculosis:        record.HasTuberculosis,
		HasMultiplePartnerRisk: record.HasMultiplePartnerRisk,
		IsOFW:                  record.IsOFW,
		IsPregnant:             record.IsPregnant,
		IsStudying:             record.IsStudying,
		LivingWithPartner:      record.LivingWithPartner,
		MotherHadHIV:           record.MotherHadHIV,
	}
}
