// Package dto provides request and response types for survey HTTP endpoints.
package dto

import "github.com/tehnczon/projectecho/internal/survey/usecase"

// CreateRecordRequest is the ingestion payload. All fields are optional:
// absent answers are bucketed under the fallback values during aggregation,
// never rejected here.
type CreateRecordRequest struct {
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

// ToCreateRecordInput converts the request DTO to the use case input.
func ToCreateRecordInput(req CreateRecordRequest) usecase.CreateRecordInput {
	return usecase.CreateRecordInput{
		GenderIdentity:         req.GenderIdentity,
		City:                   req.City,
		CivilStatus:            req.CivilStatus,
		EducationLevel:         req.EducationLevel,
		AgeRange:               req.AgeRange,
		Barangay:               req.Barangay,
		DiagnosedSTI:           req.DiagnosedSTI,
		HasHepatitis:           req.HasHepatitis,
		HasTuberculosis:        req.HasTuberculosis,
		HasMultiplePartnerRisk: req.HasMultiplePartnerRisk,
		IsOFW:                  req.IsOFW,
		IsPregnant:             req.IsPregnant,
		IsStudying:             req.IsStudying,
		LivingWithPartner:      req.LivingWithPartner,
		MotherHadHIV:           req.MotherHadHIV,
	}
}
