// Package dto provides response types for analytics HTTP endpoints.
package dto

import (
	"time"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
)

// SummaryResponse is the API representation of the aggregate counters. Count
// maps are flattened to top-level keys so dashboard clients can address each
// dimension directly.
type SummaryResponse struct {
	TotalUsers  int64     `json:"totalUsers"`
	LastUpdated time.Time `json:"lastUpdated"`

	GenderIdentityCount map[string]int64 `json:"genderIdentityCount"`
	CityCount           map[string]int64 `json:"cityCount"`
	CivilStatusCount    map[string]int64 `json:"civilStatusCount"`
	EducationLevelCount map[string]int64 `json:"educationLevelCount"`
	AgeRangeCount       map[string]int64 `json:"ageRangeCount"`
	BarangayCount       map[string]int64 `json:"barangayCount"`

	DiagnosedSTICount           map[string]int64 `json:"diagnosedSTICount"`
	HasHepatitisCount           map[string]int64 `json:"hasHepatitisCount"`
	HasTuberculosisCount        map[string]int64 `json:"hasTuberculosisCount"`
	HasMultiplePartnerRiskCount map[string]int64 `json:"hasMultiplePartnerRiskCount"`
	IsOFWCount                  map[string]int64 `json:"isOFWCount"`
	IsPregnantCount             map[string]int64 `json:"isPregnantCount"`
	IsStudyingCount             map[string]int64 `json:"isStudyingCount"`
	LivingWithPartnerCount      map[string]int64 `json:"livingWithPartnerCount"`
	MotherHadHIVCount           map[string]int64 `json:"motherHadHIVCount"`
}

// ToSummaryResponse converts the domain summary to its API representation.
// Absent count maps come back as empty objects, never null.
func ToSummaryResponse(summary *domain.Summary) SummaryResponse {
	counts := func(key string) map[string]int64 {
		if m := summary.Counts[key]; m != nil {
			return m
		}
		return map[string]int64{}
	}

	return SummaryResponse{
		TotalUsers:                  summary.TotalUsers,
		LastUpdated:                 summary.LastUpdated,
		GenderIdentityCount:         counts("genderIdentityCount"),
		CityCount:                   counts("cityCount"),
		CivilStatusCount:            counts("civilStatusCount"),
		EducationLevelCount:         counts("educationLevelCount"),
		AgeRangeCount:               counts("ageRangeCount"),
		BarangayCount:               counts("barangayCount"),
		DiagnosedSTICount:           counts("diagnosedSTICount"),
		HasHepatitisCount:           counts("hasHepatitisCount"),
		HasTuberculosisCount:        counts("hasTuberculosisCount"),
		HasMultiplePartnerRiskCount: counts("hasMultiplePartnerRiskCount"),
		IsOFWCount:                  counts("isOFWCount"),
		IsPregnantCount:             counts("isPregnantCount"),
		IsStudyingCount:             counts("isStudyingCount"),
		LivingWithPartnerCount:      counts("livingWithPartnerCount"),
		MotherHadHIVCount:           counts("motherHadHIVCount"),
	}
}
