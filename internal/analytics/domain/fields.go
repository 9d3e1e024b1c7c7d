package domain

import (
	"strconv"
	"strings"

	surveyDomain "github.com/tehnczon/projectecho/internal/survey/domain"
)

// CategoricalField maps one free-form survey answer to a named count map.
type CategoricalField struct {
	Name     string
	CountKey string
	Value    func(record *surveyDomain.RawSurveyRecord) *string
}

// BooleanField maps one yes/no survey answer to a named count map with
// "true"/"false" buckets.
type BooleanField struct {
	Name     string
	CountKey string
	Value    func(record *surveyDomain.RawSurveyRecord) *bool
}

// CategoricalFields lists every demographic dimension that is aggregated.
// Count map names follow the "<field>Count" convention consumed by clients.
var CategoricalFields = []CategoricalField{
	{"genderIdentity", "genderIdentityCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.GenderIdentity }},
	{"city", "cityCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.City }},
	{"civilStatus", "civilStatusCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.CivilStatus }},
	{"educationLevel", "educationLevelCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.EducationLevel }},
	{"ageRange", "ageRangeCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.AgeRange }},
	{"barangay", "barangayCount", func(r *surveyDomain.RawSurveyRecord) *string { return r.Barangay }},
}

// BooleanFields lists every health indicator that is aggregated.
var BooleanFields = []BooleanField{
	{"diagnosedSTI", "diagnosedSTICount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.DiagnosedSTI }},
	{"hasHepatitis", "hasHepatitisCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.HasHepatitis }},
	{"hasTuberculosis", "hasTuberculosisCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.HasTuberculosis }},
	{"hasMultiplePartnerRisk", "hasMultiplePartnerRiskCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.HasMultiplePartnerRisk }},
	{"isOFW", "isOFWCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.IsOFW }},
	{"isPregnant", "isPregnantCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.IsPregnant }},
	{"isStudying", "isStudyingCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.IsStudying }},
	{"livingWithPartner", "livingWithPartnerCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.LivingWithPartner }},
	{"motherHadHIV", "motherHadHIVCount", func(r *surveyDomain.RawSurveyRecord) *bool { return r.MotherHadHIV }},
}

// CategoricalBucket resolves a categorical answer to its bucket. Absent or
// blank answers land in UnknownBucket; anything else is counted verbatim,
// including casing and typos, so the summary mirrors the raw data.
func CategoricalBucket(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return UnknownBucket
	}
	return *value
}

// BooleanBucket resolves a boolean answer to its "true"/"false" bucket.
// An absent answer counts as "false".
func BooleanBucket(value *bool) string {
	if value == nil {
		return BooleanFalseBucket
	}
	return strconv.FormatBool(*value)
}

// Increments derives the full set of counter bumps for one record: one
// bucket per field, fifteen in total, never more or fewer.
func Increments(record *surveyDomain.RawSurveyRecord) []BucketIncrement {
	increments := make([]BucketIncrement, 0, len(CategoricalFields)+len(BooleanFields))
	for _, field := range CategoricalFields {
		increments = append(increments, BucketIncrement{
			CountKey: field.CountKey,
			Bucket:   CategoricalBucket(field.Value(record)),
		})
	}
	for _, field := range BooleanFields {
		increments = append(increments, BucketIncrement{
			CountKey: field.CountKey,
			Bucket:   BooleanBucket(field.Value(record)),
		})
	}
	return increments
}
