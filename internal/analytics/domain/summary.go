// Package domain contains the analytics aggregation model.
//
// The summary is a single logical document of counters. Survey answers are
// never read back out of it; every mutation is an increment keyed by
// (count map, bucket), so concurrent aggregations commute.
package domain

import "time"

// SummaryID is the key of the singleton summary row. All aggregation
// targets this one document.
const SummaryID = "global"

// Fallback buckets for absent answers. An unanswered categorical question
// counts under UnknownBucket; an unanswered boolean counts as "false".
const (
	UnknownBucket      = "Unknown"
	BooleanFalseBucket = "false"
	BooleanTrueBucket  = "true"
)

// Summary is a point-in-time view of the aggregate counters.
type Summary struct {
	TotalUsers  int64                       `json:"totalUsers"`
	LastUpdated time.Time                   `json:"lastUpdated"`
	Counts      map[string]map[string]int64 `json:"counts"`
}

// NewSummary returns an empty summary with every count map present.
func NewSummary() *Summary {
	counts := make(map[string]map[string]int64, len(CategoricalFields)+len(BooleanFields))
	for _, field := range CategoricalFields {
		counts[field.CountKey] = map[string]int64{}
	}
	for _, field := range BooleanFields {
		counts[field.CountKey] = map[string]int64{}
	}
	return &Summary{Counts: counts}
}

// BucketIncrement is one counter bump derived from a survey record.
type BucketIncrement struct {
	CountKey string
	Bucket   string
}
