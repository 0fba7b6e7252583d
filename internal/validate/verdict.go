// Package validate checks transformed examples against required-field and
// quality rules and aggregates the outcomes into a quality report.
package validate

// Failure reasons. A verdict accumulates every applicable reason; the
// report tallies them per bucket.
const (
	ReasonTooShort   = "too_short"
	ReasonTooLong    = "too_long"
	ReasonLowQuality = "low_quality"
)

// ReasonMissingField names a missing or empty required field.
func ReasonMissingField(field string) string {
	return "missing_field:" + field
}

// Verdict is the validation outcome for one example. Produced once, never
// mutated. Score is always populated, even on failure.
type Verdict struct {
	Index   int      `json:"index"`
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons,omitempty"`
	Score   float64  `json:"score"`
}
