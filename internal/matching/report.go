package matching

// Band classifies an overall score.
type Band string

const (
	BandStrong Band = "strong"
	BandFair   Band = "fair"
	BandWeak   Band = "weak"
)

// Band thresholds, inclusive.
const (
	strongThreshold = 80
	fairThreshold   = 50
)

// BandFor returns the band a score falls into.
func BandFor(score int) Band {
	switch {
	case score >= strongThreshold:
		return BandStrong
	case score >= fairThreshold:
		return BandFair
	default:
		return BandWeak
	}
}

// Report is a Result with the intermediate values used to compute it.
type Report struct {
	Result
	Band             Band             `json:"band"`
	ContentScore     int              `json:"contentScore"`
	RequiredKeywords []string         `json:"requiredKeywords"`
	Recommendations  []Recommendation `json:"recommendations"`
	// Baseline is set when the job description named no catalog term and
	// the fixed baseline result was returned.
	Baseline bool `json:"baseline"`
}

func (m *Matcher) newReport(result Result, required []string, content int) Report {
	return Report{
		Result:           result,
		Band:             BandFor(result.Score),
		ContentScore:     content,
		RequiredKeywords: required,
		Baseline:         len(required) == 0,
		Recommendations:  m.advisor.Recommend(result),
	}
}
