package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-matcher/internal/matching"
)

// Paging limits for ListAnalyses.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Analysis is one stored analysis. The resume itself is never stored,
// only its fingerprint together with the job description.
type Analysis struct {
	ID              uuid.UUID `json:"id"`
	Label           string    `json:"label,omitempty"`
	JobDescription  string    `json:"jobDescriptionText"`
	Fingerprint     string    `json:"fingerprint"`
	Score           int       `json:"score"`
	ContentScore    int       `json:"contentScore"`
	StructureScore  int       `json:"structureScore"`
	ImpactScore     int       `json:"impactScore"`
	Band            string    `json:"band"`
	Baseline        bool      `json:"baseline,omitempty"`
	FoundKeywords   []string  `json:"foundKeywords"`
	MissingKeywords []string  `json:"missingKeywords"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AnalysisCreateInput holds the fields written by SaveAnalysis.
type AnalysisCreateInput struct {
	Label           string
	JobDescription  string
	Fingerprint     string
	Score           int
	ContentScore    int
	StructureScore  int
	ImpactScore     int
	Band            string
	Baseline        bool
	FoundKeywords   []string
	MissingKeywords []string
}

// NewAnalysisInput builds an insert from a finished report.
func NewAnalysisInput(label, jobDescription, fingerprint string, r *matching.Report) *AnalysisCreateInput {
	return &AnalysisCreateInput{
		Label:           label,
		JobDescription:  jobDescription,
		Fingerprint:     fingerprint,
		Score:           r.Score,
		ContentScore:    r.ContentScore,
		StructureScore:  r.StructureScore,
		ImpactScore:     r.ImpactScore,
		Band:            string(r.Band),
		Baseline:        r.Baseline,
		FoundKeywords:   r.FoundKeywords,
		MissingKeywords: r.MissingKeywords,
	}
}

// Result converts the stored row back to the wire result shape.
func (a *Analysis) Result() matching.Result {
	return matching.Result{
		Score:           a.Score,
		MissingKeywords: nonNil(a.MissingKeywords),
		FoundKeywords:   nonNil(a.FoundKeywords),
		StructureScore:  a.StructureScore,
		ImpactScore:     a.ImpactScore,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// normalizePage clamps list paging arguments.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
