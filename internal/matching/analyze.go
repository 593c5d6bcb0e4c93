package matching

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// Scoring weights and heuristics.
// Weights are in tenths so the total can be computed in integers.
const (
	contentWeight   = 6
	structureWeight = 2
	impactWeight    = 2
	weightTotal     = contentWeight + structureWeight + impactWeight

	impactBaseline  = 40
	impactPerSignal = 10
	maxScore        = 100

	// structureMinLength is the resume length (in UTF-16 code units) above
	// which the resume is considered complete.
	structureMinLength = 500
	structureComplete  = 95
	structureSparse    = 60
)

// Baseline sub-scores returned when the job description names no catalog term.
const (
	BaselineScore          = 80
	BaselineStructureScore = 90
	BaselineImpactScore    = 70
)

// impactPattern matches quantified achievements and impact verbs.
// Matches are counted leftmost-first and never overlap.
var impactPattern = regexp.MustCompile(`\d+%|\$\d+|\d+x|increased|reduced|optimized`)

// Result is the outcome of one analysis.
type Result struct {
	Score           int      `json:"score"`
	MissingKeywords []string `json:"missingKeywords"`
	FoundKeywords   []string `json:"foundKeywords"`
	StructureScore  int      `json:"structureScore"`
	ImpactScore     int      `json:"impactScore"`
}

// Matcher analyzes resumes against job descriptions with a fixed catalog.
type Matcher struct {
	catalog *Catalog
	advisor *Advisor
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithAdvisor sets the advisor used to fill Report.Recommendations.
func WithAdvisor(a *Advisor) MatcherOption {
	return func(m *Matcher) {
		if a != nil {
			m.advisor = a
		}
	}
}

// NewMatcher creates a matcher over catalog. A nil catalog selects DefaultCatalog.
func NewMatcher(catalog *Catalog, opts ...MatcherOption) *Matcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	m := &Matcher{catalog: catalog, advisor: defaultAdvisor}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the matcher's catalog.
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// Analyze scores resumeText against jobDescriptionText. It never fails.
func (m *Matcher) Analyze(resumeText, jobDescriptionText string) Result {
	return m.Report(resumeText, jobDescriptionText).Result
}

// Report runs the analysis and returns the result together with its breakdown.
func (m *Matcher) Report(resumeText, jobDescriptionText string) Report {
	resumeLower := strings.ToLower(resumeText)
	required := m.catalog.required(strings.ToLower(jobDescriptionText))

	if len(required) == 0 {
		return m.newReport(baselineResult(), required, 0)
	}

	found := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, kw := range required {
		if strings.Contains(resumeLower, strings.ToLower(kw)) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	content := contentScore(len(found), len(required))
	impact := impactScore(resumeLower)
	structure := structureScore(resumeText)

	return m.newReport(Result{
		Score:           weightedScore(content, structure, impact),
		MissingKeywords: missing,
		FoundKeywords:   found,
		StructureScore:  structure,
		ImpactScore:     impact,
	}, required, content)
}

// Analyze is a convenience wrapper around NewMatcher(catalog).Analyze.
func Analyze(catalog *Catalog, resumeText, jobDescriptionText string) Result {
	return NewMatcher(catalog).Analyze(resumeText, jobDescriptionText)
}

func baselineResult() Result {
	return Result{
		Score:           BaselineScore,
		MissingKeywords: []string{},
		FoundKeywords:   []string{},
		StructureScore:  BaselineStructureScore,
		ImpactScore:     BaselineImpactScore,
	}
}

// contentScore is the percentage of required keywords found, rounded.
func contentScore(found, required int) int {
	if required == 0 {
		return 0
	}
	return divRound(maxScore*found, required)
}

// impactScore counts impact signals in the lower-cased resume.
func impactScore(resumeLower string) int {
	signals := len(impactPattern.FindAllStringIndex(resumeLower, -1))
	return min(maxScore, signals*impactPerSignal+impactBaseline)
}

// structureScore is a length proxy for resume completeness.
func structureScore(resumeText string) int {
	if textLength(resumeText) > structureMinLength {
		return structureComplete
	}
	return structureSparse
}

// textLength counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func weightedScore(content, structure, impact int) int {
	return divRound(content*contentWeight+structure*structureWeight+impact*impactWeight, weightTotal)
}

// divRound divides two non-negative integers, rounding half away from zero.
func divRound(num, den int) int {
	return (2*num + den) / (2 * den)
}
