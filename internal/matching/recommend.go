package matching

import "strings"

// RecommendationKind identifies a follow-up action.
type RecommendationKind string

const (
	RecommendCourse   RecommendationKind = "course"
	RecommendWorkshop RecommendationKind = "workshop"
	RecommendReady    RecommendationKind = "ready"
)

// Recommendation is a suggested next step derived from a Result.
type Recommendation struct {
	Kind   RecommendationKind `json:"kind"`
	Title  string             `json:"title"`
	Detail string             `json:"detail"`
}

// Impact thresholds for the workshop and ready recommendations.
const (
	workshopImpactBelow = 60
	readyImpactAtLeast  = 80
)

var courseRecommendation = Recommendation{
	Kind:   RecommendCourse,
	Title:  "Course: Full Stack Engineering",
	Detail: "Master React and Next.js to fill your skill gap.",
}

var workshopRecommendation = Recommendation{
	Kind:   RecommendWorkshop,
	Title:  "Workshop: Resume Writing 101",
	Detail: "Learn how to quantify your impact with numbers.",
}

var readyRecommendation = Recommendation{
	Kind:   RecommendReady,
	Title:  "Ready to apply",
	Detail: "Your resume is optimized! You are ready to apply.",
}

// DefaultCourseKeywords returns the missing keywords that trigger the course recommendation.
func DefaultCourseKeywords() []string {
	return []string{"React", "Next.js", "Vue"}
}

// Advisor turns results into recommendations.
// An Advisor is immutable and safe for concurrent use.
type Advisor struct {
	courseKeywords []string
}

// NewAdvisor creates an advisor that recommends the course when any of
// courseKeywords is missing. A nil slice selects DefaultCourseKeywords;
// an empty one disables the course recommendation.
func NewAdvisor(courseKeywords []string) *Advisor {
	if courseKeywords == nil {
		courseKeywords = DefaultCourseKeywords()
	}
	kws := make([]string, 0, len(courseKeywords))
	for _, kw := range courseKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			kws = append(kws, kw)
		}
	}
	return &Advisor{courseKeywords: kws}
}

var defaultAdvisor = NewAdvisor(nil)

// Recommendations applies the default advisor to r.
func Recommendations(r Result) []Recommendation {
	return defaultAdvisor.Recommend(r)
}

// Recommend returns the actions suggested by r, in display order.
// The slice is empty, never nil, when nothing applies.
func (a *Advisor) Recommend(r Result) []Recommendation {
	recs := []Recommendation{}
	if a.missesCourseKeyword(r.MissingKeywords) {
		recs = append(recs, courseRecommendation)
	}
	if r.ImpactScore < workshopImpactBelow {
		recs = append(recs, workshopRecommendation)
	}
	if len(r.MissingKeywords) == 0 && r.ImpactScore >= readyImpactAtLeast {
		recs = append(recs, readyRecommendation)
	}
	return recs
}

// CourseKeywords returns a copy of the course trigger keywords.
func (a *Advisor) CourseKeywords() []string {
	return append([]string(nil), a.courseKeywords...)
}

func (a *Advisor) missesCourseKeyword(missing []string) bool {
	for _, m := range missing {
		for _, kw := range a.courseKeywords {
			if strings.EqualFold(m, kw) {
				return true
			}
		}
	}
	return false
}
