package recommend

import "strings"

// Scored is a recommendation with its estimated impact, effort, and category.
type Scored struct {
	Recommendation  string `json:"recommendation"`
	EstimatedImpact int    `json:"estimated_impact"`
	EffortLevel     int    `json:"effort_level"`
	Category        string `json:"category"`
}

// Buckets groups scored recommendations by priority. A recommendation may
// appear in more than one bucket (a quick win is usually also high priority).
type Buckets struct {
	HighPriority          []Scored `json:"high_priority"`
	MediumPriority        []Scored `json:"medium_priority"`
	LowPriority           []Scored `json:"low_priority"`
	QuickWins             []Scored `json:"quick_wins"`
	StrategicImprovements []Scored `json:"strategic_improvements"`
	Timeline              Timeline `json:"implementation_timeline"`
}

// Timeline counts recommendations per implementation horizon.
type Timeline struct {
	Immediate  int `json:"immediate"`
	ShortTerm  int `json:"short_term"`
	MediumTerm int `json:"medium_term"`
	LongTerm   int `json:"long_term"`
}

var (
	highImpactKeywords   = []string{"quantif", "action verb", "ats", "keyword", "achievement"}
	mediumImpactKeywords = []string{"format", "section", "bullet", "professional"}

	highEffortKeywords = []string{"rewrite", "restructure", "complete", "overhaul"}
	lowEffortKeywords  = []string{"add", "include", "fix", "remove"}
)

// categoryRules is the ordered keyword-set to category mapping. First match
// wins; the order is part of the contract.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"content", []string{"quantif", "achievement", "bullet", "verb"}},
	{"formatting", []string{"format", "section", "ats"}},
	{"keywords", []string{"keyword", "skill", "technical"}},
	{"structure", []string{"section", "summary", "experience"}},
}

// EstimateImpact rates a recommendation 1-10 from its own wording.
func EstimateImpact(recommendation string) int {
	lower := strings.ToLower(recommendation)
	if containsAny(lower, highImpactKeywords) {
		return 8
	}
	if containsAny(lower, mediumImpactKeywords) {
		return 6
	}
	return 4
}

// EstimateEffort rates the implementation effort 1-10 from the wording.
func EstimateEffort(recommendation string) int {
	lower := strings.ToLower(recommendation)
	if containsAny(lower, highEffortKeywords) {
		return 8
	}
	if containsAny(lower, lowEffortKeywords) {
		return 3
	}
	return 5
}

// Categorize assigns a recommendation to the first matching category rule.
func Categorize(recommendation string) string {
	lower := strings.ToLower(recommendation)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return "general"
}

// Score enriches a plain recommendation with the triage heuristics.
func Score(recommendation string) Scored {
	return Scored{
		Recommendation:  recommendation,
		EstimatedImpact: EstimateImpact(recommendation),
		EffortLevel:     EstimateEffort(recommendation),
		Category:        Categorize(recommendation),
	}
}

// Bucketize triages recommendations into priority buckets and derives the
// implementation timeline.
func Bucketize(recommendations []string) Buckets {
	var b Buckets
	for _, rec := range recommendations {
		item := Score(rec)

		switch {
		case item.EstimatedImpact >= 8:
			b.HighPriority = append(b.HighPriority, item)
		case item.EstimatedImpact >= 6:
			b.MediumPriority = append(b.MediumPriority, item)
		default:
			b.LowPriority = append(b.LowPriority, item)
		}

		if item.EstimatedImpact >= 7 && item.EffortLevel <= 3 {
			b.QuickWins = append(b.QuickWins, item)
		}
		if item.EstimatedImpact >= 8 && item.EffortLevel >= 7 {
			b.StrategicImprovements = append(b.StrategicImprovements, item)
		}
	}

	b.Timeline = Timeline{
		Immediate:  len(b.QuickWins),
		ShortTerm:  max(len(b.HighPriority)-len(b.QuickWins), 0),
		MediumTerm: len(b.MediumPriority),
		LongTerm:   len(b.StrategicImprovements),
	}
	return b
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
