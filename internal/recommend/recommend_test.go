package recommend

import (
	"strings"
	"testing"

	"atscan/internal/types"
)

func weakSections() types.SectionScores {
	return types.SectionScores{
		Keywords: types.KeywordAnalysis{
			PowerVerbs:      types.KeywordMetric{Count: 2},
			TechnicalSkills: types.SkillMetric{Count: 3},
		},
		Formatting: types.FormattingAnalysis{
			Sections:     map[string]bool{"summary": false},
			BulletPoints: 4,
		},
		ContentQuality: types.ContentQuality{QuantifiedAchievements: 1},
		ATSCompatibility: types.ATSCompatibility{
			Issues: []string{"No email address found", "Contains tab characters"},
		},
		Quantification: types.Quantification{Rate: 20},
	}
}

func TestBase(t *testing.T) {
	t.Run("weak document triggers every rule", func(t *testing.T) {
		recs := Base(weakSections())

		wantSubstrings := []string{
			"power verbs",
			"technical skills",
			"summary",
			"bullet points",
			"quantified achievements",
			"Fix ATS issue: No email address found",
			"Fix ATS issue: Contains tab characters",
			"Quantify more",
		}
		for _, want := range wantSubstrings {
			found := false
			for _, rec := range recs {
				if strings.Contains(rec, want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no recommendation containing %q in %v", want, recs)
			}
		}
	})

	t.Run("strong document yields nothing", func(t *testing.T) {
		sections := types.SectionScores{
			Keywords: types.KeywordAnalysis{
				PowerVerbs:      types.KeywordMetric{Count: 8},
				TechnicalSkills: types.SkillMetric{Count: 12},
			},
			Formatting: types.FormattingAnalysis{
				Sections:     map[string]bool{"summary": true},
				BulletPoints: 15,
			},
			ContentQuality: types.ContentQuality{QuantifiedAchievements: 8},
			Quantification: types.Quantification{Rate: 85},
		}
		if recs := Base(sections); len(recs) != 0 {
			t.Errorf("recommendations = %v, want none", recs)
		}
	})

	t.Run("capped at ten", func(t *testing.T) {
		sections := weakSections()
		for i := 0; i < 10; i++ {
			sections.ATSCompatibility.Issues = append(sections.ATSCompatibility.Issues, "Issue")
		}
		if recs := Base(sections); len(recs) > 10 {
			t.Errorf("got %d recommendations, cap is 10", len(recs))
		}
	})
}

func TestEnhanced(t *testing.T) {
	enhanced := &types.EnhancedAnalysis{
		Standards: types.StandardsReport{
			Standards: map[string]types.StandardResult{
				"action_verb_hierarchy": {Score: 50, Findings: []string{"Need more powerful Tier 1 action verbs"}},
				"ats_formatting":        {Score: 95},
			},
		},
		VerbHierarchy: types.VerbHierarchy{Tier1Count: 1},
		Leadership:    types.LeadershipAnalysis{Score: 30},
		Impact:        types.ImpactAnalysis{Score: 40},
		ContentDepth:  types.ContentDepth{WeakBullets: 5},
		Presentation:  types.Presentation{Issues: []string{"Inconsistent date formatting"}},
	}

	recs := Enhanced(enhanced)

	joined := strings.Join(recs, "\n")
	for _, want := range []string{
		"Improve action verb hierarchy",
		"Tier 1 action verbs",
		"leadership indicators",
		"impact statements",
		"Expand brief bullet points",
		"Fix presentation issue: Inconsistent date formatting",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("no recommendation containing %q in %v", want, recs)
		}
	}
	// Standards above 70 produce nothing.
	if strings.Contains(joined, "ats formatting") {
		t.Errorf("compliant standard should not be flagged: %v", recs)
	}
	if len(recs) > 12 {
		t.Errorf("got %d recommendations, cap is 12", len(recs))
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		rec  string
		want string
	}{
		{"Quantify more of your achievements", "content"},
		{"Fix ATS issue: tabs found", "formatting"},
		{"Include more relevant technical skills", "keywords"},
		{"Add a professional summary section", "formatting"},
		{"Something entirely different", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.rec, func(t *testing.T) {
			if got := Categorize(tt.rec); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.rec, got, tt.want)
			}
		})
	}
}

func TestEstimates(t *testing.T) {
	t.Run("impact", func(t *testing.T) {
		if got := EstimateImpact("Quantify your achievements"); got != 8 {
			t.Errorf("high-impact estimate = %d, want 8", got)
		}
		if got := EstimateImpact("Improve the formatting"); got != 6 {
			t.Errorf("medium-impact estimate = %d, want 6", got)
		}
		if got := EstimateImpact("Consider a different font"); got != 4 {
			t.Errorf("default estimate = %d, want 4", got)
		}
	})

	t.Run("effort", func(t *testing.T) {
		if got := EstimateEffort("Rewrite the experience section"); got != 8 {
			t.Errorf("high-effort estimate = %d, want 8", got)
		}
		if got := EstimateEffort("Add an email address"); got != 3 {
			t.Errorf("low-effort estimate = %d, want 3", got)
		}
		if got := EstimateEffort("Consider reordering content"); got != 5 {
			t.Errorf("default estimate = %d, want 5", got)
		}
	})
}

func TestBucketize(t *testing.T) {
	recs := []string{
		"Add more quantified achievements", // impact 8, effort 3: high priority and quick win
		"Improve section formatting",       // impact 6, effort 5: medium priority
		"Consider a different layout",      // impact 4, effort 5: low priority
	}

	b := Bucketize(recs)

	if len(b.HighPriority) != 1 {
		t.Errorf("HighPriority = %v, want 1 entry", b.HighPriority)
	}
	if len(b.MediumPriority) != 1 {
		t.Errorf("MediumPriority = %v, want 1 entry", b.MediumPriority)
	}
	if len(b.LowPriority) != 1 {
		t.Errorf("LowPriority = %v, want 1 entry", b.LowPriority)
	}
	if len(b.QuickWins) != 1 {
		t.Errorf("QuickWins = %v, want 1 entry", b.QuickWins)
	}
	if b.Timeline.Immediate != 1 {
		t.Errorf("Timeline.Immediate = %d, want 1", b.Timeline.Immediate)
	}
	if b.Timeline.ShortTerm != 0 {
		t.Errorf("Timeline.ShortTerm = %d, want 0", b.Timeline.ShortTerm)
	}
	if b.Timeline.MediumTerm != 1 {
		t.Errorf("Timeline.MediumTerm = %d, want 1", b.Timeline.MediumTerm)
	}
}
