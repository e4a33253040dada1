// Package recommend turns scoring deficits into ranked, categorized
// natural-language suggestions. Impact and effort are estimated by a second
// keyword pass over the recommendation text itself, independent of the
// document-level scores.
package recommend

import (
	"fmt"
	"strings"

	"atscan/internal/standards"
	"atscan/internal/types"
)

const (
	maxBaseRecommendations     = 10
	maxEnhancedRecommendations = 12
)

// Base generates the base recommendation list from the section scores,
// capped at 10.
func Base(sections types.SectionScores) []string {
	var recs []string

	if sections.Keywords.PowerVerbs.Count < 5 {
		recs = append(recs, "Add more power verbs to strengthen impact statements")
	}
	if sections.Keywords.TechnicalSkills.Count < 8 {
		recs = append(recs, "Include more relevant technical skills from your experience")
	}
	if !sections.Formatting.Sections["summary"] {
		recs = append(recs, "Add a professional summary or objective section")
	}
	if sections.Formatting.BulletPoints < 10 {
		recs = append(recs, "Use more bullet points to improve readability")
	}
	if sections.ContentQuality.QuantifiedAchievements < 5 {
		recs = append(recs, "Add more quantified achievements with specific numbers and results")
	}
	for _, issue := range sections.ATSCompatibility.Issues {
		recs = append(recs, "Fix ATS issue: "+issue)
	}
	if sections.Quantification.Rate < 60 {
		recs = append(recs, "Quantify more of your achievements with specific metrics and numbers")
	}

	return capRecs(recs, maxBaseRecommendations)
}

// Enhanced generates the standards-layer recommendation list, capped at 12.
// Standards are visited in catalog order so output is deterministic.
func Enhanced(enhanced *types.EnhancedAnalysis) []string {
	var recs []string

	for _, std := range standards.Catalog() {
		data, ok := enhanced.Standards.Standards[std.Name]
		if !ok || data.Score >= 70 {
			continue
		}
		finding := "Review standard requirements"
		if len(data.Findings) > 0 {
			finding = data.Findings[0]
		}
		recs = append(recs, fmt.Sprintf("Improve %s: %s", strings.ReplaceAll(std.Name, "_", " "), finding))
	}

	if enhanced.VerbHierarchy.Tier1Count < 3 {
		recs = append(recs, "Use more Tier 1 action verbs (architected, orchestrated, spearheaded)")
	}
	if enhanced.Leadership.Score < 50 {
		recs = append(recs, "Add more leadership indicators and team management examples")
	}
	if enhanced.Impact.Score < 60 {
		recs = append(recs, "Include more quantified impact statements with specific results")
	}
	if enhanced.ContentDepth.WeakBullets > 3 {
		recs = append(recs, "Expand brief bullet points with more detailed descriptions")
	}
	for _, issue := range enhanced.Presentation.Issues {
		recs = append(recs, "Fix presentation issue: "+issue)
	}

	return capRecs(recs, maxEnhancedRecommendations)
}

func capRecs(recs []string, limit int) []string {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
