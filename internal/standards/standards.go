// Package standards evaluates a document against the seven named industry
// standards. Each standard is scored independently in [0,100] from the
// extracted FeatureSet; evaluation is pure and deterministic.
package standards

import (
	"fmt"
	"math"

	"atscan/internal/types"
)

// Standard names, in catalog order.
const (
	ActionVerbHierarchy      = "action_verb_hierarchy"
	QuantificationStandard   = "quantification_standard"
	ATSFormatting            = "ats_formatting"
	KeywordOptimization      = "keyword_optimization"
	ProfessionalPresentation = "professional_presentation"
	ImpactDemonstration      = "impact_demonstration"
	RoleAlignment            = "role_alignment"
)

// complianceThreshold is the score at or above which a standard counts as met.
const complianceThreshold = 80

// Standard describes one catalog entry.
type Standard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      string `json:"target"`
}

// Catalog returns the ordered standard descriptions.
func Catalog() []Standard {
	return []Standard{
		{ActionVerbHierarchy, "Bullet points open with strong tier-1 action verbs", "5+ tier-1 verbs"},
		{QuantificationStandard, "Achievements are backed by numbers, percentages, or amounts", "80%+ of bullets quantified"},
		{ATSFormatting, "Plain formatting that automated parsers handle reliably", "no tabs, parseable email"},
		{KeywordOptimization, "Relevant technical keywords appear naturally in the content", "12+ technical keywords"},
		{ProfessionalPresentation, "Consistent dates, bullets, and professional language", "one date format, one bullet glyph"},
		{ImpactDemonstration, "Statements tie actions to measured outcomes", "5+ quantified impact statements"},
		{RoleAlignment, "Content matches the vocabulary of the target role", "80%+ of role keywords covered"},
	}
}

// Evaluate scores the FeatureSet against every standard and aggregates the
// compliance summary.
func Evaluate(fs *types.FeatureSet) types.StandardsReport {
	results := map[string]types.StandardResult{
		ActionVerbHierarchy:      checkActionVerbs(fs),
		QuantificationStandard:   checkQuantification(fs),
		ATSFormatting:            checkATSFormatting(fs),
		KeywordOptimization:      checkKeywords(fs),
		ProfessionalPresentation: checkPresentation(fs),
		ImpactDemonstration:      checkImpact(fs),
		RoleAlignment:            checkAlignment(fs),
	}

	report := types.StandardsReport{
		Standards:      results,
		TotalStandards: len(results),
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Score
		if r.Score >= complianceThreshold {
			report.CompliantStandards++
		}
	}
	report.OverallCompliance = sum / float64(len(results))
	return report
}

func checkActionVerbs(fs *types.FeatureSet) types.StandardResult {
	switch {
	case fs.Tier1Count >= 5:
		return types.StandardResult{Score: 90, Findings: []string{"Excellent use of Tier 1 action verbs"}}
	case fs.Tier1Count >= 3:
		return types.StandardResult{Score: 75, Findings: []string{"Good use of action verbs, add more Tier 1 verbs"}}
	default:
		return types.StandardResult{Score: 50, Findings: []string{"Need more powerful Tier 1 action verbs"}}
	}
}

func checkQuantification(fs *types.FeatureSet) types.StandardResult {
	if fs.TotalBullets == 0 {
		return types.StandardResult{Score: 0, Findings: []string{"No bullet points found"}}
	}
	rate := fs.QuantificationRate
	switch {
	case rate >= 80:
		return types.StandardResult{Score: 95, Findings: []string{"Excellent quantification rate"}}
	case rate >= 60:
		return types.StandardResult{Score: 80, Findings: []string{"Good quantification, aim for 80%+ of bullets"}}
	default:
		return types.StandardResult{
			Score:    math.Round(rate),
			Findings: []string{fmt.Sprintf("Only %.1f%% of bullets quantified", rate)},
		}
	}
}

func checkATSFormatting(fs *types.FeatureSet) types.StandardResult {
	score := 100.0
	var findings []string

	if fs.TabsFound {
		findings = append(findings, "Remove tab characters")
		score -= 20
	}
	if !fs.EmailFound {
		findings = append(findings, "Add proper email format")
		score -= 30
	}
	if len(findings) == 0 {
		findings = []string{"ATS formatting compliant"}
	}
	return types.StandardResult{Score: math.Max(score, 0), Findings: findings}
}

func checkKeywords(fs *types.FeatureSet) types.StandardResult {
	switch n := len(fs.TechnicalSkillsFound); {
	case n >= 12:
		return types.StandardResult{Score: 90, Findings: []string{"Strong keyword presence"}}
	case n >= 8:
		return types.StandardResult{Score: 75, Findings: []string{"Good keyword coverage"}}
	default:
		return types.StandardResult{Score: 50, Findings: []string{"Need more relevant technical keywords"}}
	}
}

func checkPresentation(fs *types.FeatureSet) types.StandardResult {
	score := 100.0
	var findings []string

	if fs.DateFormatCount > 2 {
		score -= 15
		findings = append(findings, "Inconsistent date formatting")
	}
	if fs.UnprofessionalCount > 0 {
		score -= float64(fs.UnprofessionalCount) * 10
		findings = append(findings, fmt.Sprintf("%d unprofessional terms found", fs.UnprofessionalCount))
	}
	if fs.BulletGlyphCount > 1 {
		score -= 10
		findings = append(findings, "Inconsistent bullet point formatting")
	}
	return types.StandardResult{Score: math.Max(score, 0), Findings: findings}
}

func checkImpact(fs *types.FeatureSet) types.StandardResult {
	score := math.Min(float64(len(fs.ImpactStatements)*20+fs.HighImpactStatements*10), 100)
	var findings []string
	if score < 60 {
		findings = append(findings, "Include more quantified impact statements")
	}
	return types.StandardResult{Score: score, Findings: findings}
}

func checkAlignment(fs *types.FeatureSet) types.StandardResult {
	if fs.TargetRole == "" {
		return types.StandardResult{Score: 50, Findings: []string{"No target role specified"}}
	}
	score := float64(len(fs.RoleMatched)) / float64(max(len(fs.RoleRelevant), 1)) * 100
	return types.StandardResult{Score: score, Findings: []string{alignmentFinding(score)}}
}

func alignmentFinding(score float64) string {
	switch {
	case score >= 80:
		return "Strong alignment with target role"
	case score >= 60:
		return "Good alignment, consider adding more role-specific skills"
	default:
		return "Needs better alignment with target role requirements"
	}
}
