package scoring

import (
	"fmt"
	"math"

	"atscan/internal/standards"
	"atscan/internal/types"
)

// Weights for the enhanced composite. The base layer carries 60% and the
// standards-compliance layer 40%.
const (
	enhancedBaseWeight     = 0.6
	enhancedStandardWeight = 0.4

	basePowerVerbWeight  = 0.15
	baseTechSkillWeight  = 0.20
	baseFormattingWeight = 0.15
	baseATSWeight        = 0.10

	complianceWeight   = 0.15
	tierWeight         = 0.08
	leadershipWeight   = 0.05
	impactWeight       = 0.07
	depthWeight        = 0.03
	presentationWeight = 0.02
)

// Enhanced runs the standards-compliance layers over a FeatureSet and blends
// them with the base sections into the enhanced score.
func (s *Scorer) Enhanced(fs *types.FeatureSet, sections types.SectionScores) (*types.EnhancedAnalysis, int) {
	ea := &types.EnhancedAnalysis{
		Standards:     standards.Evaluate(fs),
		VerbHierarchy: verbHierarchy(fs),
		Leadership:    leadership(fs),
		Impact:        impact(fs),
		RoleAlignment: roleAlignment(fs),
		ContentDepth:  contentDepth(fs),
		Presentation:  presentation(fs),
	}

	base := (sections.Keywords.PowerVerbs.Score*basePowerVerbWeight +
		sections.Keywords.TechnicalSkills.Score*baseTechSkillWeight +
		sections.Formatting.OverallScore*baseFormattingWeight +
		sections.ATSCompatibility.Score*baseATSWeight) * enhancedBaseWeight

	enhanced := (ea.Standards.OverallCompliance*complianceWeight +
		ea.VerbHierarchy.DistributionScore*tierWeight +
		ea.Leadership.Score*leadershipWeight +
		ea.Impact.Score*impactWeight +
		ea.ContentDepth.Score*depthWeight +
		ea.Presentation.Score*presentationWeight) * enhancedStandardWeight

	return ea, clampScore(base + enhanced)
}

func verbHierarchy(fs *types.FeatureSet) types.VerbHierarchy {
	total := fs.Tier1Count + fs.Tier2Count + fs.Tier3Count
	vh := types.VerbHierarchy{
		Tier1Count: fs.Tier1Count,
		Tier2Count: fs.Tier2Count,
		Tier3Count: fs.Tier3Count,
		TotalVerbs: total,
	}
	if total > 0 {
		// Higher-tier verbs weigh more in the distribution.
		vh.DistributionScore = float64(fs.Tier1Count*3+fs.Tier2Count*2+fs.Tier3Count) / float64(total*3) * 100
	}

	switch {
	case fs.Tier1Count >= 5:
		vh.Recommendation = "Excellent use of powerful action verbs"
	case fs.Tier1Count >= 3:
		vh.Recommendation = "Good verb usage, consider adding more Tier 1 verbs"
	default:
		vh.Recommendation = "Focus on using more impactful Tier 1 action verbs"
	}
	return vh
}

func leadership(fs *types.FeatureSet) types.LeadershipAnalysis {
	score := math.Min(
		float64(len(fs.LeadershipTerms)*15+fs.TeamSizeMentions*20+fs.BudgetMentions*10),
		100,
	)
	return types.LeadershipAnalysis{
		Terms:            fs.LeadershipTerms,
		TermCount:        len(fs.LeadershipTerms),
		TeamSizeMentions: fs.TeamSizeMentions,
		BudgetMentions:   fs.BudgetMentions,
		Score:            score,
	}
}

func impact(fs *types.FeatureSet) types.ImpactAnalysis {
	return types.ImpactAnalysis{
		Statements: capList(fs.ImpactStatements, 10),
		TotalCount: len(fs.ImpactStatements),
		HighImpact: fs.HighImpactStatements,
		Score:      math.Min(float64(len(fs.ImpactStatements)*20+fs.HighImpactStatements*10), 100),
	}
}

func roleAlignment(fs *types.FeatureSet) types.RoleAlignment {
	if fs.TargetRole == "" {
		return types.RoleAlignment{Score: 50, Recommendation: "No target role specified"}
	}
	score := float64(len(fs.RoleMatched)) / float64(max(len(fs.RoleRelevant), 1)) * 100

	ra := types.RoleAlignment{
		TargetRole:       fs.TargetRole,
		RelevantKeywords: capList(fs.RoleRelevant, 20),
		MatchedKeywords:  capList(fs.RoleMatched, 15),
		Score:            score,
	}
	switch {
	case score >= 80:
		ra.Recommendation = "Strong alignment with target role"
	case score >= 60:
		ra.Recommendation = "Good alignment, consider adding more role-specific skills"
	default:
		ra.Recommendation = "Needs better alignment with target role requirements"
	}
	return ra
}

func contentDepth(fs *types.FeatureSet) types.ContentDepth {
	score := math.Min(
		float64(fs.DetailedBullets*15)-float64(fs.WeakBullets*5)+fs.AvgBulletWords*2,
		100,
	)
	return types.ContentDepth{
		TotalBullets:    fs.TotalBullets,
		DetailedBullets: fs.DetailedBullets,
		WeakBullets:     fs.WeakBullets,
		AvgBulletWords:  fs.AvgBulletWords,
		Score:           math.Max(score, 0),
	}
}

func presentation(fs *types.FeatureSet) types.Presentation {
	score := 100.0
	var issues []string

	if fs.DateFormatCount > 2 {
		score -= 15
		issues = append(issues, "Inconsistent date formatting")
	}
	if fs.UnprofessionalCount > 0 {
		score -= float64(fs.UnprofessionalCount) * 10
		issues = append(issues, fmt.Sprintf("%d unprofessional terms found", fs.UnprofessionalCount))
	}
	if fs.BulletGlyphCount > 1 {
		score -= 10
		issues = append(issues, "Inconsistent bullet point formatting")
	}

	return types.Presentation{
		Score:                math.Max(score, 0),
		Issues:               issues,
		DateFormatConsistent: fs.DateFormatCount <= 2,
		ProfessionalLanguage: fs.UnprofessionalCount == 0,
		BulletConsistent:     fs.BulletGlyphCount <= 1,
	}
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
