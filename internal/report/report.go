// Package report assembles the comprehensive analysis report from scan and
// optimization results. Assembly is pure: the same inputs always produce the
// same report apart from the generation timestamp.
package report

import (
	"fmt"
	"time"

	"atscan/internal/recommend"
	"atscan/internal/types"
)

// Metadata describes the report itself.
type Metadata struct {
	GeneratedAt         time.Time `json:"generated_at"`
	ReportType          string    `json:"report_type"`
	Source              string    `json:"cv_analyzed"`
	AnalysisTimestamp   time.Time `json:"analysis_timestamp"`
	OptimizationApplied bool      `json:"optimization_applied"`
}

// OverallAssessment is the headline score with its letter grade.
type OverallAssessment struct {
	Score                int    `json:"score"`
	Grade                string `json:"grade"`
	Assessment           string `json:"assessment"`
	ImprovementPotential int    `json:"improvement_potential"`
}

// ATSReadiness is the quick pass/fail view of ATS compatibility.
type ATSReadiness struct {
	Score  float64 `json:"score"`
	Status string  `json:"status"`
}

// OptimizationImpact summarizes an applied optimization inside the executive
// summary.
type OptimizationImpact struct {
	ImprovementsApplied int  `json:"improvements_applied"`
	ScoreImprovement    int  `json:"score_improvement"`
	ValidationPassed    bool `json:"validation_passed"`
}

// ExecutiveSummary is the top-level assessment section.
type ExecutiveSummary struct {
	OverallAssessment  OverallAssessment   `json:"overall_assessment"`
	KeyStrengths       []string            `json:"key_strengths"`
	CriticalWeaknesses []string            `json:"critical_weaknesses"`
	PriorityActions    []string            `json:"priority_actions"`
	ATSReadiness       ATSReadiness        `json:"ats_readiness"`
	OptimizationImpact *OptimizationImpact `json:"optimization_impact,omitempty"`
}

// ContentAnalysis condenses the content-side scan sections.
type ContentAnalysis struct {
	WordCount              int             `json:"word_count"`
	BulletPoints           int             `json:"bullet_points"`
	QuantifiedAchievements int             `json:"quantified_achievements"`
	QuantificationRate     float64         `json:"quantification_rate"`
	SectionsFound          map[string]bool `json:"sections_found"`
}

// FormattingAnalysis condenses the formatting-side scan sections.
type FormattingAnalysis struct {
	ATSCompatibilityScore float64  `json:"ats_compatibility_score"`
	FormattingIssues      []string `json:"formatting_issues"`
	SectionCompleteness   float64  `json:"section_completeness"`
}

// EnhancedMetrics surfaces the standards-compliance layers when present.
type EnhancedMetrics struct {
	IndustryCompliance   types.StandardsReport    `json:"industry_compliance"`
	VerbHierarchy        types.VerbHierarchy      `json:"verb_hierarchy"`
	LeadershipIndicators types.LeadershipAnalysis `json:"leadership_indicators"`
	ImpactStatements     types.ImpactAnalysis     `json:"impact_statements"`
}

// DetailedAnalysis is the full scoring breakdown section.
type DetailedAnalysis struct {
	ContentAnalysis    ContentAnalysis       `json:"content_analysis"`
	KeywordAnalysis    types.KeywordAnalysis `json:"keyword_analysis"`
	FormattingAnalysis FormattingAnalysis    `json:"formatting_analysis"`
	EnhancedMetrics    *EnhancedMetrics      `json:"enhanced_metrics,omitempty"`
}

// FormattingCompliance is the structural half of the ATS compliance section.
type FormattingCompliance struct {
	SectionStructure map[string]bool `json:"section_structure"`
	BulletPointUsage int             `json:"bullet_point_usage"`
	ConsistencyScore float64         `json:"consistency_score"`
}

// ATSCompliance is the compliance-focused report section.
type ATSCompliance struct {
	OverallScore         float64               `json:"overall_score"`
	CompatibilityIssues  []string              `json:"compatibility_issues"`
	ContactInfoCheck     types.ContactInfo     `json:"contact_info_check"`
	FormattingCompliance FormattingCompliance  `json:"formatting_compliance"`
	KeywordOptimization  types.KeywordAnalysis `json:"keyword_optimization"`
	Recommendations      []string              `json:"recommendations"`
	Status               string                `json:"status"`
}

// ScoreComparison compares scores before and after optimization.
type ScoreComparison struct {
	OriginalScore  int `json:"original_score"`
	OptimizedScore int `json:"optimized_score"`
	Improvement    int `json:"improvement"`
}

// ChangesSummary aggregates the applied improvements.
type ChangesSummary struct {
	TotalImprovements  int     `json:"total_improvements"`
	SectionsModified   int     `json:"sections_modified"`
	AverageImpactScore float64 `json:"average_impact_score"`
}

// ValidationSummary is the condensed validation view in the comparison.
type ValidationSummary struct {
	Passed                    bool    `json:"passed"`
	QuantificationImprovement float64 `json:"quantification_improvement"`
	PowerVerbImprovement      int     `json:"power_verb_improvement"`
	LengthChange              int     `json:"length_change"`
}

// Comparison is the before/after optimization section.
type Comparison struct {
	ScoreComparison   ScoreComparison       `json:"score_comparison"`
	MetricImprovement types.ValidationDeltas `json:"metric_improvements"`
	ChangesSummary    ChangesSummary        `json:"changes_summary"`
	DetailedChanges   []types.Improvement   `json:"detailed_changes"`
	ValidationResults ValidationSummary     `json:"validation_results"`
}

// Report is the full assembled report.
type Report struct {
	Metadata               Metadata           `json:"metadata"`
	ExecutiveSummary       ExecutiveSummary   `json:"executive_summary"`
	DetailedAnalysis       DetailedAnalysis   `json:"detailed_analysis"`
	ATSCompliance          ATSCompliance      `json:"ats_compliance"`
	Recommendations        recommend.Buckets  `json:"improvement_recommendations"`
	PerformanceMetrics     PerformanceMetrics `json:"performance_metrics"`
	OptimizationComparison *Comparison        `json:"optimization_comparison,omitempty"`
}

const maxDetailedChanges = 10

// atsRecommendations is the fixed checklist attached to every compliance
// section.
var atsRecommendations = []string{
	"Use standard section headers (Experience, Education, Skills)",
	"Include complete contact information",
	"Avoid special characters and complex formatting",
	"Use consistent bullet point formatting",
	"Include relevant keywords naturally in content",
}

// Build assembles the comprehensive report. opt and optimizedScan are
// optional; optimizedScan is a rescan of the optimized content and only feeds
// the score comparison.
func Build(scan *types.ScanResult, opt *types.OptimizeResult, optimizedScan *types.ScanResult) *Report {
	r := &Report{
		Metadata: Metadata{
			GeneratedAt:         time.Now(),
			ReportType:          "comprehensive_cv_analysis",
			Source:              scan.Source,
			AnalysisTimestamp:   scan.Timestamp,
			OptimizationApplied: opt != nil,
		},
		ExecutiveSummary:   buildExecutiveSummary(scan, opt),
		DetailedAnalysis:   buildDetailedAnalysis(scan),
		ATSCompliance:      buildATSCompliance(scan),
		Recommendations:    recommend.Bucketize(append(append([]string{}, scan.Recommendations...), scan.EnhancedRecommendations...)),
		PerformanceMetrics: buildPerformanceMetrics(scan),
	}

	if opt != nil {
		r.OptimizationComparison = buildComparison(scan, opt, optimizedScan)
	}
	return r
}

// gradeFor maps a score to its letter grade and assessment text.
func gradeFor(score int) (grade, assessment string) {
	switch {
	case score >= 90:
		return "A+", "Excellent"
	case score >= 80:
		return "A", "Very Good"
	case score >= 70:
		return "B", "Good"
	case score >= 60:
		return "C", "Needs Improvement"
	default:
		return "D", "Significant Improvements Required"
	}
}

func buildExecutiveSummary(scan *types.ScanResult, opt *types.OptimizeResult) ExecutiveSummary {
	score := scan.EffectiveScore()
	grade, assessment := gradeFor(score)

	atsScore := scan.Sections.ATSCompatibility.Score
	status := "Needs Work"
	if atsScore >= 80 {
		status = "Ready"
	}

	summary := ExecutiveSummary{
		OverallAssessment: OverallAssessment{
			Score:                score,
			Grade:                grade,
			Assessment:           assessment,
			ImprovementPotential: max(0, 95-score),
		},
		KeyStrengths:       capStrings(identifyStrengths(scan), 3),
		CriticalWeaknesses: capStrings(identifyWeaknesses(scan), 3),
		PriorityActions:    capStrings(priorityActions(scan), 5),
		ATSReadiness: ATSReadiness{
			Score:  atsScore,
			Status: status,
		},
	}

	if opt != nil && opt.Success {
		summary.OptimizationImpact = &OptimizationImpact{
			ImprovementsApplied: len(opt.Improvements),
			ScoreImprovement:    opt.Validation.ImprovementScore,
			ValidationPassed:    opt.Validation.Passed,
		}
	}
	return summary
}

func buildDetailedAnalysis(scan *types.ScanResult) DetailedAnalysis {
	sections := scan.Sections
	detailed := DetailedAnalysis{
		ContentAnalysis: ContentAnalysis{
			WordCount:              sections.ContentQuality.WordCount,
			BulletPoints:           sections.ContentQuality.BulletPoints,
			QuantifiedAchievements: sections.Quantification.QuantifiedBullets,
			QuantificationRate:     sections.Quantification.Rate,
			SectionsFound:          sections.Formatting.Sections,
		},
		KeywordAnalysis: sections.Keywords,
		FormattingAnalysis: FormattingAnalysis{
			ATSCompatibilityScore: sections.ATSCompatibility.Score,
			FormattingIssues:      sections.ATSCompatibility.Issues,
			SectionCompleteness:   sections.Formatting.SectionScore,
		},
	}

	if scan.Enhanced != nil {
		detailed.EnhancedMetrics = &EnhancedMetrics{
			IndustryCompliance:   scan.Enhanced.Standards,
			VerbHierarchy:        scan.Enhanced.VerbHierarchy,
			LeadershipIndicators: scan.Enhanced.Leadership,
			ImpactStatements:     scan.Enhanced.Impact,
		}
	}
	return detailed
}

func buildATSCompliance(scan *types.ScanResult) ATSCompliance {
	ats := scan.Sections.ATSCompatibility
	formatting := scan.Sections.Formatting

	var status string
	switch {
	case ats.Score >= 85:
		status = "Excellent ATS Compatibility"
	case ats.Score >= 70:
		status = "Good ATS Compatibility"
	case ats.Score >= 50:
		status = "Moderate ATS Compatibility - Improvements Needed"
	default:
		status = "Poor ATS Compatibility - Major Issues"
	}

	return ATSCompliance{
		OverallScore:        ats.Score,
		CompatibilityIssues: ats.Issues,
		ContactInfoCheck:    ats.ContactInfo,
		FormattingCompliance: FormattingCompliance{
			SectionStructure: formatting.Sections,
			BulletPointUsage: formatting.BulletPoints,
			ConsistencyScore: formatting.SectionScore,
		},
		KeywordOptimization: scan.Sections.Keywords,
		Recommendations:     atsRecommendations,
		Status:              status,
	}
}

func buildComparison(scan *types.ScanResult, opt *types.OptimizeResult, optimizedScan *types.ScanResult) *Comparison {
	optimizedScore := 0
	if optimizedScan != nil {
		optimizedScore = optimizedScan.EffectiveScore()
	}

	sections := make(map[string]struct{})
	impactSum := 0
	for _, imp := range opt.Improvements {
		sections[imp.Section] = struct{}{}
		impactSum += imp.ImpactScore
	}

	changes := opt.Improvements
	if len(changes) > maxDetailedChanges {
		changes = changes[:maxDetailedChanges]
	}

	return &Comparison{
		ScoreComparison: ScoreComparison{
			OriginalScore:  scan.EffectiveScore(),
			OptimizedScore: optimizedScore,
			Improvement:    opt.Validation.ImprovementScore,
		},
		MetricImprovement: opt.Validation.Deltas,
		ChangesSummary: ChangesSummary{
			TotalImprovements:  len(opt.Improvements),
			SectionsModified:   len(sections),
			AverageImpactScore: float64(impactSum) / float64(max(len(opt.Improvements), 1)),
		},
		DetailedChanges:   changes,
		ValidationResults: ValidationSummary{
			Passed:                    opt.Validation.Passed,
			QuantificationImprovement: opt.Validation.Deltas.QuantificationImprovement,
			PowerVerbImprovement:      opt.Validation.Deltas.PowerVerbImprovement,
			LengthChange:              opt.Validation.Deltas.LengthChange,
		},
	}
}

func identifyStrengths(scan *types.ScanResult) []string {
	var strengths []string
	sections := scan.Sections

	if sections.Quantification.Rate >= 70 {
		strengths = append(strengths, "Strong quantification of achievements")
	}
	if sections.Keywords.TechnicalSkills.Count >= 8 {
		strengths = append(strengths, "Good technical keyword coverage")
	}
	if sections.ATSCompatibility.Score >= 80 {
		strengths = append(strengths, "ATS-friendly formatting")
	}
	if scan.Enhanced != nil {
		if scan.Enhanced.VerbHierarchy.Tier1Count >= 3 {
			strengths = append(strengths, "Uses powerful action verbs")
		}
		if scan.Enhanced.Leadership.Score >= 60 {
			strengths = append(strengths, "Demonstrates leadership experience")
		}
	}

	if len(strengths) == 0 {
		return []string{"Basic structure present"}
	}
	return strengths
}

func identifyWeaknesses(scan *types.ScanResult) []string {
	var weaknesses []string
	sections := scan.Sections

	if sections.Quantification.Rate < 50 {
		weaknesses = append(weaknesses, "Insufficient quantification of achievements")
	}
	if sections.Keywords.PowerVerbs.Count < 5 {
		weaknesses = append(weaknesses, "Limited use of strong action verbs")
	}
	if sections.ATSCompatibility.Score < 70 {
		weaknesses = append(weaknesses, "ATS compatibility issues")
	}
	if scan.Enhanced != nil && scan.Enhanced.Impact.Score < 40 {
		weaknesses = append(weaknesses, "Limited demonstration of impact")
	}
	if !sections.Formatting.Sections["summary"] {
		weaknesses = append(weaknesses, "Missing professional summary")
	}

	if len(weaknesses) == 0 {
		return []string{"No critical issues identified"}
	}
	return weaknesses
}

func priorityActions(scan *types.ScanResult) []string {
	var actions []string
	sections := scan.Sections

	if sections.Quantification.Rate < 60 {
		actions = append(actions, "Add specific numbers and percentages to 5+ bullet points")
	}
	if !sections.Formatting.Sections["summary"] {
		actions = append(actions, "Add a 3-4 line professional summary at the top")
	}
	if sections.Keywords.TechnicalSkills.Count < 6 {
		actions = append(actions, "Include more relevant technical skills and keywords")
	}
	if len(sections.ATSCompatibility.Issues) > 0 {
		actions = append(actions, fmt.Sprintf("Fix ATS issues: %s", sections.ATSCompatibility.Issues[0]))
	}
	if scan.Enhanced != nil && scan.Enhanced.VerbHierarchy.Tier1Count < 2 {
		actions = append(actions, "Replace weak verbs with powerful action verbs (architected, orchestrated, etc.)")
	}
	return actions
}

func capStrings(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}
