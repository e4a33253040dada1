package report

import "atscan/internal/types"

// PerformanceMetrics is the derived metrics dashboard.
type PerformanceMetrics struct {
	ReadabilityScore     int                  `json:"readability_score"`
	KeywordDensity       int                  `json:"keyword_density"`
	ImpactScore          int                  `json:"impact_score"`
	ProfessionalScore    int                  `json:"professional_score"`
	ATSOptimizationScore float64              `json:"ats_optimization_score"`
	BenchmarkComparison  map[string]Benchmark `json:"benchmark_comparison"`
}

// Benchmark compares the effective score against one fixed threshold.
type Benchmark struct {
	Threshold      int  `json:"threshold"`
	CurrentScore   int  `json:"current_score"`
	MeetsBenchmark bool `json:"meets_benchmark"`
	PointsNeeded   int  `json:"points_needed"`
}

// Fixed industry benchmarks.
var benchmarks = map[string]int{
	"industry_average":           65,
	"top_10_percent":             85,
	"ats_passing_threshold":      70,
	"interview_likely_threshold": 80,
}

func buildPerformanceMetrics(scan *types.ScanResult) PerformanceMetrics {
	sections := scan.Sections
	return PerformanceMetrics{
		ReadabilityScore:     readabilityScore(sections),
		KeywordDensity:       keywordDensity(sections),
		ImpactScore:          impactScore(sections, scan.Enhanced),
		ProfessionalScore:    professionalScore(sections, scan.Enhanced),
		ATSOptimizationScore: sections.ATSCompatibility.Score,
		BenchmarkComparison:  benchmarkComparison(scan.EffectiveScore()),
	}
}

// readabilityScore blends bullet usage, sentence length, and section
// completeness. Component caps: 40 bullets, 30 sentence length, 30 sections.
func readabilityScore(sections types.SectionScores) int {
	score := minFloat(sections.Formatting.BulletScore, 40)
	score += minFloat(sections.ContentQuality.AvgWordsPerSentence*2, 30)
	score += minFloat(sections.Formatting.SectionScore*0.3, 30)
	return min(int(score), 100)
}

// keywordDensity blends technical, power-verb, and job-match coverage.
// Component caps: 40, 40, 20.
func keywordDensity(sections types.SectionScores) int {
	score := minFloat(float64(sections.Keywords.TechnicalSkills.Count)*5, 40)
	score += minFloat(float64(sections.Keywords.PowerVerbs.Count)*8, 40)
	score += minFloat(sections.Keywords.JobMatch.Score*0.2, 20)
	return min(int(score), 100)
}

func impactScore(sections types.SectionScores, enhanced *types.EnhancedAnalysis) int {
	score := sections.Quantification.Score * 0.4
	if enhanced != nil {
		score += enhanced.Impact.Score * 0.6
	}
	return min(int(score), 100)
}

// professionalScore defaults the presentation half to a moderate 40 when no
// enhanced analysis ran.
func professionalScore(sections types.SectionScores, enhanced *types.EnhancedAnalysis) int {
	score := sections.ATSCompatibility.Score * 0.5
	if enhanced != nil {
		score += enhanced.Presentation.Score * 0.5
	} else {
		score += 40
	}
	return min(int(score), 100)
}

func benchmarkComparison(score int) map[string]Benchmark {
	comparison := make(map[string]Benchmark, len(benchmarks))
	for name, threshold := range benchmarks {
		comparison[name] = Benchmark{
			Threshold:      threshold,
			CurrentScore:   score,
			MeetsBenchmark: score >= threshold,
			PointsNeeded:   max(0, threshold-score),
		}
	}
	return comparison
}

func minFloat(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
