package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"atscan/internal/types"
)

func fixtureScan() *types.ScanResult {
	return &types.ScanResult{
		Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:       "resume.txt",
		OverallScore: 72,
		Sections: types.SectionScores{
			Keywords: types.KeywordAnalysis{
				PowerVerbs:      types.KeywordMetric{Count: 6, Score: 60},
				TechnicalSkills: types.SkillMetric{Count: 9, Score: 45},
				JobMatch:        types.JobMatch{Score: 50},
			},
			Formatting: types.FormattingAnalysis{
				Sections:     map[string]bool{"summary": true, "experience": true, "skills": true},
				SectionScore: 80,
				BulletPoints: 8,
				BulletScore:  40,
			},
			ContentQuality: types.ContentQuality{
				WordCount:           420,
				AvgWordsPerSentence: 14,
				BulletPoints:        8,
			},
			ATSCompatibility: types.ATSCompatibility{
				Score:       90,
				Issues:      nil,
				ContactInfo: types.ContactInfo{EmailFound: true, PhoneFound: true},
			},
			Quantification: types.Quantification{
				TotalBullets:      8,
				QuantifiedBullets: 6,
				Rate:              75,
				Score:             80,
			},
		},
		Recommendations: []string{
			"Add more quantified achievements with specific numbers",
			"Use more action verbs to describe achievements",
		},
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score int
		grade string
	}{
		{95, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		if grade, _ := gradeFor(tt.score); grade != tt.grade {
			t.Errorf("gradeFor(%d) = %s, want %s", tt.score, grade, tt.grade)
		}
	}
}

func TestBuildExecutiveSummary(t *testing.T) {
	scan := fixtureScan()
	r := Build(scan, nil, nil)

	assessment := r.ExecutiveSummary.OverallAssessment
	if assessment.Score != 72 {
		t.Errorf("score = %d, want 72", assessment.Score)
	}
	if assessment.Grade != "B" {
		t.Errorf("grade = %s, want B", assessment.Grade)
	}
	if assessment.ImprovementPotential != 23 {
		t.Errorf("improvement potential = %d, want 23", assessment.ImprovementPotential)
	}
	if r.ExecutiveSummary.ATSReadiness.Status != "Ready" {
		t.Errorf("ats status = %q, want Ready", r.ExecutiveSummary.ATSReadiness.Status)
	}
	if r.ExecutiveSummary.OptimizationImpact != nil {
		t.Error("optimization impact present without optimization")
	}
	if len(r.ExecutiveSummary.KeyStrengths) == 0 || len(r.ExecutiveSummary.KeyStrengths) > 3 {
		t.Errorf("strengths = %v", r.ExecutiveSummary.KeyStrengths)
	}
	if r.Metadata.OptimizationApplied {
		t.Error("metadata claims optimization without one")
	}
}

func TestStrengthsAndWeaknesses(t *testing.T) {
	t.Run("strong document", func(t *testing.T) {
		scan := fixtureScan()
		got := identifyStrengths(scan)
		want := []string{"Strong quantification of achievements", "Good technical keyword coverage", "ATS-friendly formatting"}
		if len(got) != len(want) {
			t.Fatalf("strengths = %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("strengths[%d] = %q, want %q", i, got[i], want[i])
			}
		}

		if ws := identifyWeaknesses(scan); len(ws) != 1 || ws[0] != "No critical issues identified" {
			t.Errorf("weaknesses = %v", ws)
		}
	})

	t.Run("weak document", func(t *testing.T) {
		scan := &types.ScanResult{}
		scan.Sections.Formatting.Sections = map[string]bool{}

		if got := identifyStrengths(scan); len(got) != 1 || got[0] != "Basic structure present" {
			t.Errorf("strengths = %v", got)
		}
		ws := identifyWeaknesses(scan)
		if len(ws) < 3 {
			t.Errorf("weaknesses = %v", ws)
		}
	})
}

func TestATSComplianceStatus(t *testing.T) {
	tests := []struct {
		score  float64
		status string
	}{
		{90, "Excellent ATS Compatibility"},
		{85, "Excellent ATS Compatibility"},
		{70, "Good ATS Compatibility"},
		{50, "Moderate ATS Compatibility - Improvements Needed"},
		{30, "Poor ATS Compatibility - Major Issues"},
	}
	for _, tt := range tests {
		scan := fixtureScan()
		scan.Sections.ATSCompatibility.Score = tt.score
		got := buildATSCompliance(scan)
		if got.Status != tt.status {
			t.Errorf("score %.0f: status = %q, want %q", tt.score, got.Status, tt.status)
		}
	}
}

func TestPerformanceMetrics(t *testing.T) {
	scan := fixtureScan()
	m := buildPerformanceMetrics(scan)

	// bullets 40 (capped) + sentence 28 + sections 24 = 92
	if m.ReadabilityScore != 92 {
		t.Errorf("readability = %d, want 92", m.ReadabilityScore)
	}
	// tech 9*5 capped 40 + verbs 6*8 capped 40 + job 50*0.2 = 90
	if m.KeywordDensity != 90 {
		t.Errorf("keyword density = %d, want 90", m.KeywordDensity)
	}
	// quantification 80*0.4, no enhanced analysis
	if m.ImpactScore != 32 {
		t.Errorf("impact = %d, want 32", m.ImpactScore)
	}
	// ats 90*0.5 + default 40
	if m.ProfessionalScore != 85 {
		t.Errorf("professional = %d, want 85", m.ProfessionalScore)
	}

	bm := m.BenchmarkComparison["industry_average"]
	if !bm.MeetsBenchmark || bm.PointsNeeded != 0 {
		t.Errorf("industry benchmark = %+v", bm)
	}
	top := m.BenchmarkComparison["top_10_percent"]
	if top.MeetsBenchmark || top.PointsNeeded != 13 {
		t.Errorf("top 10%% benchmark = %+v", top)
	}
}

func TestBuildWithOptimization(t *testing.T) {
	scan := fixtureScan()
	opt := &types.OptimizeResult{
		Improvements: []types.Improvement{
			{Section: "experience", ImpactScore: 8},
			{Section: "experience", ImpactScore: 6},
			{Section: "summary", ImpactScore: 7},
		},
		Validation: types.ValidationResult{
			ImprovementScore: 75,
			Passed:           true,
			Deltas:           types.ValidationDeltas{PowerVerbImprovement: 2, LengthChange: 30},
		},
		Success: true,
	}
	optimizedScan := fixtureScan()
	optimizedScan.OverallScore = 84

	r := Build(scan, opt, optimizedScan)

	if r.OptimizationComparison == nil {
		t.Fatal("comparison missing")
	}
	cmp := r.OptimizationComparison
	if cmp.ScoreComparison.OriginalScore != 72 || cmp.ScoreComparison.OptimizedScore != 84 {
		t.Errorf("score comparison = %+v", cmp.ScoreComparison)
	}
	if cmp.ChangesSummary.TotalImprovements != 3 || cmp.ChangesSummary.SectionsModified != 2 {
		t.Errorf("changes summary = %+v", cmp.ChangesSummary)
	}
	if cmp.ChangesSummary.AverageImpactScore != 7 {
		t.Errorf("average impact = %v, want 7", cmp.ChangesSummary.AverageImpactScore)
	}
	if !cmp.ValidationResults.Passed {
		t.Error("validation summary should pass")
	}
	impact := r.ExecutiveSummary.OptimizationImpact
	if impact == nil || impact.ImprovementsApplied != 3 || impact.ScoreImprovement != 75 {
		t.Errorf("optimization impact = %+v", impact)
	}
}

func TestRecommendationBuckets(t *testing.T) {
	scan := fixtureScan()
	r := Build(scan, nil, nil)

	buckets := r.Recommendations
	if len(buckets.HighPriority) != 2 {
		t.Errorf("high priority = %+v", buckets.HighPriority)
	}
	// "Add more quantified..." is high impact and low effort
	if len(buckets.QuickWins) != 1 {
		t.Errorf("quick wins = %+v", buckets.QuickWins)
	}
	if buckets.Timeline.Immediate != 1 || buckets.Timeline.ShortTerm != 1 {
		t.Errorf("timeline = %+v", buckets.Timeline)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, Build(fixtureScan(), nil, nil)); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CV ANALYSIS REPORT", "OVERALL SCORE: 72/100 (Grade: B)", "KEY STRENGTHS:", "PRIORITY ACTIONS:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Build(fixtureScan(), nil, nil)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("csv lines = %d, want 7", len(lines))
	}
	if lines[0] != "Metric,Score,Scale,Type" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Overall Score,72,0-100,B") {
		t.Errorf("overall row = %q", lines[1])
	}
}
