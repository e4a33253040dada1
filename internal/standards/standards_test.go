package standards

import (
	"testing"

	"atscan/internal/analyze"
	"atscan/internal/types"
)

func strongFeatures() *types.FeatureSet {
	return &types.FeatureSet{
		Tier1Count:           6,
		TotalBullets:         10,
		QuantifiedBullets:    9,
		QuantificationRate:   90,
		EmailFound:           true,
		TechnicalSkillsFound: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
		ImpactStatements:     []string{"reduced 40%", "saved $2M", "improved 25%", "grew 10%", "cut 15%"},
		HighImpactStatements: 3,
		TargetRole:           "devops",
		RoleRelevant:         []string{"docker", "kubernetes", "aws", "terraform"},
		RoleMatched:          []string{"docker", "kubernetes", "aws", "terraform"},
	}
}

func TestEvaluateCoversAllStandards(t *testing.T) {
	report := Evaluate(strongFeatures())

	if report.TotalStandards != 7 {
		t.Fatalf("TotalStandards = %d, want 7", report.TotalStandards)
	}
	for _, std := range Catalog() {
		result, ok := report.Standards[std.Name]
		if !ok {
			t.Errorf("standard %s missing from report", std.Name)
			continue
		}
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("standard %s score %v out of range", std.Name, result.Score)
		}
	}
}

func TestEvaluateStrongDocument(t *testing.T) {
	report := Evaluate(strongFeatures())

	// Every layer of a strong document clears the 80-point compliance bar.
	if report.CompliantStandards != 7 {
		t.Errorf("CompliantStandards = %d, want 7 (standards: %+v)", report.CompliantStandards, report.Standards)
	}
	if report.OverallCompliance < 80 {
		t.Errorf("OverallCompliance = %v, want >= 80", report.OverallCompliance)
	}
}

func TestEvaluateEmptyDocument(t *testing.T) {
	report := Evaluate(&types.FeatureSet{})

	// Only presentation passes: an empty document has nothing inconsistent.
	if report.CompliantStandards != 1 {
		t.Errorf("CompliantStandards = %d, want 1", report.CompliantStandards)
	}
	if q := report.Standards[QuantificationStandard]; q.Score != 0 {
		t.Errorf("quantification score = %v, want 0 with no bullets", q.Score)
	}
	if a := report.Standards[RoleAlignment]; a.Score != 50 {
		t.Errorf("alignment score = %v, want neutral 50 without a target role", a.Score)
	}
}

func TestCheckActionVerbs(t *testing.T) {
	tests := []struct {
		name  string
		tier1 int
		want  float64
	}{
		{"none", 0, 50},
		{"one", 1, 50},
		{"two", 2, 50},
		{"three", 3, 75},
		{"four", 4, 75},
		{"five", 5, 90},
		{"six", 6, 90},
	}

	prev := 0.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkActionVerbs(&types.FeatureSet{Tier1Count: tt.tier1})
			if got.Score != tt.want {
				t.Errorf("score = %v, want %v", got.Score, tt.want)
			}
			// More tier-1 verbs never lowers the score.
			if got.Score < prev {
				t.Errorf("score dropped from %v to %v at tier1=%d", prev, got.Score, tt.tier1)
			}
			prev = got.Score
		})
	}
}

func TestCheckQuantification(t *testing.T) {
	tests := []struct {
		name    string
		bullets int
		rate    float64
		want    float64
	}{
		{"no bullets", 0, 0, 0},
		{"excellent rate", 10, 85, 95},
		{"inclusive 80 boundary", 10, 80, 95},
		{"good rate", 10, 65, 80},
		{"poor rate maps to rounded rate", 10, 32.4, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkQuantification(&types.FeatureSet{TotalBullets: tt.bullets, QuantificationRate: tt.rate})
			if got.Score != tt.want {
				t.Errorf("score = %v, want %v", got.Score, tt.want)
			}
		})
	}
}

func TestCheckATSFormatting(t *testing.T) {
	t.Run("compliant", func(t *testing.T) {
		got := checkATSFormatting(&types.FeatureSet{EmailFound: true})
		if got.Score != 100 {
			t.Errorf("score = %v, want 100", got.Score)
		}
	})

	t.Run("tabs and missing email stack", func(t *testing.T) {
		got := checkATSFormatting(&types.FeatureSet{TabsFound: true})
		if got.Score != 50 {
			t.Errorf("score = %v, want 50", got.Score)
		}
		if len(got.Findings) != 2 {
			t.Errorf("findings = %v, want 2 entries", got.Findings)
		}
	})
}

func TestQuantificationBoundaryFromExtraction(t *testing.T) {
	// 10 bullets, 8 carrying numerals: the rate computes to exactly 80.0 and
	// must land in the inclusive top tier.
	text := `Experience
- improved throughput by 40%
- cut costs by 15%
- led team of 6
- automated 12 workflows
- reduced latency 30%
- saved $20,000 annually
- migrated 8 services
- onboarded 3 engineers
- maintained the billing platform
- documented internal processes
`

	fs := analyze.New(types.DefaultVocabulary()).Extract(text, analyze.Options{})

	if fs.TotalBullets != 10 {
		t.Fatalf("TotalBullets = %d, want 10", fs.TotalBullets)
	}
	if fs.QuantifiedBullets != 8 {
		t.Fatalf("QuantifiedBullets = %d, want 8", fs.QuantifiedBullets)
	}
	if fs.QuantificationRate != 80 {
		t.Fatalf("QuantificationRate = %v, want exactly 80", fs.QuantificationRate)
	}

	report := Evaluate(fs)
	q := report.Standards[QuantificationStandard]
	if q.Score != 95 {
		t.Errorf("quantification score = %v at the 80%% boundary, want 95", q.Score)
	}
}

func TestCheckPresentationFloorsAtZero(t *testing.T) {
	got := checkPresentation(&types.FeatureSet{
		DateFormatCount:     5,
		UnprofessionalCount: 20,
		BulletGlyphCount:    3,
	})
	if got.Score != 0 {
		t.Errorf("score = %v, want floor of 0", got.Score)
	}
}
