package formatters

import (
	"strings"
	"testing"

	"atscan/internal/report"
	"atscan/internal/types"
)

func sampleScan() *types.ScanResult {
	return &types.ScanResult{
		OverallScore: 68,
		Sections: types.SectionScores{
			Keywords:         types.KeywordAnalysis{JobMatch: types.JobMatch{Score: 55}},
			Formatting:       types.FormattingAnalysis{OverallScore: 70},
			ContentQuality:   types.ContentQuality{QualityScore: 60},
			ATSCompatibility: types.ATSCompatibility{Score: 80, Issues: []string{"Contains tab characters"}},
			Quantification:   types.Quantification{Rate: 42.5},
		},
		Recommendations: []string{"Add more quantified achievements"},
	}
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewFormatterRegistry()

	t.Run("json works for any type", func(t *testing.T) {
		out, err := registry.Format(sampleScan(), "json")
		if err != nil {
			t.Fatalf("Format: %v", err)
		}
		if !strings.Contains(out, `"overallScore": 68`) {
			t.Errorf("json output missing score: %s", out)
		}
	})

	t.Run("text scan formatter", func(t *testing.T) {
		out, err := registry.Format(sampleScan(), "text")
		if err != nil {
			t.Fatalf("Format: %v", err)
		}
		for _, want := range []string{"Overall Score: 68/100", "Contains tab characters", "Add more quantified achievements", "42.5% of bullets"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q", want)
			}
		}
	})

	t.Run("markdown scan formatter", func(t *testing.T) {
		out, err := registry.Format(sampleScan(), "markdown")
		if err != nil {
			t.Fatalf("Format: %v", err)
		}
		if !strings.Contains(out, "# ATS Scan Results") || !strings.Contains(out, "| Keywords | 55/100 |") {
			t.Errorf("markdown output = %s", out)
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		if _, err := registry.Format(sampleScan(), "yaml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

func TestOptimizeFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	result := &types.OptimizeResult{
		OptimizedContent: "- developed migration plan",
		Level:            "balanced",
		Summary:          "Applied 1 rule-based improvements",
		FallbackUsed:     true,
		Improvements: []types.Improvement{
			{Section: "experience", Original: "- worked on migration plan", Improved: "- developed migration plan", Reason: "stronger verb", ImpactScore: 6},
		},
		Validation: types.ValidationResult{ImprovementScore: 70, Passed: true},
	}

	out, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	for _, want := range []string{"=== OPTIMIZED CV ===", "rule-based fallback", "impact 6/10", "Improvement Score: 70/100"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}

	md, err := registry.Format(result, "markdown")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(md, "# Optimized CV") || !strings.Contains(md, "**Validation Passed:** true") {
		t.Errorf("markdown output = %s", md)
	}
}

func TestSuggestionsFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	suggestions := []types.Suggestion{
		{Category: "quantification", Priority: "high", Suggestion: "Add numbers to 3 more bullet points", Impact: "Better ATS screening", Examples: []string{"Increased efficiency by 25%"}},
	}

	out, err := registry.Format(suggestions, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "[quantification/high]") {
		t.Errorf("text output = %s", out)
	}

	empty, err := registry.Format([]types.Suggestion{}, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(empty, "No suggestions") {
		t.Errorf("empty output = %s", empty)
	}
}

func TestReportFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	r := report.Build(sampleScan(), nil, nil)

	text, err := registry.Format(r, "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(text, "CV ANALYSIS REPORT") {
		t.Errorf("report text = %s", text)
	}

	csvOut, err := registry.Format(r, "csv")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.HasPrefix(csvOut, "Metric,Score,Scale,Type") {
		t.Errorf("report csv = %s", csvOut)
	}
}
