package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteText renders the human-readable summary view of the report.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("CV ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	assessment := r.ExecutiveSummary.OverallAssessment
	fmt.Fprintf(&b, "OVERALL SCORE: %d/100 (Grade: %s)\n", assessment.Score, assessment.Grade)
	fmt.Fprintf(&b, "ASSESSMENT: %s\n\n", assessment.Assessment)

	b.WriteString("KEY STRENGTHS:\n")
	for _, s := range r.ExecutiveSummary.KeyStrengths {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	b.WriteString("\n")

	b.WriteString("AREAS FOR IMPROVEMENT:\n")
	for _, s := range r.ExecutiveSummary.CriticalWeaknesses {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	b.WriteString("\n")

	b.WriteString("PRIORITY ACTIONS:\n")
	for _, s := range r.ExecutiveSummary.PriorityActions {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV renders the metrics table: one row per score, stable order.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Metric", "Score", "Scale", "Type"}); err != nil {
		return err
	}

	assessment := r.ExecutiveSummary.OverallAssessment
	rows := [][]string{
		{"Overall Score", fmt.Sprintf("%d", assessment.Score), "0-100", assessment.Grade},
		{"Readability Score", fmt.Sprintf("%d", r.PerformanceMetrics.ReadabilityScore), "0-100", "Score"},
		{"Keyword Density", fmt.Sprintf("%d", r.PerformanceMetrics.KeywordDensity), "0-100", "Score"},
		{"Impact Score", fmt.Sprintf("%d", r.PerformanceMetrics.ImpactScore), "0-100", "Score"},
		{"Professional Score", fmt.Sprintf("%d", r.PerformanceMetrics.ProfessionalScore), "0-100", "Score"},
		{"Ats Optimization Score", fmt.Sprintf("%.0f", r.PerformanceMetrics.ATSOptimizationScore), "0-100", "Score"},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
