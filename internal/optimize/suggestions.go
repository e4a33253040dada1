package optimize

import (
	"fmt"
	"strings"

	"atscan/internal/analyze"
	"atscan/internal/types"
)

// coreSections are the sections every document is expected to carry for a
// targeted suggestion pass.
var coreSections = []string{"summary", "skills"}

// Suggestions produces targeted hints without running a full optimization.
// Purely deterministic; no LLM call is made.
func (e *Engine) Suggestions(content string) []types.Suggestion {
	summary := e.analyzer.Summarize(content)
	suggestions := []types.Suggestion{}

	if summary.QuantificationRate < 80 {
		suggestions = append(suggestions, types.Suggestion{
			Category:   "quantification",
			Priority:   "high",
			Suggestion: fmt.Sprintf("Add numbers to %d more bullet points", summary.TotalBullets-summary.QuantifiedBullets),
			Impact:     "Quantified achievements are 40% more likely to pass ATS screening",
			Examples: []string{
				"Increased efficiency by 25%",
				"Managed team of 8 developers",
				"Reduced costs by $50K annually",
			},
		})
	}

	if summary.PowerVerbCount < 5 {
		suggestions = append(suggestions, types.Suggestion{
			Category:   "action_verbs",
			Priority:   "high",
			Suggestion: "Replace weak verbs with powerful action verbs",
			Impact:     "Strong action verbs improve readability and impact",
			Examples: []string{
				"Architected scalable solutions",
				"Orchestrated cross-team initiatives",
				"Spearheaded digital transformation",
			},
		})
	}

	if missing := analyze.MissingSections(coreSections, summary.SectionsDetected); len(missing) > 0 {
		suggestions = append(suggestions, types.Suggestion{
			Category:   "structure",
			Priority:   "medium",
			Suggestion: fmt.Sprintf("Add missing sections: %s", strings.Join(missing, ", ")),
			Impact:     "Complete sections improve ATS parsing and readability",
			Examples: []string{
				"Professional Summary with 3-4 key achievements",
				"Technical Skills section with relevant technologies",
			},
		})
	}

	return suggestions
}
