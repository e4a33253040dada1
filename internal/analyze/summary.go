package analyze

import (
	"strings"

	"atscan/internal/types"
)

// Summarize computes the condensed feature view used for optimization
// prompts and rewrite validation. A bullet counts as quantified here when it
// contains any digit, percent, or dollar sign.
func (a *Analyzer) Summarize(text string) types.FeatureSummary {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "•") || strings.HasPrefix(stripped, "-") || strings.HasPrefix(stripped, "*") {
			bullets = append(bullets, line)
		}
	}

	quantified := 0
	for _, bullet := range bullets {
		if strings.ContainsAny(bullet, "%$0123456789") {
			quantified++
		}
	}

	lower := strings.ToLower(text)
	return types.FeatureSummary{
		TotalBullets:       len(bullets),
		QuantifiedBullets:  quantified,
		QuantificationRate: float64(quantified) / float64(max(len(bullets), 1)) * 100,
		PowerVerbCount:     countPresent(lower, a.vocab.SignatureVerbs),
		WordCount:          len(strings.Fields(text)),
		SectionsDetected:   DetectSections(text),
	}
}
