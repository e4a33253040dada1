package optimize

import (
	"fmt"
	"strings"

	"atscan/internal/types"
)

// buildPrompt renders the single-shot optimization prompt. The response shape
// is pinned in the prompt so the parser can decode it strictly first.
func buildPrompt(content, jobDescription string, current types.FeatureSummary, requirements types.JobRequirements, level string, guidelines Guidelines) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert CV optimization specialist. Your task is to improve the following CV while maintaining its authenticity and factual accuracy.

CURRENT CV:
%s

OPTIMIZATION LEVEL: %s

CURRENT ANALYSIS:
- Total bullet points: %d
- Quantified bullets: %d (%.1f%%)
- Power verbs used: %d

OPTIMIZATION GUIDELINES:
- Focus on: %s
- Max changes per section: %d
- Risk level: %s

INDUSTRY STANDARDS TO FOLLOW:
- Use Tier 1 action verbs: architected, orchestrated, spearheaded, optimized, transformed
- Quantify 80%%+ of achievements with specific numbers, percentages, or dollar amounts
- Focus on impact and results, not just responsibilities
- Use ATS-friendly formatting
`,
		content,
		level,
		current.TotalBullets,
		current.QuantifiedBullets, current.QuantificationRate,
		current.PowerVerbCount,
		strings.Join(guidelines.FocusAreas, ", "),
		guidelines.MaxChangesPerSection,
		guidelines.RiskLevel)

	if jobDescription != "" {
		fmt.Fprintf(&b, `
TARGET JOB DESCRIPTION:
%s

REQUIRED SKILLS TO EMPHASIZE:
%s
`,
			jobDescription,
			strings.Join(requirements.RequiredSkills, ", "))
	}

	b.WriteString(`
Please provide:
1. An optimized version of the CV
2. A list of specific improvements made
3. Reasoning for each major change

Return your response in this JSON format:
{
    "optimized_content": "[full optimized CV text]",
    "improvements": [
        {
            "section": "[section name]",
            "original": "[original text]",
            "improved": "[improved text]",
            "reason": "[reason for change]",
            "impact_score": [1-10 rating]
        }
    ],
    "summary": "[brief summary of optimizations made]"
}
`)

	return b.String()
}
