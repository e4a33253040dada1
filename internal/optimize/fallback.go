package optimize

import (
	"fmt"
	"strings"

	"atscan/internal/types"
)

// verbReplacements maps weak phrasing to stronger equivalents. Order matters:
// replacements apply in sequence per line.
var verbReplacements = []struct {
	weak   string
	strong string
}{
	{"worked on", "developed"},
	{"helped with", "contributed to"},
	{"was responsible for", "managed"},
	{"assisted", "supported"},
}

// ruleBasedRewrite is the deterministic fallback path. It lowercases any line
// containing a weak phrase and substitutes the stronger verb, recording one
// improvement per substitution.
func (e *Engine) ruleBasedRewrite(text string) parsedResponse {
	lines := strings.Split(text, "\n")
	optimized := make([]string, 0, len(lines))
	improvements := []types.Improvement{}

	for _, line := range lines {
		optimizedLine := line
		for _, r := range verbReplacements {
			if !strings.Contains(strings.ToLower(optimizedLine), r.weak) {
				continue
			}
			replaced := strings.ReplaceAll(strings.ToLower(optimizedLine), r.weak, r.strong)
			if replaced != line {
				improvements = append(improvements, types.Improvement{
					Section:     "experience",
					Original:    line,
					Improved:    replaced,
					Reason:      fmt.Sprintf("Replaced weak verb %q with stronger %q", r.weak, r.strong),
					ImpactScore: 6,
				})
			}
			optimizedLine = replaced
		}
		optimized = append(optimized, optimizedLine)
	}

	return parsedResponse{
		OptimizedContent: strings.Join(optimized, "\n"),
		Improvements:     improvements,
		Summary:          fmt.Sprintf("Applied %d rule-based improvements", len(improvements)),
		fallbackUsed:     true,
	}
}
