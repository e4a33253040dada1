package scoring

import (
	"fmt"
	"strings"

	"atscan/internal/types"
)

// ScanRedFlags matches the configured red-flag rules against the document
// text. Matching is case-insensitive; each rule fires at most once.
func (s *Scorer) ScanRedFlags(text string) []types.RedFlagFinding {
	var findings []types.RedFlagFinding
	for _, flag := range s.redFlags {
		if flag.re.MatchString(text) {
			findings = append(findings, types.RedFlagFinding{
				Pattern: flag.rule.Pattern,
				Message: flag.rule.Message,
			})
		}
	}
	return findings
}

// SpellingIssues flags mixed use of UK and US spellings of the same word.
// Consistent use of either convention is fine; mixing both is not.
func (s *Scorer) SpellingIssues(text string) []string {
	lower := strings.ToLower(text)
	var issues []string
	for _, pair := range s.vocab.UKSpellings {
		if len(pair) != 2 {
			continue
		}
		if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
			issues = append(issues, fmt.Sprintf("Mixed spellings %q and %q; pick one convention", pair[0], pair[1]))
		}
	}
	return issues
}
