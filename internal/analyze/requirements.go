package analyze

import (
	"strings"

	"atscan/internal/types"
)

// jdSkillTerms is the fixed skill list scanned when extracting structured job
// requirements for the optimization prompt.
var jdSkillTerms = []string{"python", "java", "javascript", "docker", "kubernetes", "aws", "azure", "devops"}

var responsibilityMarkers = []string{"responsible for", "will", "you will"}

// ExtractJobRequirements derives the structured requirements of a job
// description: required skills, an inferred seniority band, key
// responsibility lines, and culture keywords.
func (a *Analyzer) ExtractJobRequirements(jobDescription string) types.JobRequirements {
	jdLower := strings.ToLower(jobDescription)

	req := types.JobRequirements{
		RequiredSkills:  filterPresent(jdLower, jdSkillTerms),
		CultureKeywords: filterPresent(jdLower, a.vocab.CultureKeywords),
	}

	switch {
	case strings.Contains(jdLower, "senior") || strings.Contains(jdLower, "lead"):
		req.ExperienceYears = 5
	case strings.Contains(jdLower, "mid") || strings.Contains(jdLower, "intermediate"):
		req.ExperienceYears = 3
	case strings.Contains(jdLower, "junior") || strings.Contains(jdLower, "entry"):
		req.ExperienceYears = 1
	}

	for _, line := range strings.Split(jobDescription, "\n") {
		lineLower := strings.ToLower(line)
		for _, marker := range responsibilityMarkers {
			if strings.Contains(lineLower, marker) {
				req.KeyResponsibilities = append(req.KeyResponsibilities, strings.TrimSpace(line))
				break
			}
		}
		if len(req.KeyResponsibilities) >= 5 {
			break
		}
	}

	return req
}
