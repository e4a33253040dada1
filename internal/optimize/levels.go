package optimize

// Optimization levels. Unknown values normalize to balanced.
const (
	LevelConservative = "conservative"
	LevelBalanced     = "balanced"
	LevelAggressive   = "aggressive"
)

// Guidelines shape the prompt for a given optimization level. They steer the
// model; the engine does not mechanically enforce them on the output.
type Guidelines struct {
	MaxChangesPerSection int
	PreserveStructure    bool
	FocusAreas           []string
	RiskLevel            string
}

// NormalizeLevel maps any input to a known level.
func NormalizeLevel(level string) string {
	switch level {
	case LevelConservative, LevelBalanced, LevelAggressive:
		return level
	default:
		return LevelBalanced
	}
}

// GuidelinesFor returns the prompt guidelines for a normalized level.
func GuidelinesFor(level string) Guidelines {
	switch level {
	case LevelConservative:
		return Guidelines{
			MaxChangesPerSection: 2,
			PreserveStructure:    true,
			FocusAreas:           []string{"quantification", "action_verbs"},
			RiskLevel:            "low",
		}
	case LevelAggressive:
		return Guidelines{
			MaxChangesPerSection: 6,
			PreserveStructure:    false,
			FocusAreas:           []string{"complete_rewrite", "quantification", "action_verbs", "keywords", "impact", "structure"},
			RiskLevel:            "high",
		}
	default:
		return Guidelines{
			MaxChangesPerSection: 4,
			PreserveStructure:    true,
			FocusAreas:           []string{"quantification", "action_verbs", "keywords", "impact"},
			RiskLevel:            "medium",
		}
	}
}
