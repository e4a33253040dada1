package optimize

import "atscan/internal/types"

const validationPassScore = 50

// Validate measures whether a rewrite actually improved the document. The
// score is a sum of fixed bonuses; identical texts earn the two stability
// bonuses (length unchanged, bullets kept) and score 45, below the pass bar.
func (e *Engine) Validate(original, optimized string) types.ValidationResult {
	before := e.analyzer.Summarize(original)
	after := e.analyzer.Summarize(optimized)

	deltas := types.ValidationDeltas{
		QuantificationImprovement: after.QuantificationRate - before.QuantificationRate,
		PowerVerbImprovement:      after.PowerVerbCount - before.PowerVerbCount,
		LengthChange:              after.WordCount - before.WordCount,
		BulletCountChange:         after.TotalBullets - before.TotalBullets,
	}

	score := 0
	if deltas.QuantificationImprovement > 0 {
		score += 30
	}
	if deltas.PowerVerbImprovement > 0 {
		score += 25
	}
	if deltas.LengthChange >= -50 && deltas.LengthChange <= 200 {
		score += 20
	}
	if deltas.BulletCountChange >= 0 {
		score += 25
	}

	return types.ValidationResult{
		Deltas:            deltas,
		ImprovementScore:  score,
		Passed:            score >= validationPassScore,
		OriginalAnalysis:  before,
		OptimizedAnalysis: after,
	}
}
