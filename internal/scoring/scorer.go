// Package scoring turns extracted features into the weighted section scores,
// the overall score, and the enhanced standards-compliance score. Every
// function here is a pure function of its inputs: identical features always
// produce identical scores.
package scoring

import (
	"math"
	"regexp"

	"atscan/internal/types"
)

// Category weights for the overall score.
const (
	weightKeywords       = 0.30
	weightFormatting     = 0.25
	weightContentQuality = 0.20
	weightATS            = 0.15
	weightQuantification = 0.10
)

// Sub-weights inside the keywords category.
const (
	weightPowerVerbs = 0.3
	weightTechSkills = 0.4
	weightSoftSkills = 0.2
	weightJobMatch   = 0.1
)

// Scorer computes scores over an injected vocabulary. Red-flag patterns are
// compiled once at construction; invalid patterns are dropped (configuration
// validation reports them before a Scorer is ever built).
type Scorer struct {
	vocab    types.Vocabulary
	redFlags []compiledRedFlag
}

type compiledRedFlag struct {
	re   *regexp.Regexp
	rule types.RedFlagRule
}

// New returns a Scorer over the given vocabulary.
func New(vocab types.Vocabulary) *Scorer {
	s := &Scorer{vocab: vocab}
	for _, rule := range vocab.RedFlags {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			continue
		}
		s.redFlags = append(s.redFlags, compiledRedFlag{re: re, rule: rule})
	}
	return s
}

// ScoreSections computes the five base scoring sections from a FeatureSet.
func (s *Scorer) ScoreSections(fs *types.FeatureSet) types.SectionScores {
	return types.SectionScores{
		Keywords:         s.scoreKeywords(fs),
		Formatting:       s.scoreFormatting(fs),
		ContentQuality:   s.scoreContentQuality(fs),
		ATSCompatibility: s.scoreATSCompatibility(fs),
		Quantification:   s.scoreQuantification(fs),
	}
}

// Overall blends the section scores into the weighted composite in [0,100].
func (s *Scorer) Overall(sections types.SectionScores) int {
	keywordScore := sections.Keywords.PowerVerbs.Score*weightPowerVerbs +
		sections.Keywords.TechnicalSkills.Score*weightTechSkills +
		sections.Keywords.SoftSkills.Score*weightSoftSkills +
		sections.Keywords.JobMatch.Score*weightJobMatch

	total := keywordScore*weightKeywords +
		sections.Formatting.OverallScore*weightFormatting +
		sections.ContentQuality.QualityScore*weightContentQuality +
		sections.ATSCompatibility.Score*weightATS +
		sections.Quantification.Score*weightQuantification

	return clampScore(total)
}

func (s *Scorer) scoreKeywords(fs *types.FeatureSet) types.KeywordAnalysis {
	ka := types.KeywordAnalysis{
		PowerVerbs: types.KeywordMetric{
			Count: fs.PowerVerbCount,
			Score: math.Min(float64(fs.PowerVerbCount)*10, 100),
		},
		TechnicalSkills: types.SkillMetric{
			Found: fs.TechnicalSkillsFound,
			Count: len(fs.TechnicalSkillsFound),
			Score: math.Min(float64(len(fs.TechnicalSkillsFound))*5, 100),
		},
		SoftSkills: types.SkillMetric{
			Found: fs.SoftSkillsFound,
			Count: len(fs.SoftSkillsFound),
			Score: math.Min(float64(len(fs.SoftSkillsFound))*10, 100),
		},
	}

	if len(fs.JobKeywords) > 0 {
		ka.JobMatch.MatchedCount = len(fs.JobKeywordsMatched)
		ka.JobMatch.Score = float64(len(fs.JobKeywordsMatched)) / float64(max(len(fs.JobKeywords), 1)) * 100
	}
	ka.JobMatch.WeightedScore = s.weightedKeywordCoverage(fs)

	return ka
}

// weightedKeywordCoverage blends coverage of the configured hard and soft
// keyword lists using the configured weights.
func (s *Scorer) weightedKeywordCoverage(fs *types.FeatureSet) float64 {
	hard := float64(len(fs.HardKeywordsFound)) / float64(max(len(s.vocab.HardKeywords), 1)) * 100
	soft := float64(len(fs.SoftKeywordsFound)) / float64(max(len(s.vocab.SoftKeywords), 1)) * 100
	return hard*s.vocab.Weights.Hard + soft*s.vocab.Weights.Soft
}

func (s *Scorer) scoreFormatting(fs *types.FeatureSet) types.FormattingAnalysis {
	present := 0
	for _, found := range fs.SectionsPresent {
		if found {
			present++
		}
	}
	sectionScore := float64(present) / float64(max(len(fs.SectionsPresent), 1)) * 100
	bulletScore := math.Min(float64(fs.TotalBullets)*5, 100)

	return types.FormattingAnalysis{
		Sections:     fs.SectionsPresent,
		SectionScore: sectionScore,
		BulletPoints: fs.TotalBullets,
		BulletScore:  bulletScore,
		OverallScore: (sectionScore + bulletScore) / 2,
	}
}

func (s *Scorer) scoreContentQuality(fs *types.FeatureSet) types.ContentQuality {
	return types.ContentQuality{
		WordCount:              fs.WordCount,
		SentenceCount:          fs.SentenceCount,
		AvgWordsPerSentence:    fs.AvgWordsPerSentence,
		BulletPoints:           fs.TotalBullets,
		QuantifiedAchievements: fs.QuantifiedMentions,
		QualityScore:           math.Min(float64(fs.TotalBullets*5+fs.QuantifiedMentions*10), 100),
	}
}

func (s *Scorer) scoreATSCompatibility(fs *types.FeatureSet) types.ATSCompatibility {
	score := 100.0
	var issues []string

	if fs.TabsFound {
		issues = append(issues, "Contains tab characters")
		score -= 10
	}
	if fs.SpecialCharCount > 50 {
		issues = append(issues, "Excessive special characters")
		score -= 15
	}
	if !fs.EmailFound {
		issues = append(issues, "No email address found")
		score -= 20
	}
	if !fs.PhoneFound {
		issues = append(issues, "No phone number found")
		score -= 10
	}

	return types.ATSCompatibility{
		Score:  math.Max(score, 0),
		Issues: issues,
		ContactInfo: types.ContactInfo{
			EmailFound: fs.EmailFound,
			PhoneFound: fs.PhoneFound,
		},
	}
}

func (s *Scorer) scoreQuantification(fs *types.FeatureSet) types.Quantification {
	return types.Quantification{
		TotalBullets:      fs.TotalBullets,
		QuantifiedBullets: fs.QuantifiedBullets,
		Rate:              fs.QuantificationRate,
		Examples:          fs.QuantifiedExamples,
		Score:             fs.QuantificationRate,
	}
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
