package types

import "time"

// ScanInput represents a request to score a document.
type ScanInput struct {
	Content        string `json:"content"`
	JobDescription string `json:"jobDescription,omitempty"`
	TargetRole     string `json:"targetRole,omitempty"`
	Source         string `json:"source,omitempty"`
}

// OptimizeInput represents a request to rewrite a document.
type OptimizeInput struct {
	Content        string `json:"content"`
	JobDescription string `json:"jobDescription,omitempty"`
	Level          string `json:"level,omitempty"`
}

// FeatureSet is the quantitative snapshot of one document. Computed fresh
// per document, never cached across documents. All rates are percentages in
// [0,100]; counts are non-negative.
type FeatureSet struct {
	WordCount           int     `json:"wordCount"`
	SentenceCount       int     `json:"sentenceCount"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`

	TotalBullets       int      `json:"totalBullets"`
	QuantifiedBullets  int      `json:"quantifiedBullets"`
	QuantificationRate float64  `json:"quantificationRate"`
	QuantifiedExamples []string `json:"quantifiedExamples,omitempty"`
	QuantifiedMentions int      `json:"quantifiedMentions"`
	DetailedBullets    int      `json:"detailedBullets"`
	WeakBullets        int      `json:"weakBullets"`
	AvgBulletWords     float64  `json:"avgBulletWords"`

	PowerVerbCount       int      `json:"powerVerbCount"`
	TechnicalSkillsFound []string `json:"technicalSkillsFound,omitempty"`
	SoftSkillsFound      []string `json:"softSkillsFound,omitempty"`
	Tier1Count           int      `json:"tier1Count"`
	Tier2Count           int      `json:"tier2Count"`
	Tier3Count           int      `json:"tier3Count"`

	LeadershipTerms  []string `json:"leadershipTerms,omitempty"`
	TeamSizeMentions int      `json:"teamSizeMentions"`
	BudgetMentions   int      `json:"budgetMentions"`

	ImpactStatements     []string `json:"impactStatements,omitempty"`
	HighImpactStatements int      `json:"highImpactStatements"`

	UnprofessionalCount int `json:"unprofessionalCount"`

	SectionsPresent  map[string]bool `json:"sectionsPresent"`
	SectionsDetected []string        `json:"sectionsDetected"`

	EmailFound       bool `json:"emailFound"`
	PhoneFound       bool `json:"phoneFound"`
	TabsFound        bool `json:"tabsFound"`
	SpecialCharCount int  `json:"specialCharCount"`
	BulletGlyphCount int  `json:"bulletGlyphCount"`
	DateFormatCount  int  `json:"dateFormatCount"`

	TargetRole   string   `json:"targetRole,omitempty"`
	RoleRelevant []string `json:"roleRelevant,omitempty"`
	RoleMatched  []string `json:"roleMatched,omitempty"`

	JobKeywords        []string `json:"jobKeywords,omitempty"`
	JobKeywordsMatched []string `json:"jobKeywordsMatched,omitempty"`

	HardKeywordsFound []string `json:"hardKeywordsFound,omitempty"`
	SoftKeywordsFound []string `json:"softKeywordsFound,omitempty"`
}

// FeatureSummary is the condensed view used for prompt construction and
// optimization validation. Its quantified-bullet rule (any digit, %, or $
// in the bullet) is deliberately looser than FeatureSet's.
type FeatureSummary struct {
	TotalBullets       int      `json:"totalBullets"`
	QuantifiedBullets  int      `json:"quantifiedBullets"`
	QuantificationRate float64  `json:"quantificationRate"`
	PowerVerbCount     int      `json:"powerVerbCount"`
	WordCount          int      `json:"wordCount"`
	SectionsDetected   []string `json:"sectionsDetected"`
}

// JobRequirements captures what a job description asks for.
type JobRequirements struct {
	RequiredSkills      []string `json:"requiredSkills"`
	ExperienceYears     int      `json:"experienceYears"`
	KeyResponsibilities []string `json:"keyResponsibilities,omitempty"`
	CultureKeywords     []string `json:"cultureKeywords,omitempty"`
}

// KeywordMetric is a simple count/score pair.
type KeywordMetric struct {
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// SkillMetric records which vocabulary terms matched.
type SkillMetric struct {
	Found []string `json:"found"`
	Count int      `json:"count"`
	Score float64  `json:"score"`
}

// JobMatch scores document coverage of job-description keywords.
type JobMatch struct {
	Score         float64 `json:"score"`
	MatchedCount  int     `json:"matchedCount"`
	WeightedScore float64 `json:"weightedScore"`
}

// KeywordAnalysis is the keywords scoring section.
type KeywordAnalysis struct {
	PowerVerbs      KeywordMetric `json:"powerVerbs"`
	TechnicalSkills SkillMetric   `json:"technicalSkills"`
	SoftSkills      SkillMetric   `json:"softSkills"`
	JobMatch        JobMatch      `json:"jobMatch"`
}

// FormattingAnalysis is the formatting scoring section.
type FormattingAnalysis struct {
	Sections     map[string]bool `json:"sections"`
	SectionScore float64         `json:"sectionScore"`
	BulletPoints int             `json:"bulletPoints"`
	BulletScore  float64         `json:"bulletScore"`
	OverallScore float64         `json:"overallFormattingScore"`
}

// ContentQuality is the content-quality scoring section.
type ContentQuality struct {
	WordCount              int     `json:"wordCount"`
	SentenceCount          int     `json:"sentenceCount"`
	AvgWordsPerSentence    float64 `json:"avgWordsPerSentence"`
	BulletPoints           int     `json:"bulletPoints"`
	QuantifiedAchievements int     `json:"quantifiedAchievements"`
	QualityScore           float64 `json:"qualityScore"`
}

// ContactInfo records which contact channels were detected.
type ContactInfo struct {
	EmailFound bool `json:"emailFound"`
	PhoneFound bool `json:"phoneFound"`
}

// ATSCompatibility is the ATS-compatibility scoring section.
type ATSCompatibility struct {
	Score       float64     `json:"score"`
	Issues      []string    `json:"issues"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// Quantification is the quantification scoring section.
type Quantification struct {
	TotalBullets      int      `json:"totalBullets"`
	QuantifiedBullets int      `json:"quantifiedBullets"`
	Rate              float64  `json:"quantificationRate"`
	Examples          []string `json:"quantifiedExamples,omitempty"`
	Score             float64  `json:"score"`
}

// SectionScores groups the five base scoring sections.
type SectionScores struct {
	Keywords         KeywordAnalysis    `json:"keywords"`
	Formatting       FormattingAnalysis `json:"formatting"`
	ContentQuality   ContentQuality     `json:"contentQuality"`
	ATSCompatibility ATSCompatibility   `json:"atsCompatibility"`
	Quantification   Quantification     `json:"quantification"`
}

// StandardResult is the outcome of one named evaluation standard.
type StandardResult struct {
	Score    float64  `json:"score"`
	Findings []string `json:"findings"`
}

// StandardsReport aggregates the seven standards.
type StandardsReport struct {
	Standards          map[string]StandardResult `json:"standards"`
	OverallCompliance  float64                   `json:"overallComplianceScore"`
	CompliantStandards int                       `json:"compliantStandards"`
	TotalStandards     int                       `json:"totalStandards"`
}

// VerbHierarchy scores action-verb usage by tier.
type VerbHierarchy struct {
	Tier1Count        int     `json:"tier1Count"`
	Tier2Count        int     `json:"tier2Count"`
	Tier3Count        int     `json:"tier3Count"`
	TotalVerbs        int     `json:"totalVerbs"`
	DistributionScore float64 `json:"tierDistributionScore"`
	Recommendation    string  `json:"recommendation"`
}

// LeadershipAnalysis scores leadership and management signals.
type LeadershipAnalysis struct {
	Terms            []string `json:"leadershipTerms"`
	TermCount        int      `json:"leadershipTermCount"`
	TeamSizeMentions int      `json:"teamSizeMentions"`
	BudgetMentions   int      `json:"budgetMentions"`
	Score            float64  `json:"leadershipScore"`
}

// ImpactAnalysis scores quantified impact statements.
type ImpactAnalysis struct {
	Statements     []string `json:"impactStatements"`
	TotalCount     int      `json:"totalImpactStatements"`
	HighImpact     int      `json:"highImpactStatements"`
	Score          float64  `json:"impactScore"`
}

// RoleAlignment scores fit against a target role.
type RoleAlignment struct {
	TargetRole       string   `json:"targetRole,omitempty"`
	RelevantKeywords []string `json:"relevantKeywords,omitempty"`
	MatchedKeywords  []string `json:"matchedKeywords,omitempty"`
	Score            float64  `json:"alignmentScore"`
	Recommendation   string   `json:"recommendation,omitempty"`
}

// ContentDepth scores bullet-point depth.
type ContentDepth struct {
	TotalBullets    int     `json:"totalBullets"`
	DetailedBullets int     `json:"detailedBullets"`
	WeakBullets     int     `json:"weakBullets"`
	AvgBulletWords  float64 `json:"avgBulletLength"`
	Score           float64 `json:"depthScore"`
}

// Presentation scores professional presentation consistency.
type Presentation struct {
	Score                float64  `json:"presentationScore"`
	Issues               []string `json:"issues"`
	DateFormatConsistent bool     `json:"dateFormatConsistency"`
	ProfessionalLanguage bool     `json:"professionalLanguage"`
	BulletConsistent     bool     `json:"bulletConsistency"`
}

// EnhancedAnalysis groups the standards-compliance layers.
type EnhancedAnalysis struct {
	Standards     StandardsReport    `json:"industryStandards"`
	VerbHierarchy VerbHierarchy      `json:"verbHierarchy"`
	Leadership    LeadershipAnalysis `json:"leadershipAnalysis"`
	Impact        ImpactAnalysis     `json:"impactAnalysis"`
	RoleAlignment RoleAlignment      `json:"roleAlignment"`
	ContentDepth  ContentDepth       `json:"contentDepth"`
	Presentation  Presentation       `json:"professionalPresentation"`
}

// RedFlagFinding is a matched red-flag rule.
type RedFlagFinding struct {
	Pattern string `json:"pattern"`
	Message string `json:"message"`
}

// ScanResult is the complete outcome of scoring one document.
type ScanResult struct {
	Timestamp               time.Time         `json:"timestamp"`
	Source                  string            `json:"source,omitempty"`
	OverallScore            int               `json:"overallScore"`
	Sections                SectionScores     `json:"sections"`
	Recommendations         []string          `json:"recommendations"`
	Enhanced                *EnhancedAnalysis `json:"enhancedAnalysis,omitempty"`
	EnhancedScore           int               `json:"enhancedScore"`
	EnhancedRecommendations []string          `json:"enhancedRecommendations,omitempty"`
	RedFlags                []RedFlagFinding  `json:"redFlags,omitempty"`
	SpellingIssues          []string          `json:"spellingIssues,omitempty"`
}

// EffectiveScore returns the enhanced score when present, else the base score.
func (r *ScanResult) EffectiveScore() int {
	if r.Enhanced != nil {
		return r.EnhancedScore
	}
	return r.OverallScore
}

// Improvement records one change proposed during optimization.
type Improvement struct {
	Section     string `json:"section"`
	Original    string `json:"original"`
	Improved    string `json:"improved"`
	Reason      string `json:"reason"`
	ImpactScore int    `json:"impact_score"`
}

// ValidationDeltas holds the measured differences between the original and
// optimized documents.
type ValidationDeltas struct {
	QuantificationImprovement float64 `json:"quantificationImprovement"`
	PowerVerbImprovement      int     `json:"powerVerbImprovement"`
	LengthChange              int     `json:"lengthChange"`
	BulletCountChange         int     `json:"bulletCountChange"`
}

/// ValidationResult gates trust in a proposed rewrite. Advisory only: a
// failed validation never blocks returning the optimized content.
type ValidationResult struct {
	Deltas            ValidationDeltas `json:"improvements"`
	ImprovementScore  int              `json:"improvementScore"`
	Passed            bool             `json:"validationPassed"`
	OriginalAnalysis  FeatureSummary   `json:"originalAnalysis"`
	OptimizedAnalysis FeatureSummary   `json:"optimizedAnalysis"`
}

// OptimizeResult is the complete outcome of one optimization request.
type OptimizeResult struct {
	Timestamp        time.Time        `json:"timestamp"`
	OriginalContent  string           `json:"originalContent"`
	OptimizedContent string           `json:"optimizedContent"`
	Improvements     []Improvement    `json:"improvements"`
	Validation       ValidationResult `json:"validation"`
	Level            string           `json:"optimizationLevel"`
	JobDescription   string           `json:"jobDescription,omitempty"`
	Summary          string           `json:"summary"`
	FallbackUsed     bool             `json:"fallbackUsed"`
	Success          bool             `json:"success"`
}

// Suggestion is a targeted improvement hint produced without running a full
// optimization.
type Suggestion struct {
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Impact     string   `json:"impact"`
	Examples   []string `json:"examples,omitempty"`
}

// RedFlagRule is a configured pattern/message pair scanned against documents.
type RedFlagRule struct {
	Pattern string `json:"pattern" mapstructure:"pattern"`
	Message string `json:"message" mapstructure:"message"`
}

// KeywordWeights splits job-match weighting between hard and soft keywords.
type KeywordWeights struct {
	Hard float64 `json:"hard" mapstructure:"hard"`
	Soft float64 `json:"soft" mapstructure:"soft"`
}

// Vocabulary is the injected keyword configuration the scoring pipeline runs
// on. All matching is case-insensitive substring containment, binary presence
// per term.
type Vocabulary struct {
	PowerVerbs           []string            `json:"powerVerbs" mapstructure:"powerVerbs"`
	TechnicalSkills      []string            `json:"technicalSkills" mapstructure:"technicalSkills"`
	SoftSkills           []string            `json:"softSkills" mapstructure:"softSkills"`
	Tier1Verbs           []string            `json:"tier1Verbs" mapstructure:"tier1Verbs"`
	Tier2Verbs           []string            `json:"tier2Verbs" mapstructure:"tier2Verbs"`
	Tier3Verbs           []string            `json:"tier3Verbs" mapstructure:"tier3Verbs"`
	SignatureVerbs       []string            `json:"signatureVerbs" mapstructure:"signatureVerbs"`
	LeadershipIndicators []string            `json:"leadershipIndicators" mapstructure:"leadershipIndicators"`
	ImpactIndicators     []string            `json:"impactIndicators" mapstructure:"impactIndicators"`
	UnprofessionalTerms  []string            `json:"unprofessionalTerms" mapstructure:"unprofessionalTerms"`
	RoleKeywords         map[string][]string `json:"roleKeywords" mapstructure:"roleKeywords"`
	CultureKeywords      []string            `json:"cultureKeywords" mapstructure:"cultureKeywords"`
	HardKeywords         []string            `json:"hardKeywords" mapstructure:"hardKeywords"`
	SoftKeywords         []string            `json:"softKeywords" mapstructure:"softKeywords"`
	UKSpellings          [][]string          `json:"ukSpellings" mapstructure:"ukSpellings"`
	RedFlags             []RedFlagRule       `json:"redFlags" mapstructure:"redFlags"`
	Weights              KeywordWeights      `json:"weights" mapstructure:"weights"`
}
