package analyze

import (
	"regexp"
	"sort"
	"strings"

	"atscan/internal/types"
)

// Compiled once; extraction is pure and safe for concurrent use.
var (
	bulletLineRe   = regexp.MustCompile(`(?m)^\s*[•\-\*].*$`)
	bulletGlyphRe  = regexp.MustCompile(`(?m)^\s*([•\-\*])`)
	quantBulletRe  = regexp.MustCompile(`(?i)\d+[%$]?|\$\d+|\d+\+|\d+x|\d+ years?`)
	quantMentionRe = regexp.MustCompile(`\d+[%$]?|\$\d+`)
	emailRe        = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe        = regexp.MustCompile(`\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}`)
	specialCharRe  = regexp.MustCompile(`[^\w\s\-.,!?()%$]`)
	dateRe         = regexp.MustCompile(`\d{4}|\d{1,2}/\d{4}|\w+ \d{4}`)
	teamSizeRe     = regexp.MustCompile(`team of (\d+)|led (\d+)`)
	budgetRe       = regexp.MustCompile(`\$[\d,]+|budget`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)

	impactRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(reduced|decreased|cut).*?(\d+%|\d+)`),
		regexp.MustCompile(`(?i)(increased|improved|grew|boosted).*?(\d+%|\d+)`),
		regexp.MustCompile(`(?i)(saved|generated).*?\$([\d,]+)`),
		regexp.MustCompile(`(?i)(achieved|delivered).*?(\d+%|\d+)`),
	}
)

// presenceSections are the existence checks used by the formatting score.
var presenceSections = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"contact", regexp.MustCompile(`(?i)(email|phone|linkedin)`)},
	{"summary", regexp.MustCompile(`(?i)(summary|profile|objective)`)},
	{"experience", regexp.MustCompile(`(?i)(experience|work|employment)`)},
	{"education", regexp.MustCompile(`(?i)education`)},
	{"skills", regexp.MustCompile(`(?i)skills`)},
}

// canonicalSections is the ordered section list used for structure checks and
// missing-section suggestions.
var canonicalSections = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"summary", regexp.MustCompile(`(summary|profile|objective)`)},
	{"experience", regexp.MustCompile(`(experience|work|employment|career)`)},
	{"education", regexp.MustCompile(`education`)},
	{"skills", regexp.MustCompile(`skills`)},
	{"certifications", regexp.MustCompile(`(certifications|certificates)`)},
	{"projects", regexp.MustCompile(`projects`)},
}

// specialCharThreshold is the allowed count of characters outside the
// allow-list before a document is flagged.
const specialCharThreshold = 50

// jdTechTerms is the short allow-list scanned in job descriptions in addition
// to the configured vocabulary.
var jdTechTerms = []string{"python", "java", "docker", "aws", "kubernetes"}

// Options carries the optional scan context.
type Options struct {
	JobDescription string
	TargetRole     string
}

// Analyzer extracts quantitative features from document text. It holds only
// the injected vocabulary and is safe for concurrent use.
type Analyzer struct {
	vocab types.Vocabulary
}

// New returns an Analyzer over the given vocabulary.
func New(vocab types.Vocabulary) *Analyzer {
	return &Analyzer{vocab: vocab}
}

// Vocabulary returns the vocabulary the analyzer was built with.
func (a *Analyzer) Vocabulary() types.Vocabulary {
	return a.vocab
}

// Extract computes a fresh FeatureSet for the given text. It never fails:
// empty or malformed text produces all-zero features.
func (a *Analyzer) Extract(text string, opts Options) *types.FeatureSet {
	lower := strings.ToLower(text)
	fs := &types.FeatureSet{
		SectionsPresent: make(map[string]bool, len(presenceSections)),
	}

	words := strings.Fields(text)
	fs.WordCount = len(words)
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			fs.SentenceCount++
		}
	}
	fs.AvgWordsPerSentence = float64(fs.WordCount) / float64(max(fs.SentenceCount, 1))

	a.extractBullets(text, fs)
	a.extractKeywords(lower, fs)
	a.extractFormatting(text, fs)
	a.extractImpact(text, fs)

	for _, sec := range presenceSections {
		fs.SectionsPresent[sec.name] = sec.pattern.MatchString(text)
	}
	fs.SectionsDetected = DetectSections(text)

	if opts.TargetRole != "" {
		fs.TargetRole = opts.TargetRole
		fs.RoleRelevant, fs.RoleMatched = a.matchRole(lower, opts.TargetRole)
	}
	if opts.JobDescription != "" {
		fs.JobKeywords = a.ExtractJobKeywords(opts.JobDescription)
		for _, kw := range fs.JobKeywords {
			if strings.Contains(lower, kw) {
				fs.JobKeywordsMatched = append(fs.JobKeywordsMatched, kw)
			}
		}
	}

	return fs
}

func (a *Analyzer) extractBullets(text string, fs *types.FeatureSet) {
	bullets := bulletLineRe.FindAllString(text, -1)
	fs.TotalBullets = len(bullets)

	totalWords := 0
	for _, bullet := range bullets {
		if quantBulletRe.MatchString(bullet) {
			fs.QuantifiedBullets++
			if len(fs.QuantifiedExamples) < 5 {
				fs.QuantifiedExamples = append(fs.QuantifiedExamples, strings.TrimSpace(bullet))
			}
		}
		n := len(strings.Fields(bullet))
		totalWords += n
		switch {
		case n >= 12:
			fs.DetailedBullets++
		case n <= 4:
			fs.WeakBullets++
		}
	}

	// Zero bullets is defined as 0% quantification, not undefined.
	fs.QuantificationRate = float64(fs.QuantifiedBullets) / float64(max(fs.TotalBullets, 1)) * 100
	fs.AvgBulletWords = float64(totalWords) / float64(max(fs.TotalBullets, 1))
	fs.QuantifiedMentions = len(quantMentionRe.FindAllString(text, -1))
}

func (a *Analyzer) extractKeywords(lower string, fs *types.FeatureSet) {
	fs.PowerVerbCount = countPresent(lower, a.vocab.PowerVerbs)
	fs.TechnicalSkillsFound = filterPresent(lower, a.vocab.TechnicalSkills)
	fs.SoftSkillsFound = filterPresent(lower, a.vocab.SoftSkills)
	fs.Tier1Count = countPresent(lower, a.vocab.Tier1Verbs)
	fs.Tier2Count = countPresent(lower, a.vocab.Tier2Verbs)
	fs.Tier3Count = countPresent(lower, a.vocab.Tier3Verbs)
	fs.LeadershipTerms = filterPresent(lower, a.vocab.LeadershipIndicators)
	fs.HardKeywordsFound = filterPresent(lower, a.vocab.HardKeywords)
	fs.SoftKeywordsFound = filterPresent(lower, a.vocab.SoftKeywords)
	fs.UnprofessionalCount = countPresent(lower, a.vocab.UnprofessionalTerms)
	fs.TeamSizeMentions = len(teamSizeRe.FindAllString(lower, -1))
	fs.BudgetMentions = len(budgetRe.FindAllString(lower, -1))
}

func (a *Analyzer) extractFormatting(text string, fs *types.FeatureSet) {
	fs.TabsFound = strings.Contains(text, "\t")
	fs.SpecialCharCount = len(specialCharRe.FindAllString(text, -1))
	fs.EmailFound = emailRe.MatchString(text)
	fs.PhoneFound = phoneRe.MatchString(text)

	glyphs := make(map[string]struct{})
	for _, m := range bulletGlyphRe.FindAllStringSubmatch(text, -1) {
		glyphs[m[1]] = struct{}{}
	}
	fs.BulletGlyphCount = len(glyphs)

	dates := make(map[string]struct{})
	for _, m := range dateRe.FindAllString(text, -1) {
		dates[m] = struct{}{}
	}
	fs.DateFormatCount = len(dates)
}

func (a *Analyzer) extractImpact(text string, fs *types.FeatureSet) {
	for _, re := range impactRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			fs.ImpactStatements = append(fs.ImpactStatements, strings.Join(m[1:], " "))
		}
	}
	for _, stmt := range fs.ImpactStatements {
		s := strings.ToLower(stmt)
		if strings.Contains(s, "million") || strings.Contains(s, "$") || strings.Contains(s, "%") {
			fs.HighImpactStatements++
		}
	}
}

// matchRole resolves the keyword set relevant to a target role and the subset
// found in the document. Unknown roles fall back to the generic vocabulary.
func (a *Analyzer) matchRole(lower, targetRole string) (relevant, matched []string) {
	target := strings.ToLower(targetRole)
	for role, keywords := range a.vocab.RoleKeywords {
		if strings.Contains(target, role) {
			relevant = append(relevant, keywords...)
		}
	}
	sort.Strings(relevant)

	if len(relevant) == 0 {
		relevant = append(relevant, a.vocab.TechnicalSkills...)
		relevant = append(relevant, a.vocab.SoftSkills...)
	}

	for _, kw := range relevant {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return relevant, matched
}

// ExtractJobKeywords returns the deduplicated requirement-keyword set for a
// job description: configured technical/soft vocabulary terms present in the
// description plus a short technical allow-list.
func (a *Analyzer) ExtractJobKeywords(jobDescription string) []string {
	jdLower := strings.ToLower(jobDescription)

	seen := make(map[string]struct{})
	vocab := append(append([]string{}, a.vocab.TechnicalSkills...), a.vocab.SoftSkills...)
	vocab = append(vocab, jdTechTerms...)
	for _, kw := range vocab {
		if strings.Contains(jdLower, kw) {
			seen[kw] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// DetectSections returns the canonical sections present in the text, in
// canonical order.
func DetectSections(text string) []string {
	lower := strings.ToLower(text)
	var detected []string
	for _, sec := range canonicalSections {
		if sec.pattern.MatchString(lower) {
			detected = append(detected, sec.name)
		}
	}
	return detected
}

// MissingSections returns the canonical-order difference between the wanted
// section names and the detected set.
func MissingSections(wanted, detected []string) []string {
	have := make(map[string]struct{}, len(detected))
	for _, s := range detected {
		have[s] = struct{}{}
	}
	var missing []string
	for _, s := range wanted {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

func countPresent(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

func filterPresent(lower string, terms []string) []string {
	var found []string
	for _, t := range terms {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}
