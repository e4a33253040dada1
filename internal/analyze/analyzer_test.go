package analyze

import (
	"reflect"
	"testing"

	"atscan/internal/types"
)

const sampleCV = `John Smith
john.smith@example.com | 555-123-4567

Summary
Senior DevOps engineer with 8 years of experience.

Experience
- Architected CI/CD pipelines with Jenkins and Docker, reduced deployment time by 40%
- Led team of 6 engineers across two regions
- Managed AWS infrastructure with Terraform
- Helped with releases

Skills
Python, Docker, Kubernetes, AWS, Terraform, Leadership, Communication
`

func TestExtractBullets(t *testing.T) {
	a := New(types.DefaultVocabulary())
	fs := a.Extract(sampleCV, Options{})

	if fs.TotalBullets != 4 {
		t.Errorf("TotalBullets = %d, want 4", fs.TotalBullets)
	}
	// Bullets with digits, percents or team sizes count as quantified.
	if fs.QuantifiedBullets != 2 {
		t.Errorf("QuantifiedBullets = %d, want 2", fs.QuantifiedBullets)
	}
	if fs.QuantificationRate != 50 {
		t.Errorf("QuantificationRate = %v, want 50", fs.QuantificationRate)
	}
	// "Helped with releases" has 3 words and counts as weak.
	if fs.WeakBullets != 1 {
		t.Errorf("WeakBullets = %d, want 1", fs.WeakBullets)
	}
}

func TestExtractEmptyText(t *testing.T) {
	a := New(types.DefaultVocabulary())
	fs := a.Extract("", Options{})

	if fs.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", fs.WordCount)
	}
	if fs.TotalBullets != 0 {
		t.Errorf("TotalBullets = %d, want 0", fs.TotalBullets)
	}
	// Zero bullets is 0% quantification, not NaN.
	if fs.QuantificationRate != 0 {
		t.Errorf("QuantificationRate = %v, want 0", fs.QuantificationRate)
	}
}

func TestExtractContactInfo(t *testing.T) {
	a := New(types.DefaultVocabulary())

	tests := []struct {
		name      string
		text      string
		wantEmail bool
		wantPhone bool
	}{
		{"both present", "jane@example.com 555-123-4567", true, true},
		{"email only", "reach me at jane@example.com", true, false},
		{"phone only", "call 555.123.4567", false, true},
		{"neither", "no contact details here", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := a.Extract(tt.text, Options{})
			if fs.EmailFound != tt.wantEmail {
				t.Errorf("EmailFound = %v, want %v", fs.EmailFound, tt.wantEmail)
			}
			if fs.PhoneFound != tt.wantPhone {
				t.Errorf("PhoneFound = %v, want %v", fs.PhoneFound, tt.wantPhone)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	a := New(types.DefaultVocabulary())
	fs := a.Extract(sampleCV, Options{})

	if fs.PowerVerbCount == 0 {
		t.Error("expected power verbs in sample CV")
	}
	wantSkills := map[string]bool{"python": true, "docker": true, "kubernetes": true, "aws": true, "terraform": true}
	for _, skill := range fs.TechnicalSkillsFound {
		delete(wantSkills, skill)
	}
	if len(wantSkills) != 0 {
		t.Errorf("technical skills not detected: %v", wantSkills)
	}
	// "architected" is tier 1, "led"/"managed" tier 2, "helped" tier 3.
	if fs.Tier1Count == 0 || fs.Tier2Count == 0 || fs.Tier3Count == 0 {
		t.Errorf("verb tiers = %d/%d/%d, want all non-zero", fs.Tier1Count, fs.Tier2Count, fs.Tier3Count)
	}
	if fs.TeamSizeMentions != 1 {
		t.Errorf("TeamSizeMentions = %d, want 1", fs.TeamSizeMentions)
	}
}

func TestDetectSections(t *testing.T) {
	got := DetectSections(sampleCV)
	want := []string{"summary", "experience", "skills"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectSections = %v, want %v", got, want)
	}
}

func TestMissingSections(t *testing.T) {
	tests := []struct {
		name     string
		wanted   []string
		detected []string
		want     []string
	}{
		{"nothing missing", []string{"summary", "skills"}, []string{"summary", "skills"}, nil},
		{"one missing", []string{"summary", "education", "skills"}, []string{"summary", "skills"}, []string{"education"}},
		{"all missing", []string{"summary"}, nil, []string{"summary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingSections(tt.wanted, tt.detected)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingSections = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractJobKeywords(t *testing.T) {
	a := New(types.DefaultVocabulary())

	jd := "We need a DevOps engineer with Python, Docker and AWS. Strong communication required."
	got := a.ExtractJobKeywords(jd)

	want := map[string]bool{"python": true, "docker": true, "aws": true, "communication": true}
	for _, kw := range got {
		delete(want, kw)
	}
	if len(want) != 0 {
		t.Errorf("keywords not extracted: %v (got %v)", want, got)
	}

	// Output is sorted and deduplicated.
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("keywords not sorted or not unique: %v", got)
			break
		}
	}
}

func TestExtractWithJobDescription(t *testing.T) {
	a := New(types.DefaultVocabulary())
	fs := a.Extract(sampleCV, Options{JobDescription: "Looking for Docker and Kubernetes experience, Elixir a plus"})

	if len(fs.JobKeywords) == 0 {
		t.Fatal("expected job keywords to be extracted")
	}
	matched := map[string]bool{}
	for _, kw := range fs.JobKeywordsMatched {
		matched[kw] = true
	}
	if !matched["docker"] || !matched["kubernetes"] {
		t.Errorf("JobKeywordsMatched = %v, want docker and kubernetes", fs.JobKeywordsMatched)
	}
}

func TestMatchRole(t *testing.T) {
	a := New(types.DefaultVocabulary())

	t.Run("known role uses role keywords", func(t *testing.T) {
		fs := a.Extract(sampleCV, Options{TargetRole: "devops engineer"})
		if len(fs.RoleRelevant) == 0 {
			t.Fatal("expected relevant keywords for devops role")
		}
		found := map[string]bool{}
		for _, kw := range fs.RoleMatched {
			found[kw] = true
		}
		if !found["docker"] || !found["terraform"] {
			t.Errorf("RoleMatched = %v, want docker and terraform", fs.RoleMatched)
		}
	})

	t.Run("unknown role falls back to generic vocabulary", func(t *testing.T) {
		fs := a.Extract(sampleCV, Options{TargetRole: "astronaut"})
		vocab := types.DefaultVocabulary()
		if len(fs.RoleRelevant) != len(vocab.TechnicalSkills)+len(vocab.SoftSkills) {
			t.Errorf("RoleRelevant length = %d, want generic vocabulary size %d",
				len(fs.RoleRelevant), len(vocab.TechnicalSkills)+len(vocab.SoftSkills))
		}
	})
}

func TestSummarize(t *testing.T) {
	a := New(types.DefaultVocabulary())
	sum := a.Summarize(sampleCV)

	if sum.TotalBullets != 4 {
		t.Errorf("TotalBullets = %d, want 4", sum.TotalBullets)
	}
	// The 40% and "team of 6" bullets contain digits and count as quantified.
	if sum.QuantifiedBullets != 2 {
		t.Errorf("QuantifiedBullets = %d, want 2", sum.QuantifiedBullets)
	}
	if sum.PowerVerbCount == 0 {
		t.Error("expected signature verbs in sample CV")
	}
	if !reflect.DeepEqual(sum.SectionsDetected, []string{"summary", "experience", "skills"}) {
		t.Errorf("SectionsDetected = %v", sum.SectionsDetected)
	}
}

func TestExtractJobRequirements(t *testing.T) {
	a := New(types.DefaultVocabulary())

	jd := `Senior DevOps Engineer
You will own our Kubernetes platform.
Responsible for CI/CD tooling in Python.
We are a collaborative, fast-paced team.`

	req := a.ExtractJobRequirements(jd)

	if req.ExperienceYears != 5 {
		t.Errorf("ExperienceYears = %d, want 5 for a senior role", req.ExperienceYears)
	}
	skills := map[string]bool{}
	for _, s := range req.RequiredSkills {
		skills[s] = true
	}
	if !skills["python"] || !skills["kubernetes"] {
		t.Errorf("RequiredSkills = %v, want python and kubernetes", req.RequiredSkills)
	}
	if len(req.KeyResponsibilities) != 2 {
		t.Errorf("KeyResponsibilities = %v, want 2 lines", req.KeyResponsibilities)
	}
	if len(req.CultureKeywords) == 0 {
		t.Errorf("CultureKeywords = %v, want collaborative and fast-paced", req.CultureKeywords)
	}

	t.Run("junior band", func(t *testing.T) {
		req := a.ExtractJobRequirements("Junior developer, entry level")
		if req.ExperienceYears != 1 {
			t.Errorf("ExperienceYears = %d, want 1", req.ExperienceYears)
		}
	})
}

func TestExtractIsDeterministic(t *testing.T) {
	a := New(types.DefaultVocabulary())
	opts := Options{JobDescription: "Docker and AWS required", TargetRole: "devops"}

	first := a.Extract(sampleCV, opts)
	second := a.Extract(sampleCV, opts)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different feature sets")
	}
}
