package types

// DefaultVocabulary returns the built-in keyword tables. Configuration may
// override any of these lists; the scoring pipeline itself never hardcodes
// them.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PowerVerbs: []string{
			"achieved", "analyzed", "architected", "automated", "built", "collaborated",
			"created", "delivered", "designed", "developed", "enhanced", "executed",
			"implemented", "improved", "increased", "led", "managed", "optimized",
			"orchestrated", "produced", "reduced", "resolved", "spearheaded", "streamlined",
		},
		TechnicalSkills: []string{
			"python", "java", "javascript", "docker", "kubernetes", "aws", "azure",
			"devops", "ci/cd", "jenkins", "git", "linux", "sql", "nosql", "mongodb",
			"postgresql", "redis", "elasticsearch", "kafka", "microservices", "api",
			"rest", "graphql", "terraform", "ansible", "prometheus", "grafana",
		},
		SoftSkills: []string{
			"leadership", "communication", "teamwork", "problem-solving", "analytical",
			"critical thinking", "adaptability", "mentoring", "collaboration",
			"project management", "stakeholder management", "cross-functional",
		},
		Tier1Verbs: []string{
			"architected", "orchestrated", "spearheaded", "pioneered", "transformed",
			"revolutionized", "optimized", "streamlined", "automated", "scaled",
		},
		Tier2Verbs: []string{
			"developed", "implemented", "created", "built", "designed", "managed",
			"led", "delivered", "executed", "coordinated",
		},
		Tier3Verbs: []string{
			"assisted", "helped", "participated", "supported", "contributed",
			"worked", "involved", "collaborated", "engaged", "handled",
		},
		SignatureVerbs: []string{
			"architected", "orchestrated", "spearheaded", "optimized", "transformed",
		},
		LeadershipIndicators: []string{
			"led team", "managed", "supervised", "mentored", "coached",
			"directed", "oversaw", "guided", "trained", "developed team",
		},
		ImpactIndicators: []string{
			"reduced", "increased", "improved", "enhanced", "optimized",
			"decreased", "accelerated", "generated", "saved", "achieved",
		},
		UnprofessionalTerms: []string{
			"awesome", "cool", "stuff", "things", "guys",
		},
		RoleKeywords: map[string][]string{
			"devops":    {"docker", "kubernetes", "jenkins", "terraform", "ansible", "aws", "ci/cd"},
			"developer": {"python", "java", "javascript", "react", "node.js", "api", "database"},
			"data":      {"python", "sql", "machine learning", "pandas", "numpy", "visualization"},
			"manager":   {"leadership", "team", "budget", "strategy", "stakeholder", "project"},
			"architect": {"design", "architecture", "system", "scalability", "microservices"},
		},
		CultureKeywords: []string{
			"collaborative", "innovative", "agile", "fast-paced", "team-oriented", "entrepreneurial",
		},
		HardKeywords: []string{
			"aws", "ec2", "ecs", "eks", "lambda", "rds", "vpc", "iam", "cloudwatch", "s3",
			"kubernetes", "container", "microservices", "cluster management",
			"terraform", "cloudformation", "jenkins", "gitlab ci", "azure devops", "xl release",
			"python", "bash", "powershell", "groovy",
			"monitoring", "logging", "alerting", "prometheus", "grafana", "loki", "datadog", "observability",
			"security", "iam policies", "security groups", "vpc configurations", "pci", "gdpr", "iso 27001",
			"automation", "cost optimisation", "budgets", "mentoring", "documentation",
		},
		SoftKeywords: []string{
			"collaboration", "troubleshooting", "communication", "stakeholder", "leadership",
			"mentoring", "documentation", "teamwork", "problem-solving",
		},
		UKSpellings: [][]string{
			{"optimize", "optimise"},
			{"optimization", "optimisation"},
			{"program", "programme"},
		},
		RedFlags: []RedFlagRule{
			{Pattern: `\bexpert\b.*\bpython\b`, Message: "Avoid overstating coding proficiency; use 'basic scripting in Python'."},
			{Pattern: `\bexpert\b.*\bansible\b`, Message: "Use 'basic exposure to Ansible' if true."},
			{Pattern: `\bowned\b.*\beks\b`, Message: "If EKS is limited, phrase as 'working knowledge; labs and limited production-adjacent use'."},
		},
		Weights: KeywordWeights{Hard: 0.7, Soft: 0.3},
	}
}

// MergeVocabularyDefaults fills any unset vocabulary list with its built-in
// default. A configured list replaces the default wholesale.
func MergeVocabularyDefaults(v Vocabulary) Vocabulary {
	defaults := DefaultVocabulary()

	if len(v.PowerVerbs) == 0 {
		v.PowerVerbs = defaults.PowerVerbs
	}
	if len(v.TechnicalSkills) == 0 {
		v.TechnicalSkills = defaults.TechnicalSkills
	}
	if len(v.SoftSkills) == 0 {
		v.SoftSkills = defaults.SoftSkills
	}
	if len(v.Tier1Verbs) == 0 {
		v.Tier1Verbs = defaults.Tier1Verbs
	}
	if len(v.Tier2Verbs) == 0 {
		v.Tier2Verbs = defaults.Tier2Verbs
	}
	if len(v.Tier3Verbs) == 0 {
		v.Tier3Verbs = defaults.Tier3Verbs
	}
	if len(v.SignatureVerbs) == 0 {
		v.SignatureVerbs = defaults.SignatureVerbs
	}
	if len(v.LeadershipIndicators) == 0 {
		v.LeadershipIndicators = defaults.LeadershipIndicators
	}
	if len(v.ImpactIndicators) == 0 {
		v.ImpactIndicators = defaults.ImpactIndicators
	}
	if len(v.UnprofessionalTerms) == 0 {
		v.UnprofessionalTerms = defaults.UnprofessionalTerms
	}
	if len(v.RoleKeywords) == 0 {
		v.RoleKeywords = defaults.RoleKeywords
	}
	if len(v.CultureKeywords) == 0 {
		v.CultureKeywords = defaults.CultureKeywords
	}
	if len(v.HardKeywords) == 0 {
		v.HardKeywords = defaults.HardKeywords
	}
	if len(v.SoftKeywords) == 0 {
		v.SoftKeywords = defaults.SoftKeywords
	}
	if len(v.UKSpellings) == 0 {
		v.UKSpellings = defaults.UKSpellings
	}
	if len(v.RedFlags) == 0 {
		v.RedFlags = defaults.RedFlags
	}
	if v.Weights.Hard == 0 && v.Weights.Soft == 0 {
		v.Weights = defaults.Weights
	}
	return v
}
