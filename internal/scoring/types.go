package scoring

// ExperienceInfo carries the candidate's total years of experience.
type ExperienceInfo struct {
	Years float64 `json:"years"`
}

// EducationInfo carries the candidate's highest education level as free text.
type EducationInfo struct {
	Level string `json:"level"`
}

// ResumeInput is the candidate-side view consumed by the engine. It is a
// value object produced fresh per call by the parsing pipeline; every
// field is optional and absent fields degrade to their weakest value.
type ResumeInput struct {
	Skills         []string        `json:"skills,omitempty"`
	Experience     *ExperienceInfo `json:"experience,omitempty"`
	Education      *EducationInfo  `json:"education,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Projects       []string        `json:"projects,omitempty"`
	Publications   []string        `json:"publications,omitempty"`
	Awards         []string        `json:"awards,omitempty"`
}

// JobInput is the requisition-side view consumed by the engine.
// PreferredSkills is accepted but not consulted by any scorer; it is
// reserved until product intent for preferred-skill credit is settled.
type JobInput struct {
	RequiredSkills          []string `json:"requiredSkills,omitempty"`
	PreferredSkills         []string `json:"preferredSkills,omitempty"`
	RequiredExperienceYears float64  `json:"requiredExperienceYears"`
	RequiredEducationLevel  string   `json:"requiredEducationLevel"`
	Title                   string   `json:"title,omitempty"`
	Description             string   `json:"description,omitempty"`
}

// WeightStrategy is a partial override of the default component weights.
// Nil fields fall back to DefaultWeights independently.
type WeightStrategy struct {
	Skill        *float64 `json:"skill,omitempty"`
	Experience   *float64 `json:"experience,omitempty"`
	Education    *float64 `json:"education,omitempty"`
	Completeness *float64 `json:"completeness,omitempty"`
	Bonus        *float64 `json:"bonus,omitempty"`
}

// ScoringContext carries call metadata. The identifiers are opaque to the
// engine; they exist for cache-key derivation and traceability in the
// layers around it.
type ScoringContext struct {
	TenantID string          `json:"tenantId"`
	JobID    string          `json:"jobId"`
	ResumeID string          `json:"resumeId"`
	Weights  *WeightStrategy `json:"weights,omitempty"`
}

// ScoreBreakdown holds the five independent component scores, each an
// integer in [0,100].
type ScoreBreakdown struct {
	SkillScore        int `json:"skillScore"`
	ExperienceScore   int `json:"experienceScore"`
	EducationScore    int `json:"educationScore"`
	CompletenessScore int `json:"completenessScore"`
	BonusScore        int `json:"bonusScore"`
}

// ScoringMetadata is initialized to fixed placeholders by the engine.
// ProcessingTimeMs and CacheHit are overwritten by the service layer.
type ScoringMetadata struct {
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	Version          string `json:"version"`
	CacheHit         bool   `json:"cacheHit"`
}

// ScoringResult is the engine's sole output.
type ScoringResult struct {
	Score           int             `json:"score"`
	Breakdown       ScoreBreakdown  `json:"breakdown"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	MissingKeywords []string        `json:"missingKeywords"`
	Suggestions     []string        `json:"suggestions"`
	Metadata        ScoringMetadata `json:"metadata"`
}

// SkillResult is the outcome of the skill component: the 0-100 score plus
// the matched and missing keyword lists, which are disjoint by construction.
type SkillResult struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}
