package scoring

import (
	"math"
	"strings"
)

// ScoreResumeAgainstJob is the engine's sole public entry point. It runs
// the five component scorers, aggregates them under the effective weights,
// and assembles a complete result.
//
// It is a total function: it never panics, never blocks, and never returns
// an error. Malformed or missing input collapses to ZeroResult, making
// "genuinely zero match" and "unusable input" indistinguishable here on
// purpose; callers that need the distinction must validate before scoring.
func ScoreResumeAgainstJob(resume *ResumeInput, job *JobInput, ctx ScoringContext) (result ScoringResult) {
	// Backstop for surprises in defensive code paths. The nil guards
	// below are the intentional zero-result branch; this only catches
	// what they miss.
	defer func() {
		if r := recover(); r != nil {
			result = ZeroResult()
		}
	}()

	if resume == nil || job == nil {
		return ZeroResult()
	}

	weights := ResolveWeights(ctx.Weights)

	resumeSkills := prepareSkills(resume.Skills)
	requiredSkills := prepareSkills(job.RequiredSkills)

	skillResult := ScoreSkills(resumeSkills, requiredSkills, weights.Skill)

	resumeYears := 0.0
	if resume.Experience != nil {
		resumeYears = resume.Experience.Years
	}
	experienceScore := ScoreExperience(resumeYears, job.RequiredExperienceYears, weights.Experience)

	resumeLevel := LevelNone
	if resume.Education != nil {
		resumeLevel = resume.Education.Level
	}
	educationScore := ScoreEducation(resumeLevel, job.RequiredEducationLevel, weights.Education)

	completenessScore := ScoreCompleteness(resume, weights.Completeness)
	bonusScore := ScoreBonus(resume, weights.Bonus)

	breakdown := ScoreBreakdown{
		SkillScore:        skillResult.Score,
		ExperienceScore:   experienceScore,
		EducationScore:    educationScore,
		CompletenessScore: completenessScore,
		BonusScore:        bonusScore,
	}

	weightedComponents := []float64{
		float64(breakdown.SkillScore) * weights.Skill,
		float64(breakdown.ExperienceScore) * weights.Experience,
		float64(breakdown.EducationScore) * weights.Education,
		float64(breakdown.CompletenessScore) * weights.Completeness,
		float64(breakdown.BonusScore) * weights.Bonus,
	}

	return ScoringResult{
		Score:           ComputeFinalScore(weightedComponents),
		Breakdown:       breakdown,
		MatchedKeywords: skillResult.Matched,
		MissingKeywords: skillResult.Missing,
		Suggestions:     BuildSuggestions(breakdown, skillResult.Missing, weights),
		Metadata:        defaultMetadata(),
	}
}

// ZeroResult is the well-typed fallback returned when no meaningful score
// can be produced.
func ZeroResult() ScoringResult {
	return ScoringResult{
		Score:           0,
		Breakdown:       ScoreBreakdown{},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Suggestions:     []string{},
		Metadata:        defaultMetadata(),
	}
}

// defaultMetadata returns the fixed placeholder metadata. The surrounding
// service layer overwrites ProcessingTimeMs and CacheHit.
func defaultMetadata() ScoringMetadata {
	return ScoringMetadata{
		ProcessingTimeMs: 0,
		Version:          ScoringVersion,
		CacheHit:         false,
	}
}

// ResolveWeights applies a partial override on top of DefaultWeights.
// Each component falls back independently; the result is not re-normalized
// to sum to 1.0.
func ResolveWeights(overrides *WeightStrategy) Weights {
	weights := DefaultWeights
	if overrides == nil {
		return weights
	}
	if overrides.Skill != nil {
		weights.Skill = *overrides.Skill
	}
	if overrides.Experience != nil {
		weights.Experience = *overrides.Experience
	}
	if overrides.Education != nil {
		weights.Education = *overrides.Education
	}
	if overrides.Completeness != nil {
		weights.Completeness = *overrides.Completeness
	}
	if overrides.Bonus != nil {
		weights.Bonus = *overrides.Bonus
	}
	return weights
}

// prepareSkills truncates each entry to the payload byte budget, then
// normalizes, keeping at most MaxKeywords entries in original order.
func prepareSkills(raw []string) []string {
	count := len(raw)
	if count > MaxKeywords {
		count = MaxKeywords
	}

	prepared := make([]string, 0, count)
	for i := 0; i < count; i++ {
		prepared = append(prepared, NormalizeKeyword(SafeTruncate(raw[i], MaxPayloadBytes)))
	}
	return prepared
}

// ScoreSkills computes the overlap between resume skills and required
// skills. An empty requirement list scores 0 with empty matched/missing:
// absence of requirements is not treated as full credit. The weight
// parameter is carried for signature symmetry with the other scorers and
// is not consulted.
func ScoreSkills(resumeSkills, requiredSkills []string, weight float64) SkillResult {
	_ = weight

	if len(requiredSkills) == 0 {
		return SkillResult{Score: 0, Matched: []string{}, Missing: []string{}}
	}

	resumeSet := BuildKeywordSet(resumeSkills, MaxKeywords)
	requiredSet := BuildKeywordSet(requiredSkills, MaxKeywords)

	matched := IntersectSets(resumeSet, requiredSet)
	missing := DiffSets(requiredSet, resumeSet)

	totalRequired := requiredSet.Len()
	if totalRequired == 0 {
		totalRequired = 1
	}

	ratio := float64(len(matched)) / float64(totalRequired)

	return SkillResult{
		Score:   roundHalfUp(ratio * 100),
		Matched: matched,
		Missing: missing,
	}
}

// ScoreExperience grades candidate years against the requirement in
// tiers, first match wins. No requirement at all is full credit.
func ScoreExperience(resumeYears, requiredYears float64, weight float64) int {
	_ = weight

	if requiredYears <= 0 {
		return 100
	}

	safeYears := resumeYears
	if math.IsNaN(safeYears) || math.IsInf(safeYears, 0) || safeYears < 0 {
		safeYears = 0
	}

	switch {
	case safeYears >= requiredYears:
		return 100
	case safeYears >= requiredYears*0.75:
		return 80
	case safeYears >= requiredYears-1:
		return 60
	}
	return 0
}

// ScoreEducation compares normalized education levels ordinally. Binary:
// meeting or exceeding the requirement is 100, anything less is 0.
func ScoreEducation(resumeLevel, requiredLevel string, weight float64) int {
	_ = weight

	resumeOrdinal := educationRank(NormalizeEducationLevel(resumeLevel))
	requiredOrdinal := educationRank(NormalizeEducationLevel(requiredLevel))

	if resumeOrdinal >= requiredOrdinal {
		return 100
	}
	return 0
}

// ScoreCompleteness counts how many of the four required resume sections
// are present. A section is present when it is a non-absent list (even an
// empty one), a non-nil object, or a non-blank string. A resume that
// declares "skills": [] has the section; one that omits skills does not.
func ScoreCompleteness(resume *ResumeInput, weight float64) int {
	_ = weight

	if resume == nil {
		return 0
	}

	present := 0
	if resume.Skills != nil {
		present++
	}
	if resume.Experience != nil {
		present++
	}
	if resume.Education != nil {
		present++
	}
	if strings.TrimSpace(resume.Summary) != "" {
		present++
	}

	ratio := float64(present) / float64(len(requiredResumeSections))
	return roundHalfUp(ratio * 100)
}

// ScoreBonus grants an equal quarter share of MaxTotalBonus for each
// non-empty bonus section, caps the sum at MaxTotalBonus, and rescales to
// a 0-100 score. Any single item is worth the same as any other.
func ScoreBonus(resume *ResumeInput, weight float64) int {
	_ = weight

	if resume == nil {
		return 0
	}

	share := MaxTotalBonus / float64(len(bonusItems))
	fraction := 0.0
	for _, section := range [][]string{resume.Certifications, resume.Projects, resume.Publications, resume.Awards} {
		if len(section) > 0 {
			fraction += share
		}
	}

	if fraction > MaxTotalBonus {
		fraction = MaxTotalBonus
	}

	return roundHalfUp(fraction / MaxTotalBonus * 100)
}

// ComputeFinalScore sums weighted component values, treating non-finite
// entries as 0, rounds half up, and clamps into [0,100].
func ComputeFinalScore(weightedComponents []float64) int {
	sum := 0.0
	for _, v := range weightedComponents {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
	}

	rounded := roundHalfUp(sum)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// roundHalfUp rounds to the nearest integer with ties going toward
// positive infinity (0.5 becomes 1, -0.5 becomes 0).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
