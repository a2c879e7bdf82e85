package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSkills_AllMatched(t *testing.T) {
	result := ScoreSkills([]string{"js", "ts"}, []string{"js", "ts"}, 0.4)

	assert.Equal(t, 100, result.Score)
	assert.ElementsMatch(t, []string{"js", "ts"}, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestScoreSkills_NoneMatched(t *testing.T) {
	result := ScoreSkills([]string{"go"}, []string{"js", "ts"}, 0.4)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Matched)
	assert.ElementsMatch(t, []string{"js", "ts"}, result.Missing)
}

func TestScoreSkills_PartialMatch(t *testing.T) {
	result := ScoreSkills([]string{"js"}, []string{"js", "ts"}, 0.4)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, []string{"js"}, result.Matched)
	assert.Equal(t, []string{"ts"}, result.Missing)
}

func TestScoreSkills_CaseInsensitive(t *testing.T) {
	result := ScoreSkills([]string{"JavaScript"}, []string{"javascript"}, 0.4)

	assert.Equal(t, 100, result.Score)
}

func TestScoreSkills_EmptyRequired(t *testing.T) {
	// Absence of requirements scores zero, not full credit. Asymmetric
	// with experience scoring, preserved intentionally.
	result := ScoreSkills([]string{"js"}, []string{}, 0.4)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestScoreSkills_MatchedAndMissingDisjoint(t *testing.T) {
	result := ScoreSkills([]string{"go", "js", "sql"}, []string{"js", "ts", "sql", "rust"}, 0.4)

	seen := make(map[string]bool)
	for _, k := range result.Matched {
		seen[k] = true
	}
	for _, k := range result.Missing {
		assert.False(t, seen[k], "keyword %q in both matched and missing", k)
	}
}

func TestScoreSkills_CapsAtMaxKeywords(t *testing.T) {
	resumeSkills := make([]string, MaxKeywords+10)
	requiredSkills := make([]string, MaxKeywords+10)
	for i := range resumeSkills {
		resumeSkills[i] = fmt.Sprintf("skill-%d", i)
		requiredSkills[i] = fmt.Sprintf("skill-%d", i)
	}

	result := ScoreSkills(resumeSkills, requiredSkills, 0.4)
	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Matched, MaxKeywords)
}

func TestScoreExperience_Tiers(t *testing.T) {
	tests := []struct {
		name          string
		resumeYears   float64
		requiredYears float64
		want          int
	}{
		{"meets requirement", 5, 5, 100},
		{"exceeds requirement", 6, 5, 100},
		{"within one year gap", 2, 3, 60},
		{"three quarters of requirement", 6, 8, 80},
		{"far below requirement", 1, 5, 0},
		{"zero required years", 0, 0, 100},
		{"negative required years", 3, -1, 100},
		{"negative resume years treated as zero", -2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreExperience(tt.resumeYears, tt.requiredYears, 0.2))
		})
	}
}

func TestScoreExperience_NonFiniteYears(t *testing.T) {
	// Non-finite years collapse to zero before the tiers run.
	assert.Equal(t, 0, ScoreExperience(math.NaN(), 5, 0.2))
	assert.Equal(t, 0, ScoreExperience(math.Inf(1), 5, 0.2))
	assert.Equal(t, 100, ScoreExperience(math.Inf(1), 0, 0.2))
}

func TestScoreEducation_Binary(t *testing.T) {
	assert.Equal(t, 100, ScoreEducation("bachelor", "associate", 0.2))
	assert.Equal(t, 100, ScoreEducation("master", "bachelor", 0.2))
	assert.Equal(t, 0, ScoreEducation("associate", "bachelor", 0.2))
}

func TestScoreEducation_UnknownLevelIsNone(t *testing.T) {
	assert.Equal(t, 0, ScoreEducation("unknown-level", "associate", 0.2))
	assert.Equal(t, 100, ScoreEducation("unknown-level", "gibberish", 0.2))
}

func TestScoreCompleteness(t *testing.T) {
	full := &ResumeInput{
		Skills:     []string{"go"},
		Experience: &ExperienceInfo{Years: 1},
		Education:  &EducationInfo{Level: "bachelor"},
		Summary:    "summary",
	}
	assert.Equal(t, 100, ScoreCompleteness(full, 0.1))

	missingSummary := &ResumeInput{
		Skills:     []string{"go"},
		Experience: &ExperienceInfo{Years: 1},
		Education:  &EducationInfo{Level: "bachelor"},
		Summary:    "   ",
	}
	assert.Equal(t, 75, ScoreCompleteness(missingSummary, 0.1))

	assert.Equal(t, 0, ScoreCompleteness(&ResumeInput{}, 0.1))
	assert.Equal(t, 0, ScoreCompleteness(nil, 0.1))
}

func TestScoreCompleteness_DeclaredEmptySkillsCountsPresent(t *testing.T) {
	// "skills": [] is a present section; an omitted skills field is not.
	declared := &ResumeInput{
		Skills:     []string{},
		Experience: &ExperienceInfo{Years: 1},
		Education:  &EducationInfo{Level: "bachelor"},
		Summary:    "summary",
	}
	assert.Equal(t, 100, ScoreCompleteness(declared, 0.1))

	omitted := &ResumeInput{
		Experience: &ExperienceInfo{Years: 1},
		Education:  &EducationInfo{Level: "bachelor"},
		Summary:    "summary",
	}
	assert.Equal(t, 75, ScoreCompleteness(omitted, 0.1))

	var decoded ResumeInput
	require.NoError(t, json.Unmarshal([]byte(`{"skills": [], "summary": "summary"}`), &decoded))
	assert.Equal(t, 50, ScoreCompleteness(&decoded, 0.1))
}

func TestScoreBonus_CappedAtHundred(t *testing.T) {
	all := &ResumeInput{
		Certifications: []string{"aws"},
		Projects:       []string{"p"},
		Publications:   []string{"pub"},
		Awards:         []string{"a"},
	}
	assert.Equal(t, 100, ScoreBonus(all, 0.1))

	one := &ResumeInput{Projects: []string{"p"}}
	assert.Equal(t, 25, ScoreBonus(one, 0.1))

	assert.Equal(t, 0, ScoreBonus(&ResumeInput{}, 0.1))
	assert.Equal(t, 0, ScoreBonus(nil, 0.1))
}

func TestComputeFinalScore(t *testing.T) {
	assert.Equal(t, 100, ComputeFinalScore([]float64{33.3, 33.3, 33.5}))
	assert.Equal(t, 0, ComputeFinalScore([]float64{-10}))
	assert.Equal(t, 100, ComputeFinalScore([]float64{120}))
	assert.Equal(t, 1, ComputeFinalScore([]float64{0.5}))
	assert.Equal(t, 0, ComputeFinalScore(nil))
}

func TestComputeFinalScore_NonFiniteTreatedAsZero(t *testing.T) {
	assert.Equal(t, 40, ComputeFinalScore([]float64{40, math.NaN(), math.Inf(1)}))
}

func TestResolveWeights_PartialOverride(t *testing.T) {
	skill := 0.7
	bonus := 0.0
	weights := ResolveWeights(&WeightStrategy{Skill: &skill, Bonus: &bonus})

	assert.Equal(t, 0.7, weights.Skill)
	assert.Equal(t, DefaultWeights.Experience, weights.Experience)
	assert.Equal(t, DefaultWeights.Education, weights.Education)
	assert.Equal(t, DefaultWeights.Completeness, weights.Completeness)
	assert.Equal(t, 0.0, weights.Bonus)

	assert.Equal(t, DefaultWeights, ResolveWeights(nil))
}

func TestScoreResumeAgainstJob_EndToEnd(t *testing.T) {
	resume := &ResumeInput{
		Skills:     []string{"JavaScript", "TypeScript"},
		Experience: &ExperienceInfo{Years: 3},
		Education:  &EducationInfo{Level: "bachelor"},
		Summary:    "summary",
	}
	job := &JobInput{
		RequiredSkills:          []string{"javascript", "typescript"},
		RequiredExperienceYears: 3,
		RequiredEducationLevel:  "bachelor",
	}

	result := ScoreResumeAgainstJob(resume, job, ScoringContext{TenantID: "t1", JobID: "j1", ResumeID: "r1"})

	assert.Equal(t, 100, result.Breakdown.SkillScore)
	assert.Equal(t, 100, result.Breakdown.ExperienceScore)
	assert.Equal(t, 100, result.Breakdown.EducationScore)
	assert.Equal(t, 100, result.Breakdown.CompletenessScore)
	assert.Equal(t, 0, result.Breakdown.BonusScore)

	// 100*0.4 + 100*0.2 + 100*0.2 + 100*0.1 + 0*0.1 = 90
	assert.Equal(t, 90, result.Score)
	assert.ElementsMatch(t, []string{"javascript", "typescript"}, result.MatchedKeywords)
	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, ScoringVersion, result.Metadata.Version)
	assert.False(t, result.Metadata.CacheHit)
	assert.EqualValues(t, 0, result.Metadata.ProcessingTimeMs)
}

func TestScoreResumeAgainstJob_Deterministic(t *testing.T) {
	resume := &ResumeInput{
		Skills:     []string{"Go", "Postgres", "Redis"},
		Experience: &ExperienceInfo{Years: 4},
		Education:  &EducationInfo{Level: "msc"},
		Summary:    "backend engineer",
		Projects:   []string{"scoring engine"},
	}
	job := &JobInput{
		RequiredSkills:          []string{"go", "kubernetes", "postgres"},
		RequiredExperienceYears: 5,
		RequiredEducationLevel:  "bachelor",
	}
	ctx := ScoringContext{TenantID: "acme", JobID: "j-9", ResumeID: "r-4"}

	first := ScoreResumeAgainstJob(resume, job, ctx)
	second := ScoreResumeAgainstJob(resume, job, ctx)

	assert.Equal(t, first, second)
}

func TestScoreResumeAgainstJob_NilInputsReturnZeroResult(t *testing.T) {
	for _, result := range []ScoringResult{
		ScoreResumeAgainstJob(nil, nil, ScoringContext{}),
		ScoreResumeAgainstJob(nil, &JobInput{}, ScoringContext{}),
		ScoreResumeAgainstJob(&ResumeInput{}, nil, ScoringContext{}),
	} {
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, ScoreBreakdown{}, result.Breakdown)
		assert.NotNil(t, result.MatchedKeywords)
		assert.Empty(t, result.MatchedKeywords)
		assert.NotNil(t, result.MissingKeywords)
		assert.Empty(t, result.Suggestions)
		assert.Equal(t, ScoringVersion, result.Metadata.Version)
	}
}

func TestScoreResumeAgainstJob_EmptyInputsScoreInBounds(t *testing.T) {
	result := ScoreResumeAgainstJob(&ResumeInput{}, &JobInput{}, ScoringContext{})

	// Empty job: no required skills (0), no required years (100),
	// education none vs none (100).
	assert.Equal(t, 0, result.Breakdown.SkillScore)
	assert.Equal(t, 100, result.Breakdown.ExperienceScore)
	assert.Equal(t, 100, result.Breakdown.EducationScore)
	assertScoreBounds(t, result)
}

func TestScoreResumeAgainstJob_WeightOverrides(t *testing.T) {
	skill := 1.0
	zero := 0.0
	ctx := ScoringContext{
		TenantID: "t1",
		Weights: &WeightStrategy{
			Skill:        &skill,
			Experience:   &zero,
			Education:    &zero,
			Completeness: &zero,
			Bonus:        &zero,
		},
	}

	resume := &ResumeInput{Skills: []string{"go", "sql"}}
	job := &JobInput{RequiredSkills: []string{"go", "sql", "rust", "c"}}

	result := ScoreResumeAgainstJob(resume, job, ctx)
	assert.Equal(t, 50, result.Breakdown.SkillScore)
	assert.Equal(t, 50, result.Score)
}

func TestScoreResumeAgainstJob_SuggestionsDeterministicOrder(t *testing.T) {
	resume := &ResumeInput{Skills: []string{"go"}}
	job := &JobInput{
		RequiredSkills:          []string{"rust", "zig"},
		RequiredExperienceYears: 10,
		RequiredEducationLevel:  "phd",
	}

	result := ScoreResumeAgainstJob(resume, job, ScoringContext{})

	require.Len(t, result.Suggestions, 6)
	assert.Contains(t, result.Suggestions[0], "required skills")
	assert.Contains(t, result.Suggestions[1], "rust, zig")
	assert.Contains(t, result.Suggestions[2], "years of experience")
	assert.Contains(t, result.Suggestions[3], "education")
	assert.Contains(t, result.Suggestions[4], "core sections")
	assert.Contains(t, result.Suggestions[5], "certifications")
}

func TestScoreResumeAgainstJob_BoundsHoldForAdversarialInput(t *testing.T) {
	huge := make([]string, 5000)
	for i := range huge {
		huge[i] = fmt.Sprintf("  SKILL %d  ", i%300)
	}

	resume := &ResumeInput{
		Skills:     huge,
		Experience: &ExperienceInfo{Years: math.Inf(1)},
		Education:  &EducationInfo{Level: "☃☃☃"},
		Summary:    "x",
	}
	job := &JobInput{
		RequiredSkills:          huge,
		RequiredExperienceYears: -3,
		RequiredEducationLevel:  "phd or equivalent",
	}

	result := ScoreResumeAgainstJob(resume, job, ScoringContext{})
	assertScoreBounds(t, result)
}

func TestScoreResumeAgainstJob_KeywordCapPerformance(t *testing.T) {
	skills := make([]string, 1000)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%d", i)
	}
	resume := &ResumeInput{Skills: skills, Summary: "s"}
	job := &JobInput{RequiredSkills: skills}

	start := time.Now()
	for i := 0; i < 1000; i++ {
		ScoreResumeAgainstJob(resume, job, ScoringContext{})
	}
	elapsed := time.Since(start)

	// Generous bound; the point is that cost is O(MaxKeywords), not
	// O(len(skills)^2).
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func assertScoreBounds(t *testing.T, result ScoringResult) {
	t.Helper()
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 100)
	for _, v := range []int{
		result.Breakdown.SkillScore,
		result.Breakdown.ExperienceScore,
		result.Breakdown.EducationScore,
		result.Breakdown.CompletenessScore,
		result.Breakdown.BonusScore,
	} {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
}
