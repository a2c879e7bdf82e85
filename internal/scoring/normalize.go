package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NormalizeKeyword trims, lowercases, and collapses internal whitespace
// runs to single spaces.
func NormalizeKeyword(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if !strings.ContainsAny(trimmed, " \t\n\r") {
		return trimmed
	}
	return strings.Join(strings.Fields(trimmed), " ")
}

// KeywordSet is a deduplicated keyword collection that remembers insertion
// order, so set operations produce deterministic output.
type KeywordSet struct {
	values []string
	index  map[string]struct{}
}

// NewKeywordSet returns an empty set with capacity for n entries.
func NewKeywordSet(n int) *KeywordSet {
	return &KeywordSet{
		values: make([]string, 0, n),
		index:  make(map[string]struct{}, n),
	}
}

// Add inserts a keyword if not already present.
func (s *KeywordSet) Add(keyword string) {
	if _, ok := s.index[keyword]; ok {
		return
	}
	s.index[keyword] = struct{}{}
	s.values = append(s.values, keyword)
}

// Has reports whether the keyword is in the set.
func (s *KeywordSet) Has(keyword string) bool {
	_, ok := s.index[keyword]
	return ok
}

// Len returns the number of unique keywords.
func (s *KeywordSet) Len() int { return len(s.values) }

// Values returns the keywords in insertion order. The returned slice is
// shared with the set and must not be mutated.
func (s *KeywordSet) Values() []string { return s.values }

// BuildKeywordSet normalizes at most min(limit, MaxKeywords) entries from
// keywords, in original order, discarding empty results. Entries beyond
// the cap are ignored, which bounds matching cost for adversarial inputs.
func BuildKeywordSet(keywords []string, limit int) *KeywordSet {
	effectiveLimit := limit
	if effectiveLimit > MaxKeywords {
		effectiveLimit = MaxKeywords
	}
	if effectiveLimit < 0 {
		effectiveLimit = 0
	}

	count := len(keywords)
	if count > effectiveLimit {
		count = effectiveLimit
	}

	set := NewKeywordSet(count)
	for i := 0; i < count; i++ {
		normalized := NormalizeKeyword(keywords[i])
		if normalized != "" {
			set.Add(normalized)
		}
	}
	return set
}

// IntersectSets returns the elements common to a and b, iterating the
// smaller set so the cost is O(min(|a|,|b|)).
func IntersectSets(a, b *KeywordSet) []string {
	smaller, larger := a, b
	if b.Len() < a.Len() {
		smaller, larger = b, a
	}

	result := make([]string, 0)
	for _, v := range smaller.Values() {
		if larger.Has(v) {
			result = append(result, v)
		}
	}
	return result
}

// DiffSets returns the elements of a that are not in b.
func DiffSets(a, b *KeywordSet) []string {
	result := make([]string, 0)
	for _, v := range a.Values() {
		if !b.Has(v) {
			result = append(result, v)
		}
	}
	return result
}

// SafeTruncate truncates input so its UTF-8 byte length does not exceed
// maxBytes, cutting at a rune boundary so the budget is never exceeded by
// a partial multi-byte character.
func SafeTruncate(input string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(input) <= maxBytes {
		return input
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(input[cut]) {
		cut--
	}
	return input[:cut]
}

// NormalizeEducationLevel maps a raw education string to one of the known
// level names, falling back to "none" for anything unrecognized. Exact
// matches win; otherwise substring synonyms are checked in fixed order.
func NormalizeEducationLevel(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))

	if _, ok := educationLevels[value]; ok {
		return value
	}

	switch {
	case strings.Contains(value, "associate"):
		return LevelAssociate
	case strings.Contains(value, "bachelor"),
		strings.Contains(value, "bsc"),
		strings.Contains(value, "b.tech"),
		strings.Contains(value, "be"):
		return LevelBachelor
	case strings.Contains(value, "master"),
		strings.Contains(value, "msc"),
		strings.Contains(value, "m.tech"),
		strings.Contains(value, "ma"):
		return LevelMaster
	case strings.Contains(value, "phd"),
		strings.Contains(value, "doctor"):
		return LevelPhD
	}

	return LevelNone
}

// educationRank returns the ordinal for a normalized level name.
func educationRank(level string) int {
	return educationLevels[level]
}

// BuildSuggestions produces deterministic, human-readable improvement
// hints from the score breakdown, missing keywords, and effective weights.
// Emission order is fixed: skills, missing keywords, experience,
// education, completeness, bonus.
func BuildSuggestions(breakdown ScoreBreakdown, missingKeywords []string, weights Weights) []string {
	suggestions := make([]string, 0, 6)

	if breakdown.SkillScore < 80 && weights.Skill > 0 {
		suggestions = append(suggestions,
			"Highlight more of the required skills in your resume, ensuring terminology matches the job description.")
	}

	if len(missingKeywords) > 0 {
		sample := missingKeywords
		if len(sample) > 5 {
			sample = sample[:5]
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider adding experience or keywords related to: %s. Only include items that genuinely reflect your background.",
			strings.Join(sample, ", ")))
	}

	if breakdown.ExperienceScore < 80 && weights.Experience > 0 {
		suggestions = append(suggestions,
			"Emphasize roles and achievements that demonstrate years of experience relevant to this position.")
	}

	if breakdown.EducationScore < 80 && weights.Education > 0 {
		suggestions = append(suggestions,
			"Clarify your highest education level and ensure your degree information is clearly listed in the education section.")
	}

	if breakdown.CompletenessScore < 100 && weights.Completeness > 0 {
		suggestions = append(suggestions,
			"Complete all core sections of your resume, including skills, experience, education, and a concise professional summary.")
	}

	if breakdown.BonusScore < 100 && weights.Bonus > 0 {
		suggestions = append(suggestions,
			"Add relevant certifications, projects, publications, or awards to unlock additional bonus score and stand out.")
	}

	return suggestions
}
