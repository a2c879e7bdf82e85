// Package scoring implements the ATS resume-to-job match scoring engine.
//
// The engine is a pure function pipeline: no I/O, no shared state, no
// panics escaping to callers. Any number of goroutines may score
// concurrently without synchronization.
package scoring

import "time"

// ScoringVersion identifies the engine revision embedded in every result.
const ScoringVersion = "v1.0.0"

// Weights holds the fractional contribution of each scoring component.
// The defaults sum to 1.0; per-request overrides are not re-normalized,
// that is the caller's responsibility.
type Weights struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Completeness float64 `json:"completeness"`
	Bonus        float64 `json:"bonus"`
}

// DefaultWeights is the standard component weight distribution.
var DefaultWeights = Weights{
	Skill:        0.4,
	Experience:   0.2,
	Education:    0.2,
	Completeness: 0.1,
	Bonus:        0.1,
}

// Education levels ordered for ordinal comparison. Higher values
// represent higher attainment.
const (
	LevelNone      = "none"
	LevelAssociate = "associate"
	LevelBachelor  = "bachelor"
	LevelMaster    = "master"
	LevelPhD       = "phd"
)

// educationLevels maps normalized level names to their ordinal rank.
var educationLevels = map[string]int{
	LevelNone:      0,
	LevelAssociate: 1,
	LevelBachelor:  2,
	LevelMaster:    3,
	LevelPhD:       4,
}

// requiredResumeSections are the sections counted by completeness scoring.
var requiredResumeSections = []string{"skills", "experience", "education", "summary"}

// bonusItems are the optional sections counted by bonus scoring.
var bonusItems = []string{"certifications", "projects", "publications", "awards"}

const (
	// MaxKeywords caps the number of keywords processed per request.
	// Bounds set operations to O(MaxKeywords) regardless of payload size.
	MaxKeywords = 200

	// MaxPayloadBytes caps the UTF-8 byte length of any single text field.
	MaxPayloadBytes = 65536

	// MaxTotalBonus is the aggregate bonus contribution as a fraction of
	// the total score.
	MaxTotalBonus = 0.1

	// CacheTTL is how long memoized scoring results stay valid.
	CacheTTL = time.Hour

	// RedisKeyPrefix namespaces all ATS scoring keys.
	RedisKeyPrefix = "smarthire:ats"
)

// Experience thresholds in years, used by seniority heuristics elsewhere
// in the platform.
const (
	ThresholdJuniorYears = 2
	ThresholdMidYears    = 4
	ThresholdSeniorYears = 7
)
