package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ResultCache memoizes scoring results keyed by the scoring context.
// A miss returns (nil, nil).
type ResultCache interface {
	Get(ctx context.Context, sc ScoringContext) (*ScoringResult, error)
	Set(ctx context.Context, sc ScoringContext, result *ScoringResult) error
}

// Service wraps the pure engine with the caller-side concerns the engine
// refuses to own: result caching, wall-clock measurement, and the
// CacheHit/ProcessingTimeMs metadata fields.
type Service struct {
	cache  ResultCache
	logger *zap.Logger
}

// NewService creates a scoring service. cache may be nil, in which case
// every call recomputes.
func NewService(cache ResultCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cache: cache, logger: logger}
}

// Score returns the match result for the given inputs, serving from cache
// when possible. Cache failures are logged and degrade to recomputation;
// they never fail the call.
func (s *Service) Score(ctx context.Context, resume *ResumeInput, job *JobInput, sc ScoringContext) *ScoringResult {
	start := time.Now()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sc)
		if err != nil {
			s.logger.Warn("scoring cache read failed",
				zap.String("tenant_id", sc.TenantID),
				zap.String("job_id", sc.JobID),
				zap.Error(err))
		}
		if cached != nil {
			cached.Metadata.CacheHit = true
			cached.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()
			return cached
		}
	}

	result := ScoreResumeAgainstJob(resume, job, sc)
	result.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	if s.cache != nil {
		// Store the engine-shaped result: placeholder metadata, so a
		// later hit reports its own timing.
		stored := result
		stored.Metadata.ProcessingTimeMs = 0
		stored.Metadata.CacheHit = false
		if err := s.cache.Set(ctx, sc, &stored); err != nil {
			s.logger.Warn("scoring cache write failed",
				zap.String("tenant_id", sc.TenantID),
				zap.String("job_id", sc.JobID),
				zap.Error(err))
		}
	}

	return &result
}
