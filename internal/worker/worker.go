// Package worker runs the housekeeping loop. It periodically recomputes
// each candidate's profile completeness from their stored facts, and
// re-scores persisted match results for active jobs whose stored scoring
// version has fallen behind the engine.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// Store is the subset of the database the worker needs.
type Store interface {
	ListCandidates(ctx context.Context, limit, offset int) ([]db.Candidate, error)
	UpdateProfileCompleteness(ctx context.Context, id uuid.UUID, completeness int, syncedAt time.Time) error
	ListActiveJobs(ctx context.Context, limit, offset int) ([]db.Job, error)
	ListMatchScoresByJob(ctx context.Context, tenantID string, jobID uuid.UUID, limit int) ([]db.MatchScore, error)
	GetResumeByID(ctx context.Context, resumeID uuid.UUID) (*db.Resume, error)
	SaveMatchScore(ctx context.Context, tenantID string, jobID, resumeID uuid.UUID, result *scoring.ScoringResult) error
}

// Worker sweeps candidate profiles and stale match scores on a fixed
// interval.
type Worker struct {
	store       Store
	logger      *zap.Logger
	interval    time.Duration
	batchSize   int
	concurrency int
}

// Options configures a Worker. Zero values fall back to safe defaults.
type Options struct {
	Interval    time.Duration
	BatchSize   int
	Concurrency int
}

// New creates a housekeeping worker.
func New(store Store, logger *zap.Logger, opts Options) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Minute
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Worker{
		store:       store,
		logger:      logger,
		interval:    opts.Interval,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
	}
}

// Run executes sweeps until the context is canceled. The first sweep
// starts immediately.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.Sweep(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("sweep failed", zap.Error(err))
		}
		if err := w.RefreshScores(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("score refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep recomputes profile completeness for every candidate, in batches.
func (w *Worker) Sweep(ctx context.Context) error {
	start := time.Now()
	var updated, scanned int

	for offset := 0; ; offset += w.batchSize {
		candidates, err := w.store.ListCandidates(ctx, w.batchSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}
		if len(candidates) == 0 {
			break
		}
		scanned += len(candidates)

		n, err := w.sweepBatch(ctx, candidates)
		updated += n
		if err != nil {
			return err
		}

		if len(candidates) < w.batchSize {
			break
		}
	}

	w.logger.Info("completeness sweep finished",
		zap.Int("scanned", scanned),
		zap.Int("updated", updated),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (w *Worker) sweepBatch(ctx context.Context, candidates []db.Candidate) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	updates := make([]bool, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		idx := i
		g.Go(func() error {
			completeness := ProfileCompleteness(c)
			if completeness == c.ProfileCompleteness && c.CompletenessSyncAt != nil {
				return nil
			}
			if err := w.store.UpdateProfileCompleteness(ctx, c.ID, completeness, time.Now()); err != nil {
				return fmt.Errorf("failed to update candidate %s: %w", c.ID, err)
			}
			updates[idx] = true
			return nil
		})
	}

	err := g.Wait()

	var n int
	for _, u := range updates {
		if u {
			n++
		}
	}
	return n, err
}

// RefreshScores re-scores persisted match results for active jobs whose
// stored scoring version no longer matches the engine. Scores written by
// the current engine version are left untouched.
func (w *Worker) RefreshScores(ctx context.Context) error {
	start := time.Now()
	var jobs, refreshed int

	for offset := 0; ; offset += w.batchSize {
		batch, err := w.store.ListActiveJobs(ctx, w.batchSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list active jobs: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		jobs += len(batch)

		for i := range batch {
			n, err := w.refreshJob(ctx, &batch[i])
			refreshed += n
			if err != nil {
				return err
			}
		}

		if len(batch) < w.batchSize {
			break
		}
	}

	w.logger.Info("match score refresh finished",
		zap.Int("jobs", jobs),
		zap.Int("refreshed", refreshed),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (w *Worker) refreshJob(ctx context.Context, job *db.Job) (int, error) {
	scores, err := w.store.ListMatchScoresByJob(ctx, job.TenantID, job.ID, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list match scores for job %s: %w", job.ID, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	updates := make([]bool, len(scores))
	for i := range scores {
		ms := &scores[i]
		idx := i
		g.Go(func() error {
			if ms.Version == scoring.ScoringVersion {
				return nil
			}
			resume, err := w.store.GetResumeByID(ctx, ms.ResumeID)
			if err != nil {
				return fmt.Errorf("failed to load resume %s: %w", ms.ResumeID, err)
			}
			if resume == nil {
				// Resume deleted since the score was written.
				return nil
			}
			sc := scoring.ScoringContext{
				TenantID: job.TenantID,
				JobID:    job.ID.String(),
				ResumeID: ms.ResumeID.String(),
			}
			result := scoring.ScoreResumeAgainstJob(resume.Parsed, job.JobInput(), sc)
			if err := w.store.SaveMatchScore(ctx, job.TenantID, job.ID, ms.ResumeID, &result); err != nil {
				return fmt.Errorf("failed to save match score for resume %s: %w", ms.ResumeID, err)
			}
			updates[idx] = true
			return nil
		})
	}

	err = g.Wait()

	var n int
	for _, u := range updates {
		if u {
			n++
		}
	}
	return n, err
}

// ProfileCompleteness derives the completeness percentage from the
// candidate's profile facts, using the same section rules the match
// scorer applies to parsed resumes.
func ProfileCompleteness(c *db.Candidate) int {
	resume := &scoring.ResumeInput{
		Skills:  c.Skills,
		Summary: c.Summary,
	}
	if c.ExperienceYears > 0 {
		resume.Experience = &scoring.ExperienceInfo{Years: c.ExperienceYears}
	}
	if c.EducationLevel != "" {
		resume.Education = &scoring.EducationInfo{Level: c.EducationLevel}
	}
	return scoring.ScoreCompleteness(resume, scoring.DefaultWeights.Completeness)
}
