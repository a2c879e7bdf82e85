package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/scoring"
)

type fakeStore struct {
	mu         sync.Mutex
	candidates []db.Candidate
	updates    map[uuid.UUID]int
	jobs       []db.Job
	scores     []db.MatchScore
	resumes    map[uuid.UUID]*db.Resume
	saved      map[uuid.UUID]*scoring.ScoringResult
	listErr    error
	updateErr  error
	saveErr    error
}

func newFakeStore(candidates ...db.Candidate) *fakeStore {
	return &fakeStore{
		candidates: candidates,
		updates:    make(map[uuid.UUID]int),
		resumes:    make(map[uuid.UUID]*db.Resume),
		saved:      make(map[uuid.UUID]*scoring.ScoringResult),
	}
}

func (s *fakeStore) ListCandidates(ctx context.Context, limit, offset int) ([]db.Candidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.candidates) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.candidates) {
		end = len(s.candidates)
	}
	return s.candidates[offset:end], nil
}

func (s *fakeStore) UpdateProfileCompleteness(ctx context.Context, id uuid.UUID, completeness int, syncedAt time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates[id] = completeness
	return nil
}

func (s *fakeStore) ListActiveJobs(ctx context.Context, limit, offset int) ([]db.Job, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.jobs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.jobs) {
		end = len(s.jobs)
	}
	return s.jobs[offset:end], nil
}

func (s *fakeStore) ListMatchScoresByJob(ctx context.Context, tenantID string, jobID uuid.UUID, limit int) ([]db.MatchScore, error) {
	var out []db.MatchScore
	for _, ms := range s.scores {
		if ms.JobID == jobID {
			out = append(out, ms)
		}
	}
	return out, nil
}

func (s *fakeStore) GetResumeByID(ctx context.Context, resumeID uuid.UUID) (*db.Resume, error) {
	return s.resumes[resumeID], nil
}

func (s *fakeStore) SaveMatchScore(ctx context.Context, tenantID string, jobID, resumeID uuid.UUID, result *scoring.ScoringResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[resumeID] = result
	return nil
}

func fullProfile() db.Candidate {
	return db.Candidate{
		ID:              uuid.New(),
		FullName:        "Ada Example",
		Summary:         "Backend engineer.",
		Skills:          []string{"go", "sql"},
		ExperienceYears: 5,
		EducationLevel:  "bachelor",
	}
}

func TestProfileCompleteness(t *testing.T) {
	full := fullProfile()
	assert.Equal(t, 100, ProfileCompleteness(&full))

	empty := db.Candidate{ID: uuid.New()}
	assert.Equal(t, 0, ProfileCompleteness(&empty))

	half := db.Candidate{ID: uuid.New(), Skills: []string{"go"}, Summary: "Engineer."}
	assert.Equal(t, 50, ProfileCompleteness(&half))
}

func TestSweep_UpdatesStaleProfiles(t *testing.T) {
	c := fullProfile()
	store := newFakeStore(c)

	w := New(store, nil, Options{BatchSize: 10, Concurrency: 2})
	require.NoError(t, w.Sweep(context.Background()))

	assert.Equal(t, 100, store.updates[c.ID])
}

func TestSweep_SkipsFreshProfiles(t *testing.T) {
	now := time.Now()
	c := fullProfile()
	c.ProfileCompleteness = 100
	c.CompletenessSyncAt = &now
	store := newFakeStore(c)

	w := New(store, nil, Options{})
	require.NoError(t, w.Sweep(context.Background()))

	assert.Empty(t, store.updates)
}

func TestSweep_UpdatesNeverSyncedProfiles(t *testing.T) {
	// Same stored value, but never synced before: still written once so
	// the sync timestamp exists.
	c := fullProfile()
	c.ProfileCompleteness = 100
	store := newFakeStore(c)

	w := New(store, nil, Options{})
	require.NoError(t, w.Sweep(context.Background()))

	assert.Len(t, store.updates, 1)
}

func TestSweep_Batches(t *testing.T) {
	var candidates []db.Candidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, fullProfile())
	}
	store := newFakeStore(candidates...)

	w := New(store, nil, Options{BatchSize: 10, Concurrency: 4})
	require.NoError(t, w.Sweep(context.Background()))

	assert.Len(t, store.updates, 25)
}

func TestSweep_ListError(t *testing.T) {
	store := newFakeStore(fullProfile())
	store.listErr = fmt.Errorf("connection refused")

	w := New(store, nil, Options{})
	assert.Error(t, w.Sweep(context.Background()))
}

func TestSweep_UpdateError(t *testing.T) {
	store := newFakeStore(fullProfile())
	store.updateErr = fmt.Errorf("write failed")

	w := New(store, nil, Options{})
	assert.Error(t, w.Sweep(context.Background()))
}

func activeJob() db.Job {
	return db.Job{
		ID:             uuid.New(),
		TenantID:       "acme",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"go"},
		Status:         db.JobStatusActive,
	}
}

func TestRefreshScores_RescoresOutdatedVersions(t *testing.T) {
	job := activeJob()
	resume := &db.Resume{
		ID:     uuid.New(),
		Parsed: &scoring.ResumeInput{Skills: []string{"go"}},
	}

	store := newFakeStore()
	store.jobs = []db.Job{job}
	store.resumes[resume.ID] = resume
	store.scores = []db.MatchScore{
		{JobID: job.ID, TenantID: job.TenantID, ResumeID: resume.ID, Version: "v0.9.0"},
	}

	w := New(store, nil, Options{BatchSize: 10, Concurrency: 2})
	require.NoError(t, w.RefreshScores(context.Background()))

	saved := store.saved[resume.ID]
	require.NotNil(t, saved)
	assert.Equal(t, scoring.ScoringVersion, saved.Metadata.Version)
	assert.Equal(t, 100, saved.Breakdown.SkillScore)
}

func TestRefreshScores_SkipsCurrentVersion(t *testing.T) {
	job := activeJob()
	store := newFakeStore()
	store.jobs = []db.Job{job}
	store.scores = []db.MatchScore{
		{JobID: job.ID, TenantID: job.TenantID, ResumeID: uuid.New(), Version: scoring.ScoringVersion},
	}

	w := New(store, nil, Options{})
	require.NoError(t, w.RefreshScores(context.Background()))

	assert.Empty(t, store.saved)
}

func TestRefreshScores_SkipsDeletedResumes(t *testing.T) {
	job := activeJob()
	store := newFakeStore()
	store.jobs = []db.Job{job}
	store.scores = []db.MatchScore{
		{JobID: job.ID, TenantID: job.TenantID, ResumeID: uuid.New(), Version: "v0.9.0"},
	}

	w := New(store, nil, Options{})
	require.NoError(t, w.RefreshScores(context.Background()))

	assert.Empty(t, store.saved)
}

func TestRefreshScores_SaveError(t *testing.T) {
	job := activeJob()
	resume := &db.Resume{ID: uuid.New(), Parsed: &scoring.ResumeInput{}}

	store := newFakeStore()
	store.jobs = []db.Job{job}
	store.resumes[resume.ID] = resume
	store.scores = []db.MatchScore{
		{JobID: job.ID, TenantID: job.TenantID, ResumeID: resume.ID, Version: "v0.9.0"},
	}
	store.saveErr = fmt.Errorf("write failed")

	w := New(store, nil, Options{})
	assert.Error(t, w.RefreshScores(context.Background()))
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := newFakeStore()
	w := New(store, nil, Options{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
