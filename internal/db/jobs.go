package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

const jobColumns = `id, tenant_id, title, company, location, description,
        required_skills, preferred_skills, required_experience_years,
        required_education_level, status, published_at, created_at, updated_at`

// CreateJobParams holds the fields required to create a job.
type CreateJobParams struct {
	TenantID                string
	Title                   string
	Company                 string
	Location                string
	Description             string
	RequiredSkills          []string
	PreferredSkills         []string
	RequiredExperienceYears float64
	RequiredEducationLevel  string
}

// CreateJob inserts an active job and returns its ID.
func (db *DB) CreateJob(ctx context.Context, params CreateJobParams) (uuid.UUID, error) {
	requiredJSON, err := json.Marshal(params.RequiredSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal required skills: %w", err)
	}
	preferredJSON, err := json.Marshal(params.PreferredSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal preferred skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (tenant_id, title, company, location, description,
		                   required_skills, preferred_skills, required_experience_years,
		                   required_education_level, status, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', NOW())
		 RETURNING id`,
		params.TenantID, params.Title, params.Company, params.Location, params.Description,
		requiredJSON, preferredJSON, params.RequiredExperienceYears, params.RequiredEducationLevel,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJobByID retrieves an active job by ID. Returns nil if not found.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND status = 'active'`, id)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// SearchJobsOptions holds filters and pagination for job search.
// All filters are optional; only active jobs are returned.
type SearchJobsOptions struct {
	Query         string
	Role          string
	Location      string
	ExperienceMin *float64
	ExperienceMax *float64
	Limit         int
	Offset        int
}

// SearchJobs returns matching active jobs and the total match count.
func (db *DB) SearchJobs(ctx context.Context, opts SearchJobsOptions) ([]Job, int, error) {
	where := []string{`status = 'active'`}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.Query != "" {
		p := arg("%" + opts.Query + "%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE %s OR company ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if opts.Role != "" {
		where = append(where, fmt.Sprintf("title ILIKE %s", arg("%"+opts.Role+"%")))
	}
	if opts.Location != "" {
		where = append(where, fmt.Sprintf("location ILIKE %s", arg("%"+opts.Location+"%")))
	}
	if opts.ExperienceMin != nil {
		where = append(where, fmt.Sprintf("required_experience_years >= %s", arg(*opts.ExperienceMin)))
	}
	if opts.ExperienceMax != nil {
		where = append(where, fmt.Sprintf("required_experience_years <= %s", arg(*opts.ExperienceMax)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM jobs WHERE %s ORDER BY published_at DESC NULLS LAST LIMIT %s OFFSET %s`,
		jobColumns, whereClause, arg(opts.Limit), arg(opts.Offset))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// normalizeSkillTerms lowercases and deduplicates skill names for
// matching against LOWER(skill) in the catalog.
func normalizeSkillTerms(skills []string) []string {
	terms := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		term := scoring.NormalizeKeyword(s)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// ListRecommendedJobs returns recent active jobs whose required skills
// overlap the given skill names. Skills are normalized here, so callers
// may pass profile values as stored.
func (db *DB) ListRecommendedJobs(ctx context.Context, skills []string, limit int) ([]Job, error) {
	terms := normalizeSkillTerms(skills)
	if len(terms) == 0 {
		return []Job{}, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = 'active'
		   AND EXISTS (
		     SELECT 1 FROM jsonb_array_elements_text(required_skills) AS skill
		     WHERE LOWER(skill) = ANY($1)
		   )
		 ORDER BY published_at DESC NULLS LAST
		 LIMIT $2`,
		terms, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// ListActiveJobs returns a page of active jobs, used by the housekeeping
// worker for stale match-score refresh.
func (db *DB) ListActiveJobs(ctx context.Context, limit, offset int) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs WHERE status = 'active'
		 ORDER BY created_at LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// CloseJob marks a job as closed.
func (db *DB) CloseJob(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = 'closed', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	var requiredJSON, preferredJSON []byte

	err := row.Scan(&j.ID, &j.TenantID, &j.Title, &j.Company, &j.Location, &j.Description,
		&requiredJSON, &preferredJSON, &j.RequiredExperienceYears,
		&j.RequiredEducationLevel, &j.Status, &j.PublishedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if requiredJSON != nil {
		_ = json.Unmarshal(requiredJSON, &j.RequiredSkills)
	}
	if preferredJSON != nil {
		_ = json.Unmarshal(preferredJSON, &j.PreferredSkills)
	}

	return &j, nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
