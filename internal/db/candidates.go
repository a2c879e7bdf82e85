package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCandidate inserts a candidate account and returns its ID.
func (db *DB) CreateCandidate(ctx context.Context, email, passwordHash, fullName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (email, password_hash, full_name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		email, passwordHash, fullName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// GetCandidateByID retrieves a candidate by ID. Returns nil if not found.
func (db *DB) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return db.getCandidate(ctx, `WHERE id = $1`, id)
}

// GetCandidateByEmail retrieves a candidate by email. Returns nil if not found.
func (db *DB) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	return db.getCandidate(ctx, `WHERE email = $1`, email)
}

func (db *DB) getCandidate(ctx context.Context, where string, arg any) (*Candidate, error) {
	var c Candidate
	var skillsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, full_name, headline, summary, skills,
		        experience_years, education_level, profile_completeness,
		        completeness_synced_at, created_at, updated_at
		 FROM candidates `+where,
		arg,
	).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FullName, &c.Headline, &c.Summary,
		&skillsJSON, &c.ExperienceYears, &c.EducationLevel, &c.ProfileCompleteness,
		&c.CompletenessSyncAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &c.Skills)
	}

	return &c, nil
}

// UpdateCandidateProfileParams holds the mutable profile fields.
type UpdateCandidateProfileParams struct {
	FullName        string
	Headline        string
	Summary         string
	Skills          []string
	ExperienceYears float64
	EducationLevel  string
}

// UpdateCandidateProfile updates the candidate's profile facts.
func (db *DB) UpdateCandidateProfile(ctx context.Context, id uuid.UUID, params UpdateCandidateProfileParams) error {
	skillsJSON, err := json.Marshal(params.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE candidates
		 SET full_name = $1, headline = $2, summary = $3, skills = $4,
		     experience_years = $5, education_level = $6, updated_at = NOW()
		 WHERE id = $7`,
		params.FullName, params.Headline, params.Summary, skillsJSON,
		params.ExperienceYears, params.EducationLevel, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate profile: %w", err)
	}
	return nil
}

// UpdateProfileCompleteness stores a recomputed completeness score.
func (db *DB) UpdateProfileCompleteness(ctx context.Context, id uuid.UUID, completeness int, syncedAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET profile_completeness = $1, completeness_synced_at = $2
		 WHERE id = $3`,
		completeness, syncedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile completeness: %w", err)
	}
	return nil
}

// ListCandidates returns a page of candidates ordered by creation time.
// Used by the housekeeping worker to sweep profiles in batches.
func (db *DB) ListCandidates(ctx context.Context, limit, offset int) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, email, password_hash, full_name, headline, summary, skills,
		        experience_years, education_level, profile_completeness,
		        completeness_synced_at, created_at, updated_at
		 FROM candidates
		 ORDER BY created_at
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		var skillsJSON []byte
		if err := rows.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FullName, &c.Headline,
			&c.Summary, &skillsJSON, &c.ExperienceYears, &c.EducationLevel,
			&c.ProfileCompleteness, &c.CompletenessSyncAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if skillsJSON != nil {
			_ = json.Unmarshal(skillsJSON, &c.Skills)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}

// DeleteCandidate removes a candidate account and, via cascading foreign
// keys, its resumes and applications.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return nil
}
