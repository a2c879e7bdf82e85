package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// CreateResume stores a parsed resume document for a candidate.
func (db *DB) CreateResume(ctx context.Context, candidateID uuid.UUID, title string, parsed *scoring.ResumeInput) (uuid.UUID, error) {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (candidate_id, title, parsed)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		candidateID, title, parsedJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResumeForCandidate retrieves a resume owned by the candidate.
// Returns nil if not found or owned by someone else.
func (db *DB) GetResumeForCandidate(ctx context.Context, resumeID, candidateID uuid.UUID) (*Resume, error) {
	var r Resume
	var parsedJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, title, parsed, created_at, updated_at
		 FROM resumes WHERE id = $1 AND candidate_id = $2`,
		resumeID, candidateID,
	).Scan(&r.ID, &r.CandidateID, &r.Title, &parsedJSON, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if parsedJSON != nil {
		_ = json.Unmarshal(parsedJSON, &r.Parsed)
	}

	return &r, nil
}

// GetResumeByID retrieves a resume regardless of owner. For internal use
// by the housekeeping worker; candidate-facing reads go through
// GetResumeForCandidate.
func (db *DB) GetResumeByID(ctx context.Context, resumeID uuid.UUID) (*Resume, error) {
	var r Resume
	var parsedJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, title, parsed, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&r.ID, &r.CandidateID, &r.Title, &parsedJSON, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if parsedJSON != nil {
		_ = json.Unmarshal(parsedJSON, &r.Parsed)
	}

	return &r, nil
}

// ListResumesByCandidate returns all resumes owned by the candidate,
// newest first.
func (db *DB) ListResumesByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, title, parsed, created_at, updated_at
		 FROM resumes WHERE candidate_id = $1
		 ORDER BY created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		var parsedJSON []byte
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.Title, &parsedJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if parsedJSON != nil {
			_ = json.Unmarshal(parsedJSON, &r.Parsed)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}

	return resumes, nil
}

// DeleteResume removes a resume owned by the candidate.
func (db *DB) DeleteResume(ctx context.Context, resumeID, candidateID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND candidate_id = $2`,
		resumeID, candidateID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
