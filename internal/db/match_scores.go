package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// SaveMatchScore persists a scoring result, overwriting any previous
// score for the same tenant/job/resume triple.
func (db *DB) SaveMatchScore(ctx context.Context, tenantID string, jobID, resumeID uuid.UUID, result *scoring.ScoringResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal scoring result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_scores (tenant_id, job_id, resume_id, score, version, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (tenant_id, job_id, resume_id)
		 DO UPDATE SET score = $4, version = $5, result = $6, created_at = NOW()`,
		tenantID, jobID, resumeID, result.Score, result.Metadata.Version, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save match score: %w", err)
	}
	return nil
}

// GetMatchScore retrieves a persisted score. Returns nil if not found.
func (db *DB) GetMatchScore(ctx context.Context, tenantID string, jobID, resumeID uuid.UUID) (*MatchScore, error) {
	var m MatchScore
	var resultJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, tenant_id, job_id, resume_id, score, version, result, created_at
		 FROM match_scores
		 WHERE tenant_id = $1 AND job_id = $2 AND resume_id = $3`,
		tenantID, jobID, resumeID,
	).Scan(&m.ID, &m.TenantID, &m.JobID, &m.ResumeID, &m.Score, &m.Version, &resultJSON, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match score: %w", err)
	}

	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &m.Result)
	}

	return &m, nil
}

// ListMatchScoresByJob returns persisted scores for a job ranked highest
// first, for recruiter-side review.
func (db *DB) ListMatchScoresByJob(ctx context.Context, tenantID string, jobID uuid.UUID, limit int) ([]MatchScore, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, job_id, resume_id, score, version, result, created_at
		 FROM match_scores
		 WHERE tenant_id = $1 AND job_id = $2
		 ORDER BY score DESC, created_at DESC
		 LIMIT $3`,
		tenantID, jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list match scores: %w", err)
	}
	defer rows.Close()

	var scores []MatchScore
	for rows.Next() {
		var m MatchScore
		var resultJSON []byte
		if err := rows.Scan(&m.ID, &m.TenantID, &m.JobID, &m.ResumeID, &m.Score,
			&m.Version, &resultJSON, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match score: %w", err)
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &m.Result)
		}
		scores = append(scores, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match scores: %w", err)
	}

	return scores, nil
}
