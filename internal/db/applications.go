package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetApplication retrieves the candidate's application to a job.
// Returns nil if the candidate has not applied.
func (db *DB) GetApplication(ctx context.Context, candidateID, jobID uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, resume_id, status, match_score, applied_at
		 FROM applications WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&a.ID, &a.CandidateID, &a.JobID, &a.ResumeID, &a.Status, &a.MatchScore, &a.AppliedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// GetApplicationByID retrieves an application by its ID. Returns nil if
// it does not exist.
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, resume_id, status, match_score, applied_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.CandidateID, &a.JobID, &a.ResumeID, &a.Status, &a.MatchScore, &a.AppliedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// CreateApplication inserts an application with its computed match score.
func (db *DB) CreateApplication(ctx context.Context, candidateID, jobID, resumeID uuid.UUID, matchScore *int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (candidate_id, job_id, resume_id, status, match_score)
		 VALUES ($1, $2, $3, 'applied', $4)
		 RETURNING id`,
		candidateID, jobID, resumeID, matchScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// ListApplicationsByCandidate returns the candidate's applications joined
// with job catalog facts, newest first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]ApplicationWithJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.candidate_id, a.job_id, a.resume_id, a.status, a.match_score,
		        a.applied_at, j.title, j.company, j.status
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.applied_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []ApplicationWithJob
	for rows.Next() {
		var a ApplicationWithJob
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.ResumeID, &a.Status,
			&a.MatchScore, &a.AppliedAt, &a.JobTitle, &a.JobCompany, &a.JobStatus); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return applications, nil
}

// UpdateApplicationStatus transitions an application's status.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}
