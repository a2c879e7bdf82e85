package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// Candidate represents a candidate account with profile facts used for
// scoring and recommendations.
type Candidate struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	FullName            string     `json:"full_name"`
	Headline            string     `json:"headline,omitempty"`
	Summary             string     `json:"summary,omitempty"`
	Skills              []string   `json:"skills,omitempty"`
	ExperienceYears     float64    `json:"experience_years"`
	EducationLevel      string     `json:"education_level,omitempty"`
	ProfileCompleteness int        `json:"profile_completeness"`
	CompletenessSyncAt  *time.Time `json:"completeness_synced_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Job statuses
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Job represents a requisition in the job catalog.
type Job struct {
	ID                      uuid.UUID  `json:"id"`
	TenantID                string     `json:"tenant_id"`
	Title                   string     `json:"title"`
	Company                 string     `json:"company"`
	Location                string     `json:"location,omitempty"`
	Description             string     `json:"description,omitempty"`
	RequiredSkills          []string   `json:"required_skills,omitempty"`
	PreferredSkills         []string   `json:"preferred_skills,omitempty"`
	RequiredExperienceYears float64    `json:"required_experience_years"`
	RequiredEducationLevel  string     `json:"required_education_level,omitempty"`
	Status                  string     `json:"status"`
	PublishedAt             *time.Time `json:"published_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// JobInput converts the catalog row into the shape the scoring engine
// consumes.
func (j *Job) JobInput() *scoring.JobInput {
	return &scoring.JobInput{
		RequiredSkills:          j.RequiredSkills,
		PreferredSkills:         j.PreferredSkills,
		RequiredExperienceYears: j.RequiredExperienceYears,
		RequiredEducationLevel:  j.RequiredEducationLevel,
		Title:                   j.Title,
		Description:             j.Description,
	}
}

// Resume represents a parsed resume document attached to a candidate.
// Parsed holds the normalized output of the parsing pipeline.
type Resume struct {
	ID          uuid.UUID            `json:"id"`
	CandidateID uuid.UUID            `json:"candidate_id"`
	Title       string               `json:"title,omitempty"`
	Parsed      *scoring.ResumeInput `json:"parsed,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Application statuses
const (
	ApplicationStatusApplied   = "applied"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAccepted  = "accepted"
)

// Application represents a candidate's application to a job.
type Application struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	ResumeID    uuid.UUID `json:"resume_id"`
	Status      string    `json:"status"`
	MatchScore  *int      `json:"match_score,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
}

// ApplicationWithJob is an application joined with catalog facts for
// candidate-facing listings.
type ApplicationWithJob struct {
	Application
	JobTitle   string `json:"job_title"`
	JobCompany string `json:"job_company"`
	JobStatus  string `json:"job_status"`
}

// MatchScore persists a scoring engine result for audit and reporting.
type MatchScore struct {
	ID        uuid.UUID              `json:"id"`
	TenantID  string                 `json:"tenant_id"`
	JobID     uuid.UUID              `json:"job_id"`
	ResumeID  uuid.UUID              `json:"resume_id"`
	Score     int                    `json:"score"`
	Version   string                 `json:"version"`
	Result    *scoring.ScoringResult `json:"result,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
