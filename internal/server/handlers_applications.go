package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/scoring"
	"github.com/smarthire/smarthire-backend/internal/server/middleware"
	"go.uber.org/zap"
)

// CreateApplicationRequest is the payload for applying to a job.
type CreateApplicationRequest struct {
	JobID    uuid.UUID               `json:"job_id"`
	ResumeID uuid.UUID               `json:"resume_id"`
	Weights  *scoring.WeightStrategy `json:"weights,omitempty"`
}

// CreateApplicationResponse carries the stored application and the match
// result computed at apply time.
type CreateApplicationResponse struct {
	ApplicationID uuid.UUID              `json:"application_id"`
	Status        string                 `json:"status"`
	Match         *scoring.ScoringResult `json:"match"`
}

// handleCreateApplication applies the candidate's resume to a job,
// scoring the pair and persisting both
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.JobID == uuid.Nil || req.ResumeID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "job_id and resume_id are required")
		return
	}

	existing, err := s.db.GetApplication(r.Context(), candidateID, req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil {
		appErr := &ErrAlreadyApplied{JobID: req.JobID}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	job, err := s.db.GetJobByID(r.Context(), req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	resume, err := s.db.GetResumeForCandidate(r.Context(), req.ResumeID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	result := s.matchResult(r, job, resume, req.Weights)

	score := result.Score
	applicationID, err := s.db.CreateApplication(r.Context(), candidateID, job.ID, resume.ID, &score)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateApplicationResponse{
		ApplicationID: applicationID,
		Status:        db.ApplicationStatusApplied,
		Match:         result,
	})
}

// matchResult returns the scoring result for a job/resume pair. Under
// default weights a persisted score from the current engine version is
// reused; otherwise the pair is scored and the result persisted for
// recruiter-side rankings.
func (s *Server) matchResult(r *http.Request, job *db.Job, resume *db.Resume, weights *scoring.WeightStrategy) *scoring.ScoringResult {
	if weights == nil {
		stored, err := s.db.GetMatchScore(r.Context(), job.TenantID, job.ID, resume.ID)
		if err != nil {
			s.logger.Warn("failed to read persisted match score", zap.Error(err))
		} else if stored != nil && stored.Version == scoring.ScoringVersion && stored.Result != nil {
			return stored.Result
		}
	}

	sc := scoring.ScoringContext{
		TenantID: job.TenantID,
		JobID:    job.ID.String(),
		ResumeID: resume.ID.String(),
		Weights:  weights,
	}
	result := s.scorer.Score(r.Context(), resume.Parsed, job.JobInput(), sc)

	if err := s.db.SaveMatchScore(r.Context(), job.TenantID, job.ID, resume.ID, result); err != nil {
		// The application still goes through; the score record is an
		// audit artifact.
		s.logger.Warn("failed to persist match score", zap.Error(err))
	}
	return result
}

// UpdateApplicationStatusRequest is the payload for moving an application
// through the review workflow.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied reviewing rejected accepted"`
}

// handleUpdateApplicationStatus updates the status of the candidate's own
// application
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applicationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	application, err := s.db.GetApplicationByID(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil || application.CandidateID != candidateID {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), applicationID, req.Status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	application.Status = req.Status
	s.jsonResponse(w, http.StatusOK, application)
}

// handleListApplications lists the candidate's applications with job
// facts
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applications, err := s.db.ListApplicationsByCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applications,
		"count":        len(applications),
	})
}
