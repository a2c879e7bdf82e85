package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/server/middleware"
)

var validate = validator.New()

// SearchJobsResponse represents the response for searching jobs
type SearchJobsResponse struct {
	Jobs   []db.Job `json:"jobs"`
	Count  int      `json:"count"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// CreateJobRequest is the payload for publishing a job.
type CreateJobRequest struct {
	TenantID                string   `json:"tenant_id" validate:"required,min=1,max=100"`
	Title                   string   `json:"title" validate:"required,min=1,max=200"`
	Company                 string   `json:"company" validate:"required,min=1,max=200"`
	Location                string   `json:"location" validate:"max=200"`
	Description             string   `json:"description"`
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	RequiredExperienceYears float64  `json:"required_experience_years" validate:"gte=0,lte=60"`
	RequiredEducationLevel  string   `json:"required_education_level" validate:"omitempty,oneof=none associate bachelor master phd"`
}

// handleSearchJobs lists active jobs with optional filters and pagination
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 20, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	opts := db.SearchJobsOptions{
		Query:    r.URL.Query().Get("q"),
		Role:     r.URL.Query().Get("role"),
		Location: r.URL.Query().Get("location"),
		Limit:    limit,
		Offset:   offset,
	}

	if minStr := r.URL.Query().Get("experience_min"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil || min < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid experience_min")
			return
		}
		opts.ExperienceMin = &min
	}

	if maxStr := r.URL.Query().Get("experience_max"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil || max < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid experience_max")
			return
		}
		opts.ExperienceMax = &max
	}

	jobs, total, err := s.db.SearchJobs(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchJobsResponse{
		Jobs:   jobs,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleGetJob retrieves an active job by its ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob publishes a job into the catalog
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	jobID, err := s.db.CreateJob(r.Context(), db.CreateJobParams{
		TenantID:                req.TenantID,
		Title:                   req.Title,
		Company:                 req.Company,
		Location:                req.Location,
		Description:             req.Description,
		RequiredSkills:          req.RequiredSkills,
		PreferredSkills:         req.PreferredSkills,
		RequiredExperienceYears: req.RequiredExperienceYears,
		RequiredEducationLevel:  req.RequiredEducationLevel,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleCloseJob retires a job from the catalog. Closed jobs drop out of
// search, recommendations, and the worker's score refresh.
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	if err := s.db.CloseJob(r.Context(), jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	job.Status = db.JobStatusClosed
	s.jsonResponse(w, http.StatusOK, job)
}

// handleRecommendedJobs lists active jobs overlapping the candidate's
// skills
func (s *Server) handleRecommendedJobs(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	limit := parseQueryInt(r, "limit", 10, 50)
	jobs, err := s.db.ListRecommendedJobs(r.Context(), candidate.Skills, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleListJobScores lists persisted match scores for a job, best first
func (s *Server) handleListJobScores(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	limit := parseQueryInt(r, "limit", 50, 200)
	scores, err := s.db.ListMatchScoresByJob(r.Context(), job.TenantID, jobID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"scores": scores,
		"count":  len(scores),
	})
}
