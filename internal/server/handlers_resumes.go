package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/smarthire/smarthire-backend/internal/schemas"
	"github.com/smarthire/smarthire-backend/internal/scoring"
	"github.com/smarthire/smarthire-backend/internal/server/middleware"
)

// CreateResumeRequest is the payload for storing a parsed resume. Parsed
// is validated against the resume-input schema before it is stored.
type CreateResumeRequest struct {
	Title  string          `json:"title"`
	Parsed json.RawMessage `json:"parsed"`
}

// handleCreateResume stores a parsed resume for the candidate
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Parsed) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "parsed resume document is required")
		return
	}

	if err := schemas.ValidateResumeInput(req.Parsed); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			s.errorResponse(w, http.StatusBadRequest, ve.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Schema error: "+err.Error())
		return
	}

	var parsed scoring.ResumeInput
	if err := json.Unmarshal(req.Parsed, &parsed); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid parsed resume document")
		return
	}

	resumeID, err := s.db.CreateResume(r.Context(), candidateID, req.Title, &parsed)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	resume, err := s.db.GetResumeForCandidate(r.Context(), resumeID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleListResumes lists the candidate's resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := s.db.ListResumesByCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleDeleteResume removes a resume owned by the candidate
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.db.GetResumeForCandidate(r.Context(), resumeID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	if err := s.db.DeleteResume(r.Context(), resumeID, candidateID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
