package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/server/middleware"
)

// UpdateProfileRequest is the payload for updating the candidate profile.
type UpdateProfileRequest struct {
	FullName        string   `json:"full_name" validate:"required,min=1,max=200"`
	Headline        string   `json:"headline" validate:"max=200"`
	Summary         string   `json:"summary" validate:"max=5000"`
	Skills          []string `json:"skills" validate:"max=200,dive,min=1,max=100"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=80"`
	EducationLevel  string   `json:"education_level" validate:"max=100"`
}

// handleGetMe returns the authenticated candidate's profile
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleDeleteMe permanently removes the authenticated candidate's
// account, with resumes and applications following via cascade
func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
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

	if err := s.db.DeleteCandidate(r.Context(), candidateID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.logger.Info("candidate account deleted", zap.String("candidate_id", candidateID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateMe updates the authenticated candidate's profile facts
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	err = s.db.UpdateCandidateProfile(r.Context(), candidateID, db.UpdateCandidateProfileParams{
		FullName:        req.FullName,
		Headline:        req.Headline,
		Summary:         req.Summary,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		EducationLevel:  req.EducationLevel,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}
