package server

import (
	"encoding/json"
	"net/http"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// ScoreRequest is the payload for the direct scoring endpoint. Resume and
// job follow the scoring input shapes; context carries tenant/job/resume
// identifiers and optional weight overrides.
type ScoreRequest struct {
	Resume  *scoring.ResumeInput   `json:"resume"`
	Job     *scoring.JobInput      `json:"job"`
	Context scoring.ScoringContext `json:"context"`
}

// handleScore scores a resume against a job and returns the full result.
// Malformed or missing scoring inputs yield the zero result rather than
// an error; only an undecodable body is rejected.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := s.scorer.Score(r.Context(), req.Resume, req.Job, req.Context)
	s.jsonResponse(w, http.StatusOK, result)
}
