package server

import (
	"context"
	"fmt"

	"github.com/smarthire/smarthire-backend/internal/config"
	"github.com/smarthire/smarthire-backend/internal/db"
)

// CandidateService provides business logic for candidate account
// operations.
type CandidateService struct {
	db             *db.DB
	passwordConfig *config.PasswordConfig
}

// NewCandidateService creates a new CandidateService with the given
// dependencies.
func NewCandidateService(database *db.DB, passwordConfig *config.PasswordConfig) *CandidateService {
	return &CandidateService{
		db:             database,
		passwordConfig: passwordConfig,
	}
}

// RegisterRequest is the payload for candidate registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
}

// LoginRequest is the payload for candidate login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the candidate and a signed token.
type AuthResponse struct {
	Candidate *db.Candidate `json:"candidate"`
	Token     string        `json:"token"`
}

// Register creates a new candidate account.
func (s *CandidateService) Register(ctx context.Context, req *RegisterRequest) (*db.Candidate, error) {
	existing, err := s.db.GetCandidateByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	candidateID, err := s.db.CreateCandidate(ctx, req.Email, passwordHash, req.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	candidate, err := s.db.GetCandidateByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created candidate: %w", err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("created candidate not found: %s", candidateID)
	}

	return candidate, nil
}

// Login verifies credentials and returns the candidate.
func (s *CandidateService) Login(ctx context.Context, req *LoginRequest) (*db.Candidate, error) {
	candidate, err := s.db.GetCandidateByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}
	if candidate == nil {
		// Same error as a bad password, so login probes cannot tell
		// registered emails apart.
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, candidate.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return candidate, nil
}
