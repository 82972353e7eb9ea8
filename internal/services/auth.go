package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbroker/internal/models"
	"eventbroker/internal/utils"
)

const sessionDuration = 30 * 24 * time.Hour

// AuthService handles registration, login and session validation. Sessions
// are server-side rows referenced by an opaque token in the client's cookie;
// there is no process-wide identity state.
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// AuthResponse carries the user and session token produced by a successful
// register or login.
type AuthResponse struct {
	User         *models.User
	SessionToken string
}

// Register creates an account and an initial session.
func (s *AuthService) Register(ctx context.Context, req *models.UserCreateRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}

	token, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, SessionToken: token}, nil
}

// Login verifies credentials and opens a session. Unknown emails and wrong
// passwords produce the same error so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, models.ErrUnauthorized
	}

	token, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, SessionToken: token}, nil
}

// ValidateSession resolves a session token to its user. Expired sessions are
// deleted on sight.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}

	session, err := s.userRepo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	if session.Expired() {
		_ = s.userRepo.DeleteSession(ctx, token)
		return nil, models.ErrUnauthorized
	}

	return s.userRepo.GetByID(ctx, session.UserID)
}

// Logout removes the session named by the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.userRepo.DeleteSession(ctx, token)
}

// CleanupExpiredSessions removes all expired sessions; run periodically.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) error {
	return s.userRepo.DeleteExpiredSessions(ctx)
}

func (s *AuthService) createSession(ctx context.Context, user *models.User) (string, error) {
	token, err := utils.GenerateToken(32)
	if err != nil {
		return "", err
	}
	if _, err := s.userRepo.CreateSession(ctx, token, user.ID, sessionDuration); err != nil {
		return "", err
	}
	return token, nil
}
