package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/pkg/e"
	"store-pos/pkg/jwt"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Authenticate(token string) (*access.Principal, error)
	Logout(userID uuid.UUID) error
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	now      Clock
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, now Clock) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{userRepo: userRepo, tokens: tokens, now: now}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, e.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, e.ErrUserInactive
	}

	// Single session: a new version invalidates tokens issued earlier.
	version := uuid.New().String()
	now := s.now()
	if err := s.userRepo.RecordLogin(user.ID, version, now); err != nil {
		return nil, err
	}
	user.TokenVersion = version
	user.LastLoginAt = &now

	token, err := s.tokens.GenerateToken(user.ID, user.Username, version)
	if err != nil {
		return nil, e.Wrap("generate token", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(s.tokens.TTL()),
		User:      user.ToResponse(),
	}, nil
}

// Authenticate resolves a session token to its principal, with the profile loaded fresh.
func (s *authService) Authenticate(token string) (*access.Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrSessionExpired
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, e.ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, e.ErrSessionExpired
	}

	return access.NewPrincipal(user), nil
}

func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}
