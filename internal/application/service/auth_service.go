package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/domain/session"
	"github.com/anviet/tuition-api/pkg/apperror"
	"github.com/anviet/tuition-api/pkg/utils"
)

// AuthService gates access with the shared center passcode
type AuthService struct {
	passcode     string
	passcodeHash string
	jwtManager   *utils.JWTManager
	log          *zap.Logger
}

// NewAuthService creates a new auth service. When passcodeHash is set it takes
// precedence over the literal passcode.
func NewAuthService(passcode, passcodeHash string, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{
		passcode:     passcode,
		passcodeHash: passcodeHash,
		jwtManager:   jwtManager,
		log:          log,
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	State       session.State
}

// Login checks the passcode and issues a session token
func (s *AuthService) Login(_ context.Context, code string) (*LoginOutput, error) {
	if !s.matches(code) {
		s.log.Info("login rejected")
		return nil, apperror.ErrInvalidPasscode
	}

	token, err := s.jwtManager.GenerateSessionToken()
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue session", err)
	}

	return &LoginOutput{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.jwtManager.Expiry()),
		State:       session.Transition(session.Initial(), session.Event{Kind: session.EventLoginSucceeded}),
	}, nil
}

// ValidateToken checks a session token issued by Login
func (s *AuthService) ValidateToken(token string) (*utils.SessionClaims, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) matches(code string) bool {
	if s.passcodeHash != "" {
		return utils.CheckPasswordHash(code, s.passcodeHash)
	}
	return code != "" && code == s.passcode
}
