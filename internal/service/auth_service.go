package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/shop-backend/internal/auth"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
)

// AuthService issues tokens and resolves them to roles
type AuthService struct {
	gate   *auth.Gate
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(gate *auth.Gate, logger *slog.Logger) *AuthService {
	return &AuthService{
		gate:   gate,
		logger: logger,
	}
}

// Login exchanges a username and password for a bearer token
func (s *AuthService) Login(ctx context.Context, credentials models.Login) (models.BearerToken, error) {
	token, err := s.gate.Authenticate(credentials.Username, credentials.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("login rejected", "username", credentials.Username)
		return models.BearerToken{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		return models.BearerToken{}, err
	}
	s.logger.Info("login succeeded", "username", credentials.Username, "role", token.Role)
	return token, nil
}

// Resolve maps a credential to its role
func (s *AuthService) Resolve(credential string) (models.Role, error) {
	role, err := s.gate.Resolve(credential)
	if err != nil {
		return models.RoleNone, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return role, nil
}
