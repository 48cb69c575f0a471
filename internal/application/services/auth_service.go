package services

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// AuthService checks the configured shared-secret credentials. There is
// no session state: login hands out the one static token, and every
// protected request must present it verbatim.
type AuthService struct {
	cfg    config.AuthConfig
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		logger: logger,
	}
}

// Login verifies the credential pair and returns the fixed token. When a
// bcrypt hash is configured it is checked instead of the plain password.
func (s *AuthService) Login(req ports.LoginRequest) (*ports.LoginResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) != 1 {
		return nil, entities.ErrInvalidCredentials
	}

	if s.cfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
			return nil, entities.ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) != 1 {
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "username", req.Username)

	return &ports.LoginResponse{
		Token:    s.cfg.Token,
		Username: req.Username,
		Message:  "Inicio de sesión exitoso",
	}, nil
}

// CheckBearer succeeds only when header is exactly "Bearer <token>".
func (s *AuthService) CheckBearer(header string) bool {
	expected := "Bearer " + s.cfg.Token
	return subtle.ConstantTimeCompare([]byte(header), []byte(expected)) == 1
}

// Token returns the configured shared-secret token.
func (s *AuthService) Token() string {
	return s.cfg.Token
}
