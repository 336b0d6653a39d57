package usecase

import (
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/pkg/errs"
	"courtdesk/internal/pkg/jwt"
	"courtdesk/internal/pkg/password"
)

var ErrInvalidCredentials = errs.New("invalid credentials")

type LoginResult struct {
	Username string
	Token    string
}

type AuthUseCase interface {
	Login(username, pass string) (*LoginResult, error)
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

type authUseCaseImpl struct {
	username     string
	passwordHash string
	jwtService   *jwt.Service
}

// NewAuthUseCase hashes the configured admin password once so login never
// compares plaintext.
func NewAuthUseCase(cfg config.AdminConfig, jwtService *jwt.Service) (AuthUseCase, error) {
	hash, err := password.HashPassword(cfg.Password)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash admin password")
	}

	return &authUseCaseImpl{
		username:     cfg.Username,
		passwordHash: hash,
		jwtService:   jwtService,
	}, nil
}

func (u *authUseCaseImpl) Login(username, pass string) (*LoginResult, error) {
	if username != u.username {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(u.passwordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(username)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Username: username, Token: token}, nil
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
