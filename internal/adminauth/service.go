// Package adminauth implements the admin panel session check. It is an
// external collaborator from the CRM core's point of view: the core only
// consumes the opaque "is this request an authenticated admin" outcome.
package adminauth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"clienthub/internal/platform/middleware"
	dErrors "clienthub/pkg/domain-errors"
)

// Config holds the static admin credential and token settings.
type Config struct {
	Username     string
	PasswordHash string // bcrypt hash; empty disables login entirely
	SigningKey   string
	SessionTTL   time.Duration
}

// Service issues and validates admin session tokens.
type Service struct {
	cfg    Config
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs an admin auth service.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{cfg: cfg, logger: logger, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the static admin credential and returns a signed session
// token. Failures are uniform: callers cannot distinguish a wrong username
// from a wrong password.
func (s *Service) Login(username, password string) (string, error) {
	if s.cfg.PasswordHash == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "admin login is disabled")
	}
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.clock()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		Issuer:    "clienthub",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return signed, nil
}

// ValidateToken checks an admin session token and returns its claims.
// Implements middleware.TokenValidator.
func (s *Service) ValidateToken(tokenString string) (*middleware.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &middleware.AdminClaims{Username: claims.Subject}, nil
}
