// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/stayloop/concierge/internal/config"
	"github.com/stayloop/concierge/internal/logging"
	"github.com/stayloop/concierge/internal/metrics"
)

var (
	// ErrInvalidCredentials is returned for a wrong username or password.
	// Both cases return the same error so responses do not leak which
	// part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenRevoked is returned for a structurally valid token that has
	// been logged out.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Service ties credential verification, token issuance, and revocation
// together for the management API.
type Service struct {
	jwt          *JWTManager
	revocations  *RevocationStore
	adminUser    string
	adminPwdHash []byte
}

// NewService builds the auth service. The configured admin password may be
// a bcrypt hash (recognized by its prefix) or plaintext, in which case it
// is hashed once at startup so later comparisons never touch the plaintext.
func NewService(cfg *config.SecurityConfig) (*Service, error) {
	jwtManager, err := NewJWTManager(cfg)
	if err != nil {
		return nil, err
	}

	revocations, err := NewRevocationStore(cfg.SessionStorePath)
	if err != nil {
		return nil, err
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin username and password are required")
	}

	hash := []byte(cfg.AdminPassword)
	if !strings.HasPrefix(cfg.AdminPassword, "$2a$") &&
		!strings.HasPrefix(cfg.AdminPassword, "$2b$") &&
		!strings.HasPrefix(cfg.AdminPassword, "$2y$") {
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		logging.Warn().Msg("Admin password configured as plaintext, prefer a bcrypt hash")
	}

	return &Service{
		jwt:          jwtManager,
		revocations:  revocations,
		adminUser:    cfg.AdminUsername,
		adminPwdHash: hash,
	}, nil
}

// Close releases the revocation store.
func (s *Service) Close() error {
	return s.revocations.Close()
}

// RunStoreGC runs one garbage-collection round on the revocation store.
func (s *Service) RunStoreGC() error {
	return s.revocations.RunGC()
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	pwdErr := bcrypt.CompareHashAndPassword(s.adminPwdHash, []byte(password))
	if !userOK || pwdErr != nil {
		metrics.AuthLoginAttempts.WithLabelValues("failure").Inc()
		logging.Warn().Str("username", username).Msg("Login attempt rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(username, "admin")
	if err != nil {
		metrics.AuthLoginAttempts.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.AuthLoginAttempts.WithLabelValues("success").Inc()
	logging.Info().Str("username", username).Msg("Admin login")
	return token, nil
}

// Logout revokes the given token. Invalid tokens are rejected rather than
// silently ignored so clients learn their session was already dead.
func (s *Service) Logout(tokenString string) error {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	return s.revocations.Revoke(claims)
}

// Verify validates a token and checks it against the revocation store.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
