// Package session holds the locally stored login session: the bearer
// token the API client attaches to every call, plus the identity
// claims decoded from it for display and expiry gating.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNotLoggedIn indicates no session is stored.
	ErrNotLoggedIn = errors.New("not logged in (run: gigdesk login)")

	// ErrExpired indicates the stored token's exp claim has passed.
	ErrExpired = errors.New("session expired (run: gigdesk login)")
)

// Session is one stored login.
type Session struct {
	Token     string
	AccountID string
	Name      string
	Role      domain.Role
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Parse decodes the token's claims without verifying the signature:
// the backend is the verifier, the client only needs identity for
// display and expiry for failing fast before a doomed request.
func Parse(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	s := &Session{Token: token}
	if sub, err := claims.GetSubject(); err == nil {
		s.AccountID = sub
	}
	if name, ok := claims["name"].(string); ok {
		s.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = domain.Role(role)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// Expired reports whether the session's exp claim has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
