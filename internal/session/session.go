// Package session holds the authenticated identity for one credential. It
// replaces ambient token lookup: the REST client and push channel manager
// receive a *Session explicitly, and logout clears every field at once.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/legalconnect/consult-client/internal/model"
)

// ErrNoSession signals that no login is stored.
var ErrNoSession = errors.New("no saved session")

type Session struct {
	Token     string
	UserID    int64
	Role      string
	Username  string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"userId"`
	UserType string `json:"userType"`
}

// FromToken builds a session from a bearer token issued by the platform. The
// claims are read without signature verification: the client never holds the
// signing secret, and the backend re-validates the token on every call.
func FromToken(token string) (*Session, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse credential token: %w", err)
	}

	if claims.UserID == 0 {
		return nil, fmt.Errorf("credential token is missing the userId claim")
	}
	if claims.UserType != model.RoleUser && claims.UserType != model.RoleLawyer {
		return nil, fmt.Errorf("credential token has invalid userType %q", claims.UserType)
	}

	s := &Session{
		Token:    token,
		UserID:   claims.UserID,
		Role:     claims.UserType,
		Username: claims.Subject,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}

	return s, nil
}

func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// CounterpartRole is the role of the other party in this session's cases.
func (s *Session) CounterpartRole() string {
	return model.CounterpartRole(s.Role)
}

// Clear wipes the session in place. Matches the logout semantics of the
// platform: the whole identity goes at once, never field by field.
func (s *Session) Clear() {
	*s = Session{}
}
