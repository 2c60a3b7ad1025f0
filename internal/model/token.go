// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// Scope constants for token authorization.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

// ValidScopes contains all valid scope values.
var ValidScopes = []string{ScopeRead, ScopeWrite}

// Token represents an opaque access token bound to a user.
// Only the Argon2id hash of the token is stored; the plaintext is
// returned once at issuance and never again.
type Token struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TokenHash   string     `json:"-"` // Never serialize
	TokenPrefix string     `json:"token_prefix"`
	Scopes      []string   `json:"scopes"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsRevoked returns true if the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has an expiry in the past.
func (t *Token) IsExpired() bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now())
}

// HasScope checks if the token carries a specific scope.
func (t *Token) HasScope(scope string) bool {
	return slices.Contains(t.Scopes, scope)
}

// AuthContext holds the authenticated identity for a request.
// It is injected into the request context by the auth middleware.
type AuthContext struct {
	TokenID     string
	TokenPrefix string
	UserID      string
	Scopes      []string
}

// HasScope checks if the auth context carries a specific scope.
func (a *AuthContext) HasScope(scope string) bool {
	return slices.Contains(a.Scopes, scope)
}
