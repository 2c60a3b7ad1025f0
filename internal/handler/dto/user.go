// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/accountd/accountd/internal/model"
)

// CreateUserRequest represents the request body for registering an account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// TokenRequest represents the request body for issuing an access token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the request body for a partial profile
// update. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse represents a full account in API responses.
// The password hash is never exposed here.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse represents the authenticated user's own profile.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenResponse carries a freshly issued plaintext token. This is the
// only place the plaintext ever appears.
type TokenResponse struct {
	Token string `json:"token"`
}

// TokenInfoResponse represents token metadata without the secret.
type TokenInfoResponse struct {
	ID         string     `json:"id"`
	Prefix     string     `json:"prefix"`
	Scopes     []string   `json:"scopes"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToProfileResponse converts a User model to ProfileResponse DTO.
func ToProfileResponse(user *model.User) *ProfileResponse {
	return &ProfileResponse{
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToTokenInfoResponse converts a Token model to TokenInfoResponse DTO.
func ToTokenInfoResponse(token *model.Token) *TokenInfoResponse {
	return &TokenInfoResponse{
		ID:         token.ID,
		Prefix:     token.TokenPrefix,
		Scopes:     token.Scopes,
		ExpiresAt:  token.ExpiresAt,
		LastUsedAt: token.LastUsedAt,
		CreatedAt:  token.CreatedAt,
	}
}
