package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/cache"
	"github.com/accountd/accountd/internal/metrics"
	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// Service errors.
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService handles account business logic.
type UserService struct {
	repo     *repository.Repository
	cache    *cache.Cache
	metrics  metrics.Recorder
	tokenTTL time.Duration
	tokenEnv string
}

// NewUserService creates a new UserService.
// tokenTTL of zero means issued tokens never expire.
func NewUserService(repo *repository.Repository, cacheClient *cache.Cache, recorder metrics.Recorder, tokenTTL time.Duration, tokenEnv string) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:     repo,
		cache:    cacheClient,
		metrics:  recorder,
		tokenTTL: tokenTTL,
		tokenEnv: tokenEnv,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := normalizeEmail(input.Email)

	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// IssueTokenInput defines input for issuing an access token.
type IssueTokenInput struct {
	Email    string
	Password string
}

// IssuedToken pairs a stored token with its plaintext form.
// The plaintext is returned to the client once and never persisted.
type IssuedToken struct {
	Plaintext string
	Token     *model.Token
}

// IssueToken verifies credentials and mints a new opaque access token.
// Unknown email and wrong password both return ErrInvalidCredentials
// so the endpoint cannot be used to enumerate accounts.
func (s *UserService) IssueToken(ctx context.Context, input IssueTokenInput) (*IssuedToken, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveLoginDuration(time.Since(start))
	}()

	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	generated, err := auth.GenerateToken(s.tokenEnv)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	token := &model.Token{
		ID:          ulid.Make().String(),
		UserID:      user.ID,
		TokenHash:   generated.Hash,
		TokenPrefix: generated.Prefix,
		Scopes:      []string{model.ScopeRead, model.ScopeWrite},
		CreatedAt:   time.Now().UTC(),
	}

	if s.tokenTTL > 0 {
		expiresAt := token.CreatedAt.Add(s.tokenTTL)
		token.ExpiresAt = &expiresAt
	}

	if err := s.repo.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	s.metrics.IncTokenIssued()

	return &IssuedToken{
		Plaintext: generated.Plaintext,
		Token:     token,
	}, nil
}

// Profile retrieves the account for an authenticated user.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// UpdateProfileInput defines input for a partial profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID   string
	Name     *string
	Password *string
}

// UpdateProfile applies a partial update to the authenticated user's account.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if err := ValidateName(*input.Name); err != nil {
			return nil, err
		}
		user.Name = *input.Name
	}

	if input.Password != nil {
		if err := ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.metrics.IncProfileUpdated()

	return user, nil
}

// ListTokens returns the user's active tokens, newest first. Secrets are
// never part of the result; only prefixes and metadata.
func (s *UserService) ListTokens(ctx context.Context, userID string) ([]*model.Token, error) {
	tokens, err := s.repo.GetTokensByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken revokes a single token and drops its cached auth context.
func (s *UserService) RevokeToken(ctx context.Context, tokenID, plaintext string) error {
	if err := s.repo.RevokeToken(ctx, tokenID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil // Already revoked
		}
		return fmt.Errorf("revoke token: %w", err)
	}

	if plaintext != "" {
		// Best effort; the cache entry expires on its own TTL anyway
		_ = s.cache.DeleteAuthContext(ctx, auth.QuickHash(plaintext))
	}

	s.metrics.IncTokenRevoked()

	return nil
}

// RevokeAllTokens revokes every active token for a user ("log out everywhere").
// Cached auth contexts for other sessions expire within the cache TTL.
func (s *UserService) RevokeAllTokens(ctx context.Context, userID, currentPlaintext string) error {
	if err := s.repo.RevokeTokensByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}

	if currentPlaintext != "" {
		_ = s.cache.DeleteAuthContext(ctx, auth.QuickHash(currentPlaintext))
	}

	s.metrics.IncTokenRevoked()

	return nil
}

// normalizeEmail lowercases and trims an email for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
