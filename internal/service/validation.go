// Package service provides business logic for the application.
package service

import (
	"errors"
	"regexp"
	"unicode"
)

// Validation limits.
const (
	// MaxEmailLength is the maximum length for an email address (RFC 5321).
	MaxEmailLength = 254

	// MinPasswordLength is the minimum length for a password.
	MinPasswordLength = 6

	// MaxPasswordLength is the maximum length for a password.
	// Bounded to keep Argon2id hashing cost predictable.
	MaxPasswordLength = 128

	// MaxNameLength is the maximum length for a display name.
	MaxNameLength = 100
)

// Validation errors.
var (
	ErrInvalidEmail     = errors.New("email address is invalid")
	ErrEmailTooLong     = errors.New("email address exceeds maximum length")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password exceeds maximum length")
	ErrNameTooLong      = errors.New("name exceeds maximum length")
	ErrNameInvalid      = errors.New("name contains control characters")
)

// emailPattern is a pragmatic email check; full RFC 5322 validation is not
// attempted. The database unique index is the real gatekeeper.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)+$`)

// ValidateEmail validates an email address for registration.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}

	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}

	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates a plaintext password before hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}

// ValidateName validates a display name. Empty names are allowed.
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return ErrNameInvalid
		}
	}

	return nil
}
