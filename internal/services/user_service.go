// Package services – UserService
//
// This file implements UserService, which owns account registration, profile
// reads and edits, administrator verification, and the user directory used by
// the chat dashboard. Role values are validated against the closed set before
// anything touches the database.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
	BloodGroup  string `json:"blood_group"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// ProfileInput carries the editable profile attributes. Username and role are
// immutable after registration.
type ProfileInput struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	BloodGroup  string `json:"blood_group"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// UserService provides account-level operations.
type UserService struct {
	DB *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a new account. Usernames are unique; the duplicate case is
// reported as ErrUsernameTaken before the insert is attempted, and the unique
// index backstops concurrent registrations.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := requireNonBlank(field{"username", in.Username}); err != nil {
		return nil, err
	}
	if !domain.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := repo.GetUserByUsername(ctx, s.DB, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	u := &domain.User{
		Username:    in.Username,
		Email:       strings.TrimSpace(in.Email),
		Role:        in.Role,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		BloodGroup:  strings.TrimSpace(in.BloodGroup),
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
	}
	if in.DateOfBirth != "" {
		dob, err := parseDate(in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		u.DateOfBirth = &dob
	}

	created, err := repo.CreateUser(ctx, s.DB, u)
	if err != nil {
		if isUniqueConstraint(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

// Get fetches an account by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile replaces the editable profile attributes of an account.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*domain.User, error) {
	fields := map[string]any{
		"email":        strings.TrimSpace(in.Email),
		"phone_number": strings.TrimSpace(in.PhoneNumber),
		"blood_group":  strings.TrimSpace(in.BloodGroup),
		"address":      strings.TrimSpace(in.Address),
		"city":         strings.TrimSpace(in.City),
	}
	if in.DateOfBirth != "" {
		dob, err := parseDate(in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		fields["date_of_birth"] = dob
	}

	if err := repo.UpdateUserProfile(ctx, s.DB, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.GetUser(ctx, s.DB, id)
}

// Verify marks an account as identity-verified. Administrator action.
func (s *UserService) Verify(ctx context.Context, id string) (*domain.User, error) {
	if err := repo.UpdateUserProfile(ctx, s.DB, id, map[string]any{"is_verified": true}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.GetUser(ctx, s.DB, id)
}

// Directory lists every account other than the caller, ordered by username.
func (s *UserService) Directory(ctx context.Context, exceptID string) ([]domain.User, error) {
	return repo.ListUsersExcept(ctx, s.DB, exceptID)
}

// isUniqueConstraint reports whether err is a SQLite unique-index violation.
func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
