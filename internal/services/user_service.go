// Package services provides business logic for the userbase application.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/avdwerf/userbase/internal/repository"
)

// Roles assignable to users.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// UserStore is the persistence interface the user service depends on.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *repository.User) error
	GetByID(ctx context.Context, id string) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	List(ctx context.Context, limit, offset int) ([]repository.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *repository.User) error
	Delete(ctx context.Context, id string) error
}

// UserService handles user-related business logic.
type UserService struct {
	store UserStore
}

// NewUserService creates a new user service instance.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUserInput holds the parameters for creating a user.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UpdateUserInput holds the parameters for a partial user update.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	IsActive *bool
}

// Create creates a new user account. The password is bcrypt-hashed
// before storage; a uniqueness violation surfaces as a conflict.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*repository.User, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("Name must not be empty")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, apperrors.Validationf("Password must be at least %d characters", MinPasswordLength)
	}

	role := input.Role
	if role == "" {
		role = RoleMember
	}
	if role != RoleAdmin && role != RoleMember {
		return nil, apperrors.Validationf("Invalid role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &repository.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, s.mapStoreError(err, user.ID, input.Email)
	}

	return s.Get(ctx, user.ID)
}

// Get returns the user with the given id.
// An absent id surfaces as a not found error naming the id.
func (s *UserService) Get(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, id, "")
	}
	return user, nil
}

// FindByEmail returns the user with the given email address.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.mapStoreError(err, "", email)
	}
	return user, nil
}

// List returns a page of users along with the total count.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]repository.User, int64, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, s.mapStoreError(err, "", "")
	}

	users, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, s.mapStoreError(err, "", "")
	}
	return users, total, nil
}

// Update applies a partial update to an existing user.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*repository.User, error) {
	if input.Email == nil && input.Name == nil && input.IsActive == nil {
		return nil, apperrors.BadRequest("No fields to update")
	}

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, id, "")
	}

	email := user.Email
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
		email = *input.Email
	}
	user.Email = email

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.Validation("Name must not be empty")
		}
		user.Name = *input.Name
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, s.mapStoreError(err, id, email)
	}

	return s.Get(ctx, id)
}

// Delete removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapStoreError(err, id, "")
	}
	return nil
}

// Authenticate verifies a user's credentials and returns the account.
// Any credential failure surfaces as the same unauthorized error to
// avoid leaking which part was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*repository.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, s.mapStoreError(err, "", email)
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	return user, nil
}

// mapStoreError translates repository sentinel errors to application
// errors. Anything unclassifiable becomes a generic database error;
// the underlying error stays attached for the logs.
func (s *UserService) mapStoreError(err error, id, email string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if id != "" {
			return apperrors.NotFoundf("User with id %s not found", id)
		}
		return apperrors.NotFound("User not found")
	case errors.Is(err, repository.ErrDuplicateKey):
		if email != "" {
			return apperrors.Conflict(fmt.Sprintf("User with email %s already exists", email)).Wrap(err)
		}
		return apperrors.Conflict("User already exists").Wrap(err)
	case errors.Is(err, repository.ErrDataTooLong):
		return apperrors.Validation("Field value exceeds maximum length").Wrap(err)
	default:
		return apperrors.Database("Database operation failed").Wrap(err)
	}
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperrors.Validationf("Invalid email address %q", email)
	}
	return nil
}
