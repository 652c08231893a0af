package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avdwerf/userbase/internal/apperrors"
	"github.com/avdwerf/userbase/internal/repository"
)

// stubStore is an in-memory UserStore for tests. Error fields, when
// set, are returned instead of touching the map.
type stubStore struct {
	users     map[string]*repository.User
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
}

func newStubStore() *stubStore {
	return &stubStore{users: map[string]*repository.User{}}
}

func (s *stubStore) Create(_ context.Context, user *repository.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *stubStore) GetByID(_ context.Context, id string) (*repository.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubStore) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) List(_ context.Context, limit, offset int) ([]repository.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]repository.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) Count(_ context.Context) (int64, error) {
	if s.listErr != nil {
		return 0, s.listErr
	}
	return int64(len(s.users)), nil
}

func (s *stubStore) Update(_ context.Context, user *repository.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func validInput() CreateUserInput {
	return CreateUserInput{
		Email:    "jane@example.test",
		Name:     "Jane Doe",
		Password: "correct-horse",
	}
}

func TestCreateUser(t *testing.T) {
	svc := NewUserService(newStubStore())

	user, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@example.test", user.Email)
	assert.Equal(t, RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateUserInput)
	}{
		{"missing at sign", func(in *CreateUserInput) { in.Email = "janeexample.test" }},
		{"empty name", func(in *CreateUserInput) { in.Name = "  " }},
		{"short password", func(in *CreateUserInput) { in.Password = "short" }},
		{"unknown role", func(in *CreateUserInput) { in.Role = "root" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(newStubStore())
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), input)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newStubStore())
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput())

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "jane@example.test")
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(newStubStore())

	_, err := svc.Get(context.Background(), "abc-123")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Equal(t, "User with id abc-123 not found", appErr.Message)
}

func TestGetUserStoreFailure(t *testing.T) {
	store := newStubStore()
	store.getErr = assert.AnError
	svc := NewUserService(store)

	_, err := svc.Get(context.Background(), "any")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabase, appErr.Code)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestListUsers(t *testing.T) {
	svc := NewUserService(newStubStore())
	for i := 0; i < 3; i++ {
		input := validInput()
		input.Email = fmt.Sprintf("user%d@example.com", i)
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}

	users, total, err := svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), total)
}

func TestListUsersStoreFailure(t *testing.T) {
	store := newStubStore()
	store.listErr = assert.AnError
	svc := NewUserService(store)

	_, _, err := svc.List(context.Background(), 20, 0)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabase, appErr.Code)
}

func TestUpdateUser(t *testing.T) {
	svc := NewUserService(newStubStore())
	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	name := "Jane Q. Doe"
	active := false
	updated, err := svc.Update(context.Background(), created.ID, UpdateUserInput{Name: &name, IsActive: &active})
	require.NoError(t, err)

	assert.Equal(t, "Jane Q. Doe", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.Email, updated.Email)
}

func TestUpdateUserNoFields(t *testing.T) {
	svc := NewUserService(newStubStore())

	_, err := svc.Update(context.Background(), "any", UpdateUserInput{})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewUserService(newStubStore())

	name := "Nobody"
	_, err := svc.Update(context.Background(), "ghost", UpdateUserInput{Name: &name})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "ghost")
}

func TestDeleteUser(t *testing.T) {
	svc := NewUserService(newStubStore())
	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.NotFound(""))
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := NewUserService(newStubStore())

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.NotFound(""))
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newStubStore())
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "jane@example.test", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.test", user.Email)
}

func TestAuthenticateFailures(t *testing.T) {
	store := newStubStore()
	svc := NewUserService(store)
	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "jane@example.test", "wrong")
		assert.ErrorIs(t, err, apperrors.Unauthorized(""))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.test", "correct-horse")
		assert.ErrorIs(t, err, apperrors.Unauthorized(""))
	})

	t.Run("deactivated account", func(t *testing.T) {
		active := false
		_, err := svc.Update(context.Background(), created.ID, UpdateUserInput{IsActive: &active})
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), "jane@example.test", "correct-horse")
		assert.ErrorIs(t, err, apperrors.Unauthorized(""))
	})
}
