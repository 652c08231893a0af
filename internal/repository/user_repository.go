package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// User represents a row in the users table.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserRepository provides CRUD access to the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, name, password_hash, role, is_active, created_at, updated_at"

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, role, is_active) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.IsActive,
	)
	return ParseDBError(err)
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if err != nil {
		return nil, ParseDBError(err)
	}
	return &user, nil
}

// GetByEmail returns the user with the given email, or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if err != nil {
		return nil, ParseDBError(err)
	}
	return &user, nil
}

// List returns a page of users ordered by creation time.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, ParseDBError(err)
	}
	return users, nil
}

// Count returns the total number of user rows.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users")
	if err != nil {
		return 0, ParseDBError(err)
	}
	return total, nil
}

// Update persists the mutable fields of an existing user row.
// Returns ErrNotFound if no row matched.
func (r *UserRepository) Update(ctx context.Context, user *User) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = ?, name = ?, password_hash = ?, role = ?, is_active = ? WHERE id = ?",
		user.Email, user.Name, user.PasswordHash, user.Role, user.IsActive, user.ID,
	)
	if err != nil {
		return ParseDBError(err)
	}

	// MySQL reports zero affected rows for a no-op update of an existing
	// row, so only a missing row is treated as not found.
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		if _, getErr := r.GetByID(ctx, user.ID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// Delete removes the user with the given id.
// Returns ErrNotFound if no row matched.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return ParseDBError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ParseDBError(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
