package repository

import (
	"context"
	"database/sql"
	"errors"

	"gamecafe/backend/services/coordinator/internal/models"
)

// ErrUserNotFound signals a missing user row.
var ErrUserNotFound = errors.New("repository: user not found")

// UserRepository reads café accounts from Postgres.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns the repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername returns the account for a username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, account_balance, role, is_active, created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AccountBalance,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
