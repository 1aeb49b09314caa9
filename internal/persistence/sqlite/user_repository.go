package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// CreateUser inserts a new account. Emails are stored lowercased so the
// UNIQUE constraint enforces case-insensitive uniqueness.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := s.pool.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		user.ID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		encodeTime(user.CreatedAt),
	)
	return mapError(err)
}

// GetUser retrieves an account by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	row := s.pool.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves an account by email, case-insensitively.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	row := s.pool.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func scanUser(row *sql.Row) (persistence.User, error) {
	var (
		user  persistence.User
		atStr string
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &atStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, mapError(err)
	}

	var err error
	if user.CreatedAt, err = decodeTime(atStr); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}
