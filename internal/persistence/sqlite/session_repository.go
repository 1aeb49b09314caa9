package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// CreateSession stores a newly issued session token.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.ID == "" || session.Token == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}

	_, err := s.pool.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		session.ID,
		session.UserID,
		session.Token,
		encodeTime(session.ExpiresAt),
		encodeTime(session.CreatedAt),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// GetSession retrieves a session by its token.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	if token == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	row := s.pool.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, expires_at, created_at, revoked_at
		FROM sessions
		WHERE token = ?`, token)

	var (
		session          persistence.Session
		expiresStr, atStr string
		revokedStr       sql.NullString
	)
	if err := row.Scan(&session.ID, &session.UserID, &session.Token, &expiresStr, &atStr, &revokedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, mapError(err)
	}

	var err error
	if session.ExpiresAt, err = decodeTime(expiresStr); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = decodeTime(atStr); err != nil {
		return persistence.Session{}, err
	}
	if revokedStr.Valid {
		revokedAt, err := decodeTime(revokedStr.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &revokedAt
	}

	return session, nil
}

// RevokeSession marks a session as revoked.
func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	if token == "" {
		return persistence.ErrNotFound
	}

	result, err := s.pool.db.ExecContext(ctx,
		"UPDATE sessions SET revoked_at = ? WHERE token = ?",
		encodeTime(revokedAt), token)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions whose expiry is at or before the
// reference time.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := s.pool.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?",
		encodeTime(reference))
	return mapError(err)
}
