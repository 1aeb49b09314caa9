package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// CreateReservation inserts a reservation after re-checking the overlap
// predicate inside the same transaction. The re-check closes the gap between
// the caller's pre-flight conflict query and the write.
func (s *Storage) CreateReservation(ctx context.Context, reservation persistence.Reservation) (persistence.Reservation, error) {
	if reservation.ID == "" {
		return persistence.Reservation{}, persistence.ErrConstraintViolation
	}

	err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		conflict, err := overlapExistsTx(tx, reservation.Start, reservation.End, "")
		if err != nil {
			return err
		}
		if conflict {
			return persistence.ErrOverlap
		}

		_, err = tx.Exec(`
			INSERT INTO reservations (id, title, description, start_time, end_time, owner_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			reservation.ID,
			reservation.Title,
			nullString(reservation.Description),
			encodeTime(reservation.Start),
			encodeTime(reservation.End),
			reservation.OwnerID,
			encodeTime(reservation.CreatedAt),
		)
		return mapError(err)
	})
	if err != nil {
		return persistence.Reservation{}, err
	}

	return reservation, nil
}

// GetReservation retrieves a reservation by ID. OwnerEmail is not populated.
func (s *Storage) GetReservation(ctx context.Context, id string) (persistence.Reservation, error) {
	if id == "" {
		return persistence.Reservation{}, persistence.ErrNotFound
	}

	row := s.pool.db.QueryRowContext(ctx, `
		SELECT id, title, description, start_time, end_time, owner_id, created_at
		FROM reservations
		WHERE id = ?`, id)

	reservation, err := scanReservation(row.Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Reservation{}, persistence.ErrNotFound
		}
		return persistence.Reservation{}, mapError(err)
	}
	return reservation, nil
}

// UpdateReservationFields rewrites the mutable fields of a reservation,
// re-checking the overlap predicate (excluding the reservation itself) inside
// the write transaction. Owner, ID and creation time are left untouched.
func (s *Storage) UpdateReservationFields(ctx context.Context, id string, fields persistence.ReservationFields) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		conflict, err := overlapExistsTx(tx, fields.Start, fields.End, id)
		if err != nil {
			return err
		}
		if conflict {
			return persistence.ErrOverlap
		}

		result, err := tx.Exec(`
			UPDATE reservations
			SET title = ?, description = ?, start_time = ?, end_time = ?
			WHERE id = ?`,
			fields.Title,
			nullString(fields.Description),
			encodeTime(fields.Start),
			encodeTime(fields.End),
			id,
		)
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
	})
}

// DeleteReservation removes a reservation by ID.
func (s *Storage) DeleteReservation(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := s.pool.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
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

// ListReservations returns every reservation joined with its owner's email,
// ordered by start time ascending.
func (s *Storage) ListReservations(ctx context.Context) ([]persistence.Reservation, error) {
	rows, err := s.pool.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.description, r.start_time, r.end_time, r.owner_id, r.created_at, u.email
		FROM reservations r
		INNER JOIN users u ON u.id = r.owner_id
		ORDER BY r.start_time ASC, r.id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reservations []persistence.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows.Scan, true)
		if err != nil {
			return nil, mapError(err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return reservations, nil
}

// ExistsOverlap reports whether any persisted reservation shares an instant
// with [start, end), optionally excluding one reservation by ID.
func (s *Storage) ExistsOverlap(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE start_time < ? AND end_time > ?`
	args := []any{encodeTime(end), encodeTime(start)}

	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}

	var count int
	if err := s.pool.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

func overlapExistsTx(tx *sql.Tx, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE start_time < ? AND end_time > ?`
	args := []any{encodeTime(end), encodeTime(start)}

	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}

	var count int
	if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// scanReservation decodes one reservation row. When withEmail is set the row
// is expected to carry the owner email as its final column.
func scanReservation(scan func(dest ...any) error, withEmail bool) (persistence.Reservation, error) {
	var (
		reservation             persistence.Reservation
		description             sql.NullString
		startStr, endStr, atStr string
	)

	dest := []any{
		&reservation.ID,
		&reservation.Title,
		&description,
		&startStr,
		&endStr,
		&reservation.OwnerID,
		&atStr,
	}
	if withEmail {
		dest = append(dest, &reservation.OwnerEmail)
	}

	if err := scan(dest...); err != nil {
		return persistence.Reservation{}, err
	}

	reservation.Description = fromNullString(description)

	var err error
	if reservation.Start, err = decodeTime(startStr); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.End, err = decodeTime(endStr); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.CreatedAt, err = decodeTime(atStr); err != nil {
		return persistence.Reservation{}, err
	}

	return reservation, nil
}
