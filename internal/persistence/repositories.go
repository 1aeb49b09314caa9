package persistence

import (
	"context"
	"time"
)

// UserRepository exposes account storage operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// ReservationRepository stores booked intervals for the shared room.
//
// CreateReservation and UpdateReservationFields re-check the overlap predicate
// inside their write transaction and return ErrOverlap on collision; callers
// must treat that result exactly like a pre-flight ExistsOverlap hit.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id string) (Reservation, error)
	UpdateReservationFields(ctx context.Context, id string, fields ReservationFields) error
	DeleteReservation(ctx context.Context, id string) error
	ListReservations(ctx context.Context) ([]Reservation, error)
	ExistsOverlap(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
}

// SessionRepository stores issued session tokens.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
