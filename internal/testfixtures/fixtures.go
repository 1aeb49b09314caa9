package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

var (
	userCounter        uint64
	reservationCounter uint64
	sessionCounter     uint64
)

// referenceTime is a Monday morning at opening time, far enough in the future
// that past-rejection checks never trip on fixture data.
var referenceTime = time.Date(2030, time.January, 7, 8, 0, 0, 0, time.Local)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption overrides fields of a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	user := persistence.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    referenceTime.Add(-time.Duration(idx) * time.Hour),
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithEmail overrides the fixture email.
func WithEmail(email string) UserOption {
	return func(user *persistence.User) {
		user.Email = email
	}
}

// WithPasswordHash overrides the fixture password hash.
func WithPasswordHash(hash string) UserOption {
	return func(user *persistence.User) {
		user.PasswordHash = hash
	}
}

// ReservationOption overrides fields of a generated reservation fixture.
type ReservationOption func(*persistence.Reservation)

// NewReservationFixture returns a deterministic one-hour reservation. Each
// call books the hour after the previous fixture so defaults never collide.
func NewReservationFixture(opts ...ReservationOption) persistence.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	reservation := persistence.Reservation{
		ID:        fmt.Sprintf("reservation-%03d", idx),
		Title:     fmt.Sprintf("Meeting %03d", idx),
		Start:     start,
		End:       start.Add(time.Hour),
		OwnerID:   "user-001",
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&reservation)
	}
	return reservation
}

// WithOwner overrides the fixture owner.
func WithOwner(ownerID string) ReservationOption {
	return func(reservation *persistence.Reservation) {
		reservation.OwnerID = ownerID
	}
}

// WithSlot overrides the fixture interval.
func WithSlot(start, end time.Time) ReservationOption {
	return func(reservation *persistence.Reservation) {
		reservation.Start = start
		reservation.End = end
	}
}

// WithTitle overrides the fixture title.
func WithTitle(title string) ReservationOption {
	return func(reservation *persistence.Reservation) {
		reservation.Title = title
	}
}

// SessionOption overrides fields of a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic unexpired session.
func NewSessionFixture(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		UserID:    "user-001",
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionUser overrides the session owner.
func WithSessionUser(userID string) SessionOption {
	return func(session *persistence.Session) {
		session.UserID = userID
	}
}

// WithExpiry overrides the session expiry.
func WithExpiry(expiresAt time.Time) SessionOption {
	return func(session *persistence.Session) {
		session.ExpiresAt = expiresAt
	}
}
