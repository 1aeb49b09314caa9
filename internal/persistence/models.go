package persistence

import "time"

// User is an account able to authenticate and own reservations.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Reservation is one booked interval of the shared room.
//
// OwnerEmail is a read-side convenience populated only by ListReservations,
// which joins the owning user; other lookups leave it empty.
type Reservation struct {
	ID          string
	Title       string
	Description *string
	Start       time.Time
	End         time.Time
	OwnerID     string
	OwnerEmail  string
	CreatedAt   time.Time
}

// ReservationFields carries the mutable subset of a reservation. ID, OwnerID
// and CreatedAt are never rewritten by an update.
type ReservationFields struct {
	Title       string
	Description *string
	Start       time.Time
	End         time.Time
}

// Session is an issued bearer token with its validity window.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
