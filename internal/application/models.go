package application

import "time"

// Principal is the resolved identity invoking a service method. Services
// never look identities up themselves; callers resolve the token and pass
// the principal in explicitly.
type Principal struct {
	UserID string
	Email  string
}

// ReservationInput carries caller provided reservation fields. Start and End
// stay raw strings until the validator has parsed them.
type ReservationInput struct {
	Title       string
	Description string
	Start       string
	End         string
}

// Reservation is a booked interval as exposed to callers. OwnerEmail is
// populated on listings only.
type Reservation struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	OwnerID     string
	OwnerEmail  string
	CreatedAt   time.Time
}

// User is an account as exposed to callers.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is an issued bearer token with its validity window.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Email    string
	Password string
}

// AuthenticateParams captures the data required to log in.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User    User
	Session Session
}
