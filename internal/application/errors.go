package application

import "errors"

var (
	// ErrForbidden is returned when the acting principal does not own the
	// reservation it is trying to mutate.
	ErrForbidden = errors.New("application: forbidden")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrOverlap is returned when a requested interval collides with an
	// existing reservation.
	ErrOverlap = errors.New("application: overlapping reservation")
	// ErrAlreadyExists is returned when an account with the same email exists.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned for unknown accounts or wrong passwords.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrUnauthenticated is returned when no valid session backs a request.
	ErrUnauthenticated = errors.New("application: unauthenticated")
	// ErrSessionExpired is returned when the presented session has expired.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when the presented session was revoked.
	ErrSessionRevoked = errors.New("application: session revoked")
)
