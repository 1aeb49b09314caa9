package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrOverlap is returned when a reservation write would collide with an
	// existing interval. It is raised inside the write transaction, so it is
	// authoritative even when a pre-flight overlap check passed.
	ErrOverlap = errors.New("persistence: overlapping reservation")
	// ErrConstraintViolation is returned for other schema constraint failures.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
