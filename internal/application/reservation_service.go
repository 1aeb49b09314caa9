package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/booking"
	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// ReservationRepository captures the persistence interactions needed by the
// reservation service.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation persistence.Reservation) (persistence.Reservation, error)
	GetReservation(ctx context.Context, id string) (persistence.Reservation, error)
	UpdateReservationFields(ctx context.Context, id string, fields persistence.ReservationFields) error
	DeleteReservation(ctx context.Context, id string) error
	ListReservations(ctx context.Context) ([]persistence.Reservation, error)
	ExistsOverlap(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
}

// ReservationService orchestrates validation, conflict detection,
// authorization and persistence for reservation operations. It holds no
// cross-request state; every operation re-reads what it needs from the
// repository.
type ReservationService struct {
	reservations ReservationRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewReservationService wires dependencies for reservation operations.
func NewReservationService(reservations ReservationRepository, idGenerator func() string, now func() time.Time) *ReservationService {
	return NewReservationServiceWithLogger(reservations, idGenerator, now, nil)
}

// NewReservationServiceWithLogger constructs a ReservationService with a
// specified logger.
func NewReservationServiceWithLogger(reservations ReservationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ReservationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		reservations: reservations,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// CreateReservation validates the requested interval, rejects conflicts and
// persists the reservation on behalf of the principal.
func (s *ReservationService) CreateReservation(ctx context.Context, principal Principal, input ReservationInput) (Reservation, error) {
	if s == nil {
		return Reservation{}, fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return Reservation{}, fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateReservation", "user_id", principal.UserID)

	interval, err := booking.Validate(booking.Input{
		Title: input.Title,
		Start: input.Start,
		End:   input.End,
	}, s.now())
	if err != nil {
		logger.ErrorContext(ctx, "reservation rejected", "error", err, "error_kind", ErrorKind(err))
		return Reservation{}, err
	}

	conflict, err := s.reservations.ExistsOverlap(ctx, interval.Start, interval.End, "")
	if err != nil {
		logger.ErrorContext(ctx, "conflict query failed", "error", err)
		return Reservation{}, err
	}
	if conflict {
		logger.ErrorContext(ctx, "reservation rejected", "error", ErrOverlap, "error_kind", ErrorKind(ErrOverlap))
		return Reservation{}, ErrOverlap
	}

	candidate := persistence.Reservation{
		ID:          s.idGenerator(),
		Title:       interval.Title,
		Description: optionalText(input.Description),
		Start:       interval.Start,
		End:         interval.End,
		OwnerID:     principal.UserID,
		CreatedAt:   s.now(),
	}

	persisted, err := s.reservations.CreateReservation(ctx, candidate)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to persist reservation", "error", err, "error_kind", ErrorKind(err))
		return Reservation{}, err
	}

	logger.With("reservation_id", persisted.ID).InfoContext(ctx, "reservation created")
	return toReservation(persisted), nil
}

// ListReservations returns every reservation joined with its owner's email,
// ordered by start time ascending. All reservations are visible to any
// authenticated principal.
func (s *ReservationService) ListReservations(ctx context.Context, principal Principal) ([]Reservation, error) {
	if s == nil {
		return nil, fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return nil, fmt.Errorf("reservation repository not configured")
	}

	records, err := s.reservations.ListReservations(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		s.loggerWith(ctx, "ListReservations", "user_id", principal.UserID).
			ErrorContext(ctx, "failed to list reservations", "error", err)
		return nil, err
	}

	reservations := make([]Reservation, 0, len(records))
	for _, record := range records {
		reservations = append(reservations, toReservation(record))
	}
	sort.SliceStable(reservations, func(i, j int) bool {
		if reservations[i].Start.Equal(reservations[j].Start) {
			return reservations[i].ID < reservations[j].ID
		}
		return reservations[i].Start.Before(reservations[j].Start)
	})

	return reservations, nil
}

// UpdateReservation rewrites the mutable fields of an existing reservation
// after checking ownership; id, owner and creation time never change.
func (s *ReservationService) UpdateReservation(ctx context.Context, principal Principal, reservationID string, input ReservationInput) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "UpdateReservation", "user_id", principal.UserID, "reservation_id", reservationID)

	existing, err := s.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to resolve reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := authorizeOwner(principal, existing); err != nil {
		logger.ErrorContext(ctx, "update rejected", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	interval, err := booking.Validate(booking.Input{
		Title: input.Title,
		Start: input.Start,
		End:   input.End,
	}, s.now())
	if err != nil {
		logger.ErrorContext(ctx, "update rejected", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	conflict, err := s.reservations.ExistsOverlap(ctx, interval.Start, interval.End, reservationID)
	if err != nil {
		logger.ErrorContext(ctx, "conflict query failed", "error", err)
		return err
	}
	if conflict {
		logger.ErrorContext(ctx, "update rejected", "error", ErrOverlap, "error_kind", ErrorKind(ErrOverlap))
		return ErrOverlap
	}

	fields := persistence.ReservationFields{
		Title:       interval.Title,
		Description: optionalText(input.Description),
		Start:       interval.Start,
		End:         interval.End,
	}
	if err := s.reservations.UpdateReservationFields(ctx, reservationID, fields); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to persist update", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reservation updated")
	return nil
}

// DeleteReservation removes an existing reservation after checking ownership.
// The removal is hard; no tombstone remains.
func (s *ReservationService) DeleteReservation(ctx context.Context, principal Principal, reservationID string) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}
	if s.reservations == nil {
		return fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteReservation", "user_id", principal.UserID, "reservation_id", reservationID)

	existing, err := s.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to resolve reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := authorizeOwner(principal, existing); err != nil {
		logger.ErrorContext(ctx, "delete rejected", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.reservations.DeleteReservation(ctx, reservationID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reservation deleted")
	return nil
}

// authorizeOwner allows a mutation only for the reservation's owner.
func authorizeOwner(principal Principal, reservation persistence.Reservation) error {
	if reservation.OwnerID != principal.UserID {
		return ErrForbidden
	}
	return nil
}

func toReservation(record persistence.Reservation) Reservation {
	description := ""
	if record.Description != nil {
		description = *record.Description
	}
	return Reservation{
		ID:          record.ID,
		Title:       record.Title,
		Description: description,
		Start:       record.Start,
		End:         record.End,
		OwnerID:     record.OwnerID,
		OwnerEmail:  record.OwnerEmail,
		CreatedAt:   record.CreatedAt,
	}
}

func optionalText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrOverlap):
		return ErrOverlap
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	}
	return err
}
