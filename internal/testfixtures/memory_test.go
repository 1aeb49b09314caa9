package testfixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

func TestMemoryStoreRejectsOverlappingReservations(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	existing := NewReservationFixture()
	if _, err := store.CreateReservation(ctx, existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clashing := NewReservationFixture(WithSlot(
		existing.Start.Add(30*time.Minute),
		existing.End.Add(30*time.Minute),
	))
	if _, err := store.CreateReservation(ctx, clashing); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	adjacent := NewReservationFixture(WithSlot(existing.End, existing.End.Add(time.Hour)))
	if _, err := store.CreateReservation(ctx, adjacent); err != nil {
		t.Fatalf("back-to-back reservation rejected: %v", err)
	}
}

func TestMemoryStoreUpdateExcludesSelfFromOverlapCheck(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	reservation := NewReservationFixture()
	if _, err := store.CreateReservation(ctx, reservation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := persistence.ReservationFields{
		Title: "Shifted",
		Start: reservation.Start.Add(15 * time.Minute),
		End:   reservation.End.Add(15 * time.Minute),
	}
	if err := store.UpdateReservationFields(ctx, reservation.ID, fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryStoreListJoinsOwnerEmails(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	owner := NewUserFixture()
	reservation := NewReservationFixture(WithOwner(owner.ID))
	store.Seed([]persistence.User{owner}, []persistence.Reservation{reservation}, nil)

	listed, err := store.ListReservations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].OwnerEmail != owner.Email {
		t.Fatalf("unexpected listing %+v", listed)
	}
}
