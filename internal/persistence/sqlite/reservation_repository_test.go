package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
	"github.com/malo-martiniani/reservation-salles/internal/testfixtures"
)

func seedOwner(t *testing.T, harness *testfixtures.SQLiteHarness) persistence.User {
	t.Helper()

	owner := testfixtures.NewUserFixture()
	if err := harness.Users.CreateUser(context.Background(), owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	return owner
}

func TestReservationRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	description := "quarterly planning"
	reservation := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	reservation.Description = &description

	created, err := harness.Reservations.CreateReservation(ctx, reservation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != reservation.ID {
		t.Fatalf("unexpected id %q", created.ID)
	}

	stored, err := harness.Reservations.GetReservation(ctx, reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != reservation.Title || stored.OwnerID != owner.ID {
		t.Fatalf("unexpected record %+v", stored)
	}
	if stored.Description == nil || *stored.Description != description {
		t.Fatalf("expected description round trip, got %v", stored.Description)
	}
	if !stored.Start.Equal(reservation.Start) || !stored.End.Equal(reservation.End) {
		t.Fatalf("unexpected interval %v - %v", stored.Start, stored.End)
	}
	if stored.OwnerEmail != "" {
		t.Fatalf("GetReservation should not join owner email, got %q", stored.OwnerEmail)
	}
}

func TestReservationRepositoryRejectsOverlapInTransaction(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	existing := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	if _, err := harness.Reservations.CreateReservation(ctx, existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clashing := testfixtures.NewReservationFixture(
		testfixtures.WithOwner(owner.ID),
		testfixtures.WithSlot(existing.Start.Add(30*time.Minute), existing.End.Add(30*time.Minute)),
	)
	if _, err := harness.Reservations.CreateReservation(ctx, clashing); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	if _, err := harness.Reservations.GetReservation(ctx, clashing.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("clashing reservation must not be persisted, got %v", err)
	}
}

func TestReservationRepositoryAllowsTouchingIntervals(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	first := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	if _, err := harness.Reservations.CreateReservation(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adjacent := testfixtures.NewReservationFixture(
		testfixtures.WithOwner(owner.ID),
		testfixtures.WithSlot(first.End, first.End.Add(time.Hour)),
	)
	if _, err := harness.Reservations.CreateReservation(ctx, adjacent); err != nil {
		t.Fatalf("back-to-back reservation rejected: %v", err)
	}
}

func TestReservationRepositoryUpdateFields(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	reservation := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	if _, err := harness.Reservations.CreateReservation(ctx, reservation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shifting a reservation within its own slot must not trip the overlap
	// re-check against itself.
	fields := persistence.ReservationFields{
		Title: "Renamed",
		Start: reservation.Start.Add(15 * time.Minute),
		End:   reservation.End.Add(15 * time.Minute),
	}
	if err := harness.Reservations.UpdateReservationFields(ctx, reservation.ID, fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := harness.Reservations.GetReservation(ctx, reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Renamed" || !stored.Start.Equal(fields.Start) || !stored.End.Equal(fields.End) {
		t.Fatalf("unexpected record %+v", stored)
	}
	if stored.Description != nil {
		t.Fatalf("expected description cleared, got %v", *stored.Description)
	}
	if stored.OwnerID != owner.ID || !stored.CreatedAt.Equal(reservation.CreatedAt) {
		t.Fatalf("owner or creation time mutated: %+v", stored)
	}
}

func TestReservationRepositoryUpdateRejectsOverlapWithOthers(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	first := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	second := testfixtures.NewReservationFixture(
		testfixtures.WithOwner(owner.ID),
		testfixtures.WithSlot(first.End.Add(time.Hour), first.End.Add(2*time.Hour)),
	)
	for _, reservation := range []persistence.Reservation{first, second} {
		if _, err := harness.Reservations.CreateReservation(ctx, reservation); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	fields := persistence.ReservationFields{Title: second.Title, Start: first.Start, End: first.End}
	if err := harness.Reservations.UpdateReservationFields(ctx, second.ID, fields); !errors.Is(err, persistence.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestReservationRepositoryUpdateMissing(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)

	fields := persistence.ReservationFields{
		Title: "Ghost",
		Start: testfixtures.ReferenceTime(),
		End:   testfixtures.ReferenceTime().Add(time.Hour),
	}
	if err := harness.Reservations.UpdateReservationFields(context.Background(), "ghost", fields); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReservationRepositoryDelete(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	reservation := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	if _, err := harness.Reservations.CreateReservation(ctx, reservation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := harness.Reservations.DeleteReservation(ctx, reservation.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := harness.Reservations.DeleteReservation(ctx, reservation.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestReservationRepositoryListJoinsOwnersInStartOrder(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	later := testfixtures.NewReservationFixture(
		testfixtures.WithOwner(owner.ID),
		testfixtures.WithTitle("Afternoon"),
	)
	earlier := testfixtures.NewReservationFixture(
		testfixtures.WithOwner(owner.ID),
		testfixtures.WithTitle("Morning"),
		testfixtures.WithSlot(later.Start.Add(-3*time.Hour), later.Start.Add(-2*time.Hour)),
	)
	for _, reservation := range []persistence.Reservation{later, earlier} {
		if _, err := harness.Reservations.CreateReservation(ctx, reservation); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	reservations, err := harness.Reservations.ListReservations(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(reservations))
	}
	if reservations[0].ID != earlier.ID || reservations[1].ID != later.ID {
		t.Fatalf("unexpected order: %q before %q", reservations[0].ID, reservations[1].ID)
	}
	for _, reservation := range reservations {
		if reservation.OwnerEmail != owner.Email {
			t.Fatalf("expected owner email %q, got %q", owner.Email, reservation.OwnerEmail)
		}
	}
}

func TestExistsOverlapHalfOpenBoundaries(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	owner := seedOwner(t, harness)

	reservation := testfixtures.NewReservationFixture(testfixtures.WithOwner(owner.ID))
	if _, err := harness.Reservations.CreateReservation(ctx, reservation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		exclude    string
		want       bool
	}{
		{"same slot", reservation.Start, reservation.End, "", true},
		{"overlapping tail", reservation.Start.Add(30 * time.Minute), reservation.End.Add(30 * time.Minute), "", true},
		{"touching end", reservation.End, reservation.End.Add(time.Hour), "", false},
		{"touching start", reservation.Start.Add(-time.Hour), reservation.Start, "", false},
		{"excluded self", reservation.Start, reservation.End, reservation.ID, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := harness.Reservations.ExistsOverlap(ctx, tc.start, tc.end, tc.exclude)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ExistsOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}
