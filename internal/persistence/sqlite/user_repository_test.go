package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
	"github.com/malo-martiniani/reservation-salles/internal/testfixtures"
)

func TestUserRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture(testfixtures.WithPasswordHash("$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"))
	if err := harness.Users.CreateUser(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := harness.Users.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Email != user.Email || stored.PasswordHash != user.PasswordHash {
		t.Fatalf("unexpected record %+v", stored)
	}
	if !stored.CreatedAt.Equal(user.CreatedAt) {
		t.Fatalf("expected creation time %v, got %v", user.CreatedAt, stored.CreatedAt)
	}
}

func TestUserRepositoryNormalizesEmailLookups(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture(testfixtures.WithEmail("Mixed.Case@Example.com"))
	if err := harness.Users.CreateUser(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := harness.Users.GetUserByEmail(ctx, "  MIXED.case@example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != user.ID {
		t.Fatalf("expected %q, got %q", user.ID, stored.ID)
	}
	if stored.Email != "mixed.case@example.com" {
		t.Fatalf("expected lowercased email, got %q", stored.Email)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	first := testfixtures.NewUserFixture(testfixtures.WithEmail("shared@example.com"))
	if err := harness.Users.CreateUser(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := testfixtures.NewUserFixture(testfixtures.WithEmail("shared@example.com"))
	if err := harness.Users.CreateUser(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepositoryMissingRecords(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	if _, err := harness.Users.GetUser(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := harness.Users.GetUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
