package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/malo-martiniani/reservation-salles/internal/persistence"
	"github.com/malo-martiniani/reservation-salles/internal/persistence/sqlite"
)

// SQLiteHarness exposes repositories backed by a temporary, migrated SQLite
// file for integration-style persistence tests.
type SQLiteHarness struct {
	Users        persistence.UserRepository
	Reservations persistence.ReservationRepository
	Sessions     persistence.SessionRepository

	cleanup func()
}

// Close releases the underlying storage. It is also registered as a test
// cleanup, so calling it is optional.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens and migrates a throwaway database under the test's
// temporary directory.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "reservations.db")

	storage, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Users:        storage,
		Reservations: storage,
		Sessions:     storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
