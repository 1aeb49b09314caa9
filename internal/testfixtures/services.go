package testfixtures

import (
	"log/slog"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/application"
)

// ServiceFactory builds application services with deterministic clocks and
// identifier sequences.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Tokens      *IDGenerator
}

// NewServiceFactory returns a factory seeded with ReferenceTime and simple
// counting generators.
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Tokens:      NewIDGenerator("token"),
	}
}

// NewReservationService builds a reservation service over the given
// repository using the factory's clock and identifiers.
func (f *ServiceFactory) NewReservationService(reservations application.ReservationRepository, logger *slog.Logger) *application.ReservationService {
	return application.NewReservationServiceWithLogger(reservations, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), logger)
}

// NewAuthService builds an auth service over the given stores using the
// factory's clock, identifiers and token sequence.
func (f *ServiceFactory) NewAuthService(users application.UserStore, sessions application.SessionStore, sessionTTL time.Duration, logger *slog.Logger) *application.AuthService {
	return application.NewAuthServiceWithLogger(users, sessions, f.Tokens.NextFunc(), f.IDGenerator.NextFunc(), f.Clock.NowFunc(), sessionTTL, logger)
}
