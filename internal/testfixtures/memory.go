package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/booking"
	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// MemoryStore is an in-memory implementation of the persistence repositories,
// for service-level tests that do not need a real database.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[string]persistence.User
	reservations map[string]persistence.Reservation
	sessions     map[string]persistence.Session
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]persistence.User),
		reservations: make(map[string]persistence.Reservation),
		sessions:     make(map[string]persistence.Session),
	}
}

// Seed inserts records directly, bypassing overlap and uniqueness checks.
func (m *MemoryStore) Seed(users []persistence.User, reservations []persistence.Reservation, sessions []persistence.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range users {
		m.users[user.ID] = user
	}
	for _, reservation := range reservations {
		m.reservations[reservation.ID] = reservation
	}
	for _, session := range sessions {
		m.sessions[session.Token] = session
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, user persistence.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return persistence.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (persistence.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (persistence.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (m *MemoryStore) CreateReservation(_ context.Context, reservation persistence.Reservation) (persistence.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, conflict := booking.FirstConflict(m.slotsLocked(), reservation.Start, reservation.End, ""); conflict {
		return persistence.Reservation{}, persistence.ErrOverlap
	}
	m.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (m *MemoryStore) GetReservation(_ context.Context, id string) (persistence.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return persistence.Reservation{}, persistence.ErrNotFound
	}
	return reservation, nil
}

func (m *MemoryStore) UpdateReservationFields(_ context.Context, id string, fields persistence.ReservationFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return persistence.ErrNotFound
	}
	if _, conflict := booking.FirstConflict(m.slotsLocked(), fields.Start, fields.End, id); conflict {
		return persistence.ErrOverlap
	}
	reservation.Title = fields.Title
	reservation.Description = fields.Description
	reservation.Start = fields.Start
	reservation.End = fields.End
	m.reservations[id] = reservation
	return nil
}

func (m *MemoryStore) DeleteReservation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.reservations, id)
	return nil
}

func (m *MemoryStore) ListReservations(_ context.Context) ([]persistence.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]persistence.Reservation, 0, len(m.reservations))
	for _, reservation := range m.reservations {
		if owner, ok := m.users[reservation.OwnerID]; ok {
			reservation.OwnerEmail = owner.Email
		}
		out = append(out, reservation)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) ExistsOverlap(_ context.Context, start, end time.Time, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, conflict := booking.FirstConflict(m.slotsLocked(), start, end, excludeID)
	return conflict, nil
}

func (m *MemoryStore) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return session, nil
}

func (m *MemoryStore) GetSession(_ context.Context, token string) (persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) RevokeSession(_ context.Context, token string, revokedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok {
		return persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	m.sessions[token] = session
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, session := range m.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(m.sessions, token)
		}
	}
	return nil
}

// SessionCount reports how many sessions remain in the store.
func (m *MemoryStore) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) slotsLocked() []booking.Slot {
	slots := make([]booking.Slot, 0, len(m.reservations))
	for _, reservation := range m.reservations {
		slots = append(slots, booking.Slot{ID: reservation.ID, Start: reservation.Start, End: reservation.End})
	}
	return slots
}
