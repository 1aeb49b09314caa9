package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionSweeper periodically removes expired sessions so the sessions table
// does not grow without bound between logins.
type SessionSweeper struct {
	cron     *cron.Cron
	sessions SessionStore
	schedule string
	now      func() time.Time
	logger   *slog.Logger
}

// NewSessionSweeper constructs a sweeper running on the given cron schedule
// (standard spec, @every accepted).
func NewSessionSweeper(sessions SessionStore, schedule string, now func() time.Time, logger *slog.Logger) *SessionSweeper {
	if schedule == "" {
		schedule = "@every 10m"
	}
	if now == nil {
		now = time.Now
	}
	return &SessionSweeper{
		cron:     cron.New(),
		sessions: sessions,
		schedule: schedule,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// Start registers the sweep job, runs an initial sweep and starts the cron
// loop.
func (s *SessionSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}

	go s.sweep()

	s.cron.Start()
	s.logger.Info("session sweeper started", "schedule", s.schedule)
	return nil
}

// Stop halts the cron loop and waits for an in-flight sweep to finish.
func (s *SessionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	if s.sessions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sessions.DeleteExpiredSessions(ctx, s.now()); err != nil {
		s.logger.Error("failed to prune expired sessions", "error", err)
	}
}
