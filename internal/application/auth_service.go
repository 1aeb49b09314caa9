package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/malo-martiniani/reservation-salles/internal/booking"
	"github.com/malo-martiniani/reservation-salles/internal/persistence"
)

// UserStore exposes the account operations required by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
}

// SessionStore captures the persistence interactions for issued sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error)
	GetSession(ctx context.Context, token string) (persistence.Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService coordinates registration, login and session validation.
type AuthService struct {
	users          UserStore
	sessions       SessionStore
	verifyPassword PasswordVerifier
	hashPassword   func(password string) (string, error)
	tokenGenerator func() string
	idGenerator    func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(users UserStore, sessions SessionStore, tokenGenerator, idGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(users, sessions, tokenGenerator, idGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(users UserStore, sessions SessionStore, tokenGenerator, idGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if idGenerator == nil {
		idGenerator = tokenGenerator
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		verifyPassword: VerifyPassword,
		hashPassword: func(password string) (string, error) {
			return HashPassword(password, DefaultArgon2idParams)
		},
		tokenGenerator: tokenGenerator,
		idGenerator:    idGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register creates a new account and logs it in immediately.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	logger := s.loggerWith(ctx, "Register", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "account registered")
	}()

	if err = validateCredentials(email, params.Password); err != nil {
		return
	}

	_, lookupErr := s.users.GetUserByEmail(ctx, email)
	switch {
	case lookupErr == nil:
		err = ErrAlreadyExists
		return
	case !errors.Is(lookupErr, persistence.ErrNotFound):
		err = lookupErr
		return
	}

	hash, err := s.hashPassword(params.Password)
	if err != nil {
		return
	}

	user := persistence.User{
		ID:           s.idGenerator(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			err = ErrAlreadyExists
		}
		return
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return
	}

	result = AuthResult{User: toUser(user), Session: session}
	return
}

// Authenticate validates credentials and issues a new session token.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID, "session_id", result.Session.ID).
			InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	user, lookupErr := s.users.GetUserByEmail(ctx, email)
	if lookupErr != nil {
		if errors.Is(lookupErr, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
		} else {
			err = lookupErr
		}
		return
	}

	if verifyErr := s.verifyPassword(user.PasswordHash, params.Password); verifyErr != nil {
		err = ErrInvalidCredentials
		return
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return
	}

	result = AuthResult{User: toUser(user), Session: session}
	return
}

// ValidateSession resolves the principal behind an active session token.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session store not configured")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session validation failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if trimmed == "" {
		err = ErrUnauthenticated
		return
	}

	session, lookupErr := s.sessions.GetSession(ctx, trimmed)
	if lookupErr != nil {
		if errors.Is(lookupErr, persistence.ErrNotFound) {
			err = ErrUnauthenticated
		} else {
			err = lookupErr
		}
		return
	}

	now := s.now()
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		err = ErrSessionRevoked
		return
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
		err = ErrSessionExpired
		return
	}

	user, lookupErr := s.users.GetUser(ctx, session.UserID)
	if lookupErr != nil {
		if errors.Is(lookupErr, persistence.ErrNotFound) {
			err = ErrUnauthenticated
		} else {
			err = lookupErr
		}
		return
	}

	principal = Principal{UserID: user.ID, Email: user.Email}
	return
}

// RevokeSession invalidates an existing session token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session store not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrUnauthenticated
	}

	logger := s.loggerWith(ctx, "RevokeSession")

	if err := s.sessions.RevokeSession(ctx, trimmed, s.now()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			logger.ErrorContext(ctx, "failed to revoke session", "error", ErrUnauthenticated, "error_kind", ErrorKind(ErrUnauthenticated))
			return ErrUnauthenticated
		}
		logger.ErrorContext(ctx, "failed to revoke session", "error", err)
		return err
	}

	logger.InfoContext(ctx, "session revoked")
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (Session, error) {
	now := s.now()
	session := persistence.Session{
		ID:        s.idGenerator(),
		UserID:    userID,
		Token:     s.tokenGenerator(),
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}

	if s.sessions == nil {
		return toSession(session), nil
	}

	if err := s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		return Session{}, err
	}

	persisted, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return Session{}, err
	}
	return toSession(persisted), nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return &booking.ValidationError{
			Reason:  booking.ReasonMissingField,
			Field:   "email",
			Message: "email is required",
		}
	}
	if !strings.Contains(email, "@") {
		return &booking.ValidationError{
			Reason:  booking.ReasonInvalidFormat,
			Field:   "email",
			Message: "email is invalid",
		}
	}
	if password == "" {
		return &booking.ValidationError{
			Reason:  booking.ReasonMissingField,
			Field:   "password",
			Message: "password is required",
		}
	}
	return nil
}

func toUser(user persistence.User) User {
	return User{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}

func toSession(session persistence.Session) Session {
	return Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
}
