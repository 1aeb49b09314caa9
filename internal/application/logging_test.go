package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/malo-martiniani/reservation-salles/internal/booking"
)

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrForbidden, "forbidden"},
		{ErrNotFound, "not_found"},
		{ErrOverlap, "overlap"},
		{ErrAlreadyExists, "already_exists"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrUnauthenticated, "unauthenticated"},
		{ErrSessionExpired, "session_expired"},
		{ErrSessionRevoked, "session_revoked"},
		{fmt.Errorf("wrapped: %w", ErrOverlap), "overlap"},
		{&booking.ValidationError{Reason: booking.ReasonTooShort}, "validation"},
		{errors.New("disk on fire"), "unexpected"},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
