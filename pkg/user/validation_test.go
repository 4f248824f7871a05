package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipehub-backend/domain"
)

type stubChecker struct {
	usernames map[string]bool
	emails    map[string]bool
}

func (c *stubChecker) UsernameExists(_ context.Context, username string) (bool, error) {
	return c.usernames[username], nil
}

func (c *stubChecker) EmailExists(_ context.Context, email string) (bool, error) {
	return c.emails[email], nil
}

func TestValidateNewCredentials(t *testing.T) {
	checker := &stubChecker{
		usernames: map[string]bool{"alice": true},
		emails:    map[string]bool{"taken@example.com": true},
	}
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		want     error
	}{
		{"ok", "bob", "bob@example.com", nil},
		{"allowed charset", "user.name+tag@x-1", "x@example.com", nil},
		{"reserved me", "me", "me@example.com", domain.ErrUsernameReserved},
		{"bad charset", "no spaces", "x@example.com", domain.ErrUsernameInvalid},
		{"bad charset unicode", "héllo!", "x@example.com", domain.ErrUsernameInvalid},
		{"empty username", "", "x@example.com", domain.ErrUsernameInvalid},
		{"username taken", "alice", "fresh@example.com", domain.ErrUsernameTaken},
		{"email taken", "fresh", "taken@example.com", domain.ErrEmailTaken},
		// username uniqueness is reported before email uniqueness
		{"both taken", "alice", "taken@example.com", domain.ErrUsernameTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNewCredentials(ctx, tc.username, tc.email, checker)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
