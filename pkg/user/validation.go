package user

import (
	"context"
	"regexp"

	"recipehub-backend/domain"
)

var usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)

// ExistenceChecker is the capability ValidateNewCredentials needs to
// reject usernames and emails that are already in use.
type ExistenceChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ValidateNewCredentials checks a candidate username/email pair. It is
// called from registration and from any path that changes either field.
func ValidateNewCredentials(ctx context.Context, username, email string, checker ExistenceChecker) error {
	if username == "me" {
		return domain.ErrUsernameReserved
	}
	if !usernameRegexp.MatchString(username) {
		return domain.ErrUsernameInvalid
	}

	taken, err := checker.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	taken, err = checker.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailTaken
	}

	return nil
}
