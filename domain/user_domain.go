package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login success"
	MessageSuccessGetUser          = "success get user"
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessUpdateAvatar     = "avatar updated successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageSuccessSubscribe        = "subscribed successfully"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUser          = "failed to get user"
	MessageFailedUpdateAvatar     = "failed to update avatar"
	MessageFailedGetSubscriptions = "failed to get subscriptions"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUsernameTaken      = errors.New("this username is already taken")
	ErrEmailTaken         = errors.New("this email is already taken")
	ErrUsernameReserved   = errors.New("using the username \"me\" is not allowed")
	ErrUsernameInvalid    = errors.New("username may contain only letters, digits and @/./+/-/_ characters")
	ErrAvatarRequired     = errors.New("avatar is a required field")
	ErrSelfSubscription   = errors.New("you cannot subscribe to yourself")
	ErrAlreadySubscribed  = errors.New("you are already subscribed to this author")
	ErrNotSubscribed      = errors.New("you are not subscribed to this author")
)

type (
	RegisterUserRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
	}

	RegisterUserResponse struct {
		ID        uint   `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	// UserResponse is the profile representation embedded in recipe reads
	// and returned by the user endpoints. IsSubscribed is relative to the
	// requesting user and is always false for anonymous callers.
	UserResponse struct {
		ID           uint   `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
		Avatar       string `json:"avatar"`
	}

	UpdateAvatarRequest struct {
		Avatar string `json:"avatar"`
	}

	UpdateAvatarResponse struct {
		Avatar string `json:"avatar"`
	}

	// SubscriptionResponse is the author profile plus a truncated embed of
	// the author's recipes, returned from the subscriptions surface.
	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeMinifiedResponse `json:"recipes"`
		RecipesCount int64                    `json:"recipes_count"`
	}
)
