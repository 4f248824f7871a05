package domain

import (
	"errors"
	"fmt"
)

const (
	// Minimum accepted values for recipe write payloads.
	MinIngredientAmount = 1
	MinCookingTime      = 1

	DefaultPageSize = 6
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageUnauthorized         = "authentication credentials were not provided"
	MessageForbidden            = "you do not have permission to perform this action"
	MessageNotFound             = "not found"

	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
)

// ValidationError is a field-scoped input error. Handlers render it as a
// {field: message} body with status 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
