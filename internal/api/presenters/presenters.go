package presenters

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"recipehub-backend/domain"
)

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func NoContentResponse(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// ErrorResponse renders an error body. Field-scoped validation errors
// carry a {field: message} mapping; not-found and auth failures carry a
// flat message.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"message": message,
			"errors":  fiber.Map{fieldErr.Field: fieldErr.Message},
		})
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := fiber.Map{}
		for _, fe := range validationErrs {
			fields[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"message": message,
			"errors":  fields,
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

// StatusCode maps service errors onto the HTTP taxonomy: 400 for input
// and uniqueness violations, 401/403 for auth, 404 for absent entities.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrShortLinkInvalid):
		return fiber.StatusNotFound

	case errors.Is(err, domain.ErrNotRecipeAuthor):
		return fiber.StatusForbidden

	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return fiber.StatusBadRequest
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrNotSubscribed),
		errors.Is(err, domain.ErrSelfSubscription),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameReserved),
		errors.Is(err, domain.ErrUsernameInvalid),
		errors.Is(err, domain.ErrAvatarRequired),
		errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}
