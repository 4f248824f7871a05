package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"recipehub-backend/domain"
	"recipehub-backend/internal/api/presenters"
	"recipehub-backend/pkg/recipe"
)

type (
	ShortLinkHandler interface {
		Redirect(c *fiber.Ctx) error
	}

	shortLinkHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewShortLinkHandler(recipeService recipe.RecipeService) ShortLinkHandler {
	return &shortLinkHandler{recipeService: recipeService}
}

// Redirect resolves /s/:short back to the recipe detail page.
func (h *shortLinkHandler) Redirect(c *fiber.Ctx) error {
	id, err := h.recipeService.ResolveShortLink(c.Context(), c.Params("short"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageNotFound, err)
	}

	return c.Redirect(fmt.Sprintf("/recipes/%d", id), fiber.StatusFound)
}
