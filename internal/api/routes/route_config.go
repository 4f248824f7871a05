package routes

import (
	"github.com/gofiber/fiber/v2"

	"recipehub-backend/internal/api/handlers"
	"recipehub-backend/internal/middleware"
	"recipehub-backend/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	ShortLinkHandler  handlers.ShortLinkHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Recipes()
	c.Catalog()
	c.ShortLinks()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/token/login", c.UserHandler.Login)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		users.Post("", c.UserHandler.Register)
		users.Get("", optional, c.UserHandler.GetUsers)

		// Fixed segments must beat the :id wildcard.
		users.Get("/me", auth, c.UserHandler.GetMe)
		users.Put("/me/avatar", auth, c.UserHandler.UpdateAvatar)
		users.Patch("/me/avatar", auth, c.UserHandler.UpdateAvatar)
		users.Delete("/me/avatar", auth, c.UserHandler.DeleteAvatar)
		users.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)

		users.Get("/:id", optional, c.UserHandler.GetUserByID)
		users.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		recipes.Get("", optional, c.RecipeHandler.GetRecipes)
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

		recipes.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)

		recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

		recipes.Get("/:id/get-link", c.RecipeHandler.GetShortLink)

		recipes.Post("/:id/favorite", auth, c.RecipeHandler.FavoriteRecipe)
		recipes.Delete("/:id/favorite", auth, c.RecipeHandler.UnfavoriteRecipe)
		recipes.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	{
		tags.Get("", c.TagHandler.GetTags)
		tags.Get("/:id", c.TagHandler.GetTagByID)
	}

	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredientByID)
	}
}

func (c *Config) ShortLinks() {
	c.App.Get("/s/:short", c.ShortLinkHandler.Redirect)
}
