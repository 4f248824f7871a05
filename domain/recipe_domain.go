package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes    = "success get recipes"
	MessageSuccessGetRecipe     = "success get recipe detail"
	MessageSuccessCreateRecipe  = "recipe created successfully"
	MessageSuccessUpdateRecipe  = "recipe updated successfully"
	MessageSuccessDeleteRecipe  = "recipe deleted successfully"
	MessageSuccessFavorite      = "recipe added to favorites"
	MessageSuccessAddToCart     = "recipe added to shopping cart"
	MessageSuccessGetShortLink  = "success get short link"
	MessageSuccessDownloadCart  = "success download shopping cart"

	MessageFailedGetRecipes   = "failed to get recipes"
	MessageFailedGetRecipe    = "failed to get recipe detail"
	MessageFailedSaveRecipe   = "failed to save recipe"
	MessageFailedDeleteRecipe = "failed to delete recipe"
	MessageFailedFavorite     = "failed to update favorites"
	MessageFailedCart         = "failed to update shopping cart"
	MessageFailedShortLink    = "failed to get short link"
	MessageFailedDownloadCart = "failed to download shopping cart"

	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrNotRecipeAuthor   = errors.New("only the author can modify this recipe")
	ErrAlreadyFavorited  = errors.New("recipe is already in favorites")
	ErrNotFavorited      = errors.New("recipe is not in favorites")
	ErrAlreadyInCart     = errors.New("recipe is already in the shopping cart")
	ErrNotInCart         = errors.New("recipe is not in the shopping cart")
	ErrShortLinkInvalid  = errors.New("invalid short link")
)

type (
	RecipeIngredientRequest struct {
		ID     uint `json:"id"`
		Amount int  `json:"amount"`
	}

	CreateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
		Tags        []uint                    `json:"tags"`
		Image       string                    `json:"image"`
		Name        string                    `json:"name" validate:"required,max=256"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
	}

	// UpdateRecipeRequest uses pointers so that absent fields are left
	// untouched while present ingredient/tag lists replace the full set.
	UpdateRecipeRequest struct {
		Ingredients *[]RecipeIngredientRequest `json:"ingredients"`
		Tags        *[]uint                    `json:"tags"`
		Image       *string                    `json:"image"`
		Name        *string                    `json:"name" validate:"omitempty,max=256"`
		Text        *string                    `json:"text"`
		CookingTime *int                       `json:"cooking_time"`
	}

	RecipeIngredientResponse struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	// RecipeResponse is the read representation: expanded tags, author
	// profile and ingredient lines plus the caller-relative membership
	// flags. Write operations always answer with this view.
	RecipeResponse struct {
		ID               uint                       `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
	}

	RecipeMinifiedResponse struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeFilter carries the list-endpoint filters. IsFavorited and
	// IsInShoppingCart are tri-state: "" no filter, "1" members only,
	// "0" members excluded.
	RecipeFilter struct {
		AuthorID         uint
		TagSlugs         []string
		IsFavorited      string
		IsInShoppingCart string
		UserID           uint
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)
