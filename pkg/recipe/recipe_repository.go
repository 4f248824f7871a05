package recipe

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipehub-backend/domain"
	"recipehub-backend/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error)
		RecipeExists(ctx context.Context, id uint) (bool, error)

		AddFavorite(ctx context.Context, userID, recipeID uint) error
		RemoveFavorite(ctx context.Context, userID, recipeID uint) (int64, error)
		AddToCart(ctx context.Context, userID, recipeID uint) error
		RemoveFromCart(ctx context.Context, userID, recipeID uint) (int64, error)

		GetFavoritedRecipeIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error)
		GetCartRecipeIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error)
		GetCartRecipes(ctx context.Context, userID uint) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the aggregate as one transaction: the recipe
// row, its line items and its tag associations land together or not at
// all.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		for _, item := range items {
			item.RecipeID = recipe.ID
		}
		if err := tx.Create(items).Error; err != nil {
			return err
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// UpdateRecipe saves the changed scalar fields; non-nil items/tags
// replace the full ingredient line-item set and tag set wholesale.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if items != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, item := range items {
				item.RecipeID = recipe.ID
			}
			if err := tx.Create(items).Error; err != nil {
				return err
			}
		}

		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes the recipe and everything hanging off it: line
// items, favorites and cart entries cascade, tag associations are
// cleared explicitly.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, recipe.ID).Error
	})
}

func (r *recipeRepository) filteredRecipes(ctx context.Context, filter domain.RecipeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}

	if filter.UserID != 0 {
		switch filter.IsFavorited {
		case "1":
			query = query.Joins(
				"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
				filter.UserID,
			)
		case "0":
			query = query.Where(
				"NOT EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
				filter.UserID,
			)
		}

		switch filter.IsInShoppingCart {
		case "1":
			query = query.Joins(
				"JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?",
				filter.UserID,
			)
		case "0":
			query = query.Where(
				"NOT EXISTS (SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?)",
				filter.UserID,
			)
		}
	}

	return query
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	// tag joins can match a recipe more than once, hence distinct
	if err := r.filteredRecipes(ctx, filter).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.filteredRecipes(ctx, filter).
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uint) error {
	favorite := entities.Favorite{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	cartEntry := entities.ShoppingCart{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&cartEntry).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{})
	return res.RowsAffected, res.Error
}

// GetFavoritedRecipeIDs batch-loads the subset of recipeIDs the user has
// favorited: one query per listing request instead of one per recipe.
func (r *recipeRepository) GetFavoritedRecipeIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.membershipIDs(ctx, &entities.Favorite{}, userID, recipeIDs)
}

func (r *recipeRepository) GetCartRecipeIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.membershipIDs(ctx, &entities.ShoppingCart{}, userID, recipeIDs)
}

func (r *recipeRepository) membershipIDs(ctx context.Context, model any, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// GetCartRecipes returns the user's cart recipes with their line items,
// in cart-insertion order.
func (r *recipeRepository) GetCartRecipes(ctx context.Context, userID uint) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
		Where("shopping_carts.user_id = ?", userID).
		Preload("RecipeIngredients.Ingredient").
		Order("shopping_carts.id asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
