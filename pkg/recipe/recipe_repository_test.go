package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"recipehub-backend/domain"
	"recipehub-backend/entities"
)

// A DryRun session builds the SQL without touching a database, which is
// enough to pin the filter clauses the listing endpoint relies on.
func newDryRunRepository(t *testing.T) *recipeRepository {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return &recipeRepository{db: db}
}

func filterSQL(t *testing.T, repo *recipeRepository, filter domain.RecipeFilter) (string, []any) {
	t.Helper()
	var recipes []*entities.Recipe
	tx := repo.filteredRecipes(context.Background(), filter).Find(&recipes)
	require.NoError(t, tx.Error)
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

// An unknown slug matches no recipe_tags rows through the inner join,
// so the page comes back empty rather than unfiltered.
func TestFilteredRecipesTagSlugClause(t *testing.T) {
	repo := newDryRunRepository(t)

	sql, _ := filterSQL(t, repo, domain.RecipeFilter{TagSlugs: []string{"no-such-slug"}})
	assert.Contains(t, sql, "JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id")
	assert.Contains(t, sql, "JOIN tags ON tags.id = recipe_tags.tag_id")
	assert.Contains(t, sql, "tags.slug IN")

	sql, _ = filterSQL(t, repo, domain.RecipeFilter{})
	assert.NotContains(t, sql, "recipe_tags")
}

func TestFilteredRecipesMembershipClauses(t *testing.T) {
	repo := newDryRunRepository(t)

	sql, vars := filterSQL(t, repo, domain.RecipeFilter{UserID: 7, IsFavorited: "1"})
	assert.Contains(t, sql, "JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id =")
	assert.Contains(t, vars, uint(7))

	sql, _ = filterSQL(t, repo, domain.RecipeFilter{UserID: 7, IsFavorited: "0"})
	assert.Contains(t, sql, "NOT EXISTS (SELECT 1 FROM favorites")

	sql, _ = filterSQL(t, repo, domain.RecipeFilter{UserID: 7, IsInShoppingCart: "1"})
	assert.Contains(t, sql, "JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id =")

	sql, _ = filterSQL(t, repo, domain.RecipeFilter{UserID: 7, IsInShoppingCart: "0"})
	assert.Contains(t, sql, "NOT EXISTS (SELECT 1 FROM shopping_carts")

	// anonymous callers never get membership clauses
	sql, _ = filterSQL(t, repo, domain.RecipeFilter{IsFavorited: "0", IsInShoppingCart: "0"})
	assert.NotContains(t, sql, "favorites")
	assert.NotContains(t, sql, "shopping_carts")

	sql, vars = filterSQL(t, repo, domain.RecipeFilter{AuthorID: 3})
	assert.Contains(t, sql, "recipes.author_id =")
	assert.Contains(t, vars, uint(3))
}
