package recipe

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipehub-backend/domain"
	"recipehub-backend/entities"
	"recipehub-backend/internal/utils"
	"recipehub-backend/pkg/user"
)

type fakeRecipeRepository struct {
	recipes   map[uint]*entities.Recipe
	nextID    uint
	favorites map[string]bool
	carts     map[string]bool

	// hydration source standing in for the repository's preloads
	ingredients map[uint]*entities.Ingredient
	users       map[uint]*entities.User
}

func newFakeRecipeRepository(ingredients map[uint]*entities.Ingredient, users map[uint]*entities.User) *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:     map[uint]*entities.Recipe{},
		favorites:   map[string]bool{},
		carts:       map[string]bool{},
		ingredients: ingredients,
		users:       users,
	}
}

func (r *fakeRecipeRepository) hydrate(recipe *entities.Recipe) *entities.Recipe {
	for _, item := range recipe.RecipeIngredients {
		item.Ingredient = r.ingredients[item.IngredientID]
	}
	recipe.Author = r.users[recipe.AuthorID]
	return recipe
}

func membershipKey(userID, recipeID uint) string {
	return fmt.Sprintf("%d:%d", userID, recipeID)
}

func (r *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error {
	r.nextID++
	recipe.ID = r.nextID
	recipe.RecipeIngredients = items
	recipe.Tags = tags
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tags []*entities.Tag) error {
	if items != nil {
		recipe.RecipeIngredients = items
	}
	if tags != nil {
		recipe.Tags = tags
	}
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepository) GetRecipeByID(_ context.Context, id uint) (*entities.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hydrate(recipe), nil
}

func (r *fakeRecipeRepository) DeleteRecipe(_ context.Context, recipe *entities.Recipe) error {
	delete(r.recipes, recipe.ID)
	return nil
}

func (r *fakeRecipeRepository) GetRecipes(_ context.Context, _ domain.RecipeFilter, _, _ int) ([]*entities.Recipe, int64, error) {
	result := make([]*entities.Recipe, 0, len(r.recipes))
	for id := uint(1); id <= r.nextID; id++ {
		if recipe, ok := r.recipes[id]; ok {
			result = append(result, r.hydrate(recipe))
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeRecipeRepository) RecipeExists(_ context.Context, id uint) (bool, error) {
	_, ok := r.recipes[id]
	return ok, nil
}

func (r *fakeRecipeRepository) AddFavorite(_ context.Context, userID, recipeID uint) error {
	key := membershipKey(userID, recipeID)
	if r.favorites[key] {
		return gorm.ErrDuplicatedKey
	}
	r.favorites[key] = true
	return nil
}

func (r *fakeRecipeRepository) RemoveFavorite(_ context.Context, userID, recipeID uint) (int64, error) {
	key := membershipKey(userID, recipeID)
	if !r.favorites[key] {
		return 0, nil
	}
	delete(r.favorites, key)
	return 1, nil
}

func (r *fakeRecipeRepository) AddToCart(_ context.Context, userID, recipeID uint) error {
	key := membershipKey(userID, recipeID)
	if r.carts[key] {
		return gorm.ErrDuplicatedKey
	}
	r.carts[key] = true
	return nil
}

func (r *fakeRecipeRepository) RemoveFromCart(_ context.Context, userID, recipeID uint) (int64, error) {
	key := membershipKey(userID, recipeID)
	if !r.carts[key] {
		return 0, nil
	}
	delete(r.carts, key)
	return 1, nil
}

func (r *fakeRecipeRepository) GetFavoritedRecipeIDs(_ context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := map[uint]bool{}
	for _, id := range recipeIDs {
		if r.favorites[membershipKey(userID, id)] {
			result[id] = true
		}
	}
	return result, nil
}

func (r *fakeRecipeRepository) GetCartRecipeIDs(_ context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := map[uint]bool{}
	for _, id := range recipeIDs {
		if r.carts[membershipKey(userID, id)] {
			result[id] = true
		}
	}
	return result, nil
}

func (r *fakeRecipeRepository) GetCartRecipes(_ context.Context, userID uint) ([]*entities.Recipe, error) {
	var result []*entities.Recipe
	for id := uint(1); id <= r.nextID; id++ {
		if r.carts[membershipKey(userID, id)] {
			result = append(result, r.hydrate(r.recipes[id]))
		}
	}
	return result, nil
}

type fakeIngredientRepository struct {
	ingredients map[uint]*entities.Ingredient
}

func (r *fakeIngredientRepository) GetIngredients(_ context.Context, _ string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (r *fakeIngredientRepository) GetIngredientByID(_ context.Context, id uint) (*entities.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ing, nil
}

func (r *fakeIngredientRepository) GetIngredientsByIDs(_ context.Context, ids []uint) ([]*entities.Ingredient, error) {
	var result []*entities.Ingredient
	for _, id := range ids {
		if ing, ok := r.ingredients[id]; ok {
			result = append(result, ing)
		}
	}
	return result, nil
}

type fakeTagRepository struct {
	tags map[uint]*entities.Tag
}

func (r *fakeTagRepository) GetTags(_ context.Context) ([]*entities.Tag, error) {
	return nil, nil
}

func (r *fakeTagRepository) GetTagByID(_ context.Context, id uint) (*entities.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTagRepository) GetTagsByIDs(_ context.Context, ids []uint) ([]*entities.Tag, error) {
	var result []*entities.Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

// fakeUserRepository embeds the interface so only the methods the recipe
// service touches need implementations.
type fakeUserRepository struct {
	user.UserRepository
	users      map[uint]*entities.User
	subscribed map[string]bool
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetSubscribedAuthorIDs(_ context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := map[uint]bool{}
	for _, id := range authorIDs {
		if r.subscribed[membershipKey(userID, id)] {
			result[id] = true
		}
	}
	return result, nil
}

type fakeS3 struct {
	uploads int
	deleted []string
}

func (s *fakeS3) UploadBlob(dir string, blob utils.ImageBlob) (string, error) {
	s.uploads++
	return fmt.Sprintf("%s/%d.%s", dir, s.uploads, blob.Ext), nil
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.test/" + objectKey
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	return link[len("https://bucket.test/"):]
}

type serviceFixture struct {
	service RecipeService
	recipes *fakeRecipeRepository
	users   *fakeUserRepository
	s3      *fakeS3
}

func newServiceFixture() *serviceFixture {
	ingredientsData := map[uint]*entities.Ingredient{
		1: {ID: 1, Name: "flour", MeasurementUnit: "g"},
		2: {ID: 2, Name: "milk", MeasurementUnit: "ml"},
	}
	usersData := map[uint]*entities.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
		2: {ID: 2, Username: "bob", Email: "bob@example.com"},
	}

	recipes := newFakeRecipeRepository(ingredientsData, usersData)
	ingredients := &fakeIngredientRepository{ingredients: ingredientsData}
	tags := &fakeTagRepository{tags: map[uint]*entities.Tag{
		1: {ID: 1, Name: "Breakfast", Slug: "breakfast"},
		2: {ID: 2, Name: "Dinner", Slug: "dinner"},
	}}
	users := &fakeUserRepository{
		users:      usersData,
		subscribed: map[string]bool{},
	}
	s3 := &fakeS3{}

	return &serviceFixture{
		service: NewRecipeService(recipes, ingredients, tags, users, s3),
		recipes: recipes,
		users:   users,
		s3:      s3,
	}
}

func testImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
}

func validCreateRequest() domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: 1, Amount: 200},
			{ID: 2, Amount: 100},
		},
		Tags:        []uint{1},
		Image:       testImage(),
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 15,
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*domain.CreateRecipeRequest)
		field   string
	}{
		{"empty ingredients", func(r *domain.CreateRecipeRequest) { r.Ingredients = nil }, "ingredients"},
		{"empty tags", func(r *domain.CreateRecipeRequest) { r.Tags = nil }, "tags"},
		{"missing image", func(r *domain.CreateRecipeRequest) { r.Image = "" }, "image"},
		{"zero cooking time", func(r *domain.CreateRecipeRequest) { r.CookingTime = 0 }, "cooking_time"},
		{"zero amount", func(r *domain.CreateRecipeRequest) { r.Ingredients[0].Amount = 0 }, "amount"},
		{"duplicate ingredient", func(r *domain.CreateRecipeRequest) { r.Ingredients[1].ID = 1 }, "ingredients"},
		{"unknown ingredient", func(r *domain.CreateRecipeRequest) { r.Ingredients[1].ID = 99 }, "ingredients"},
		{"duplicate tag", func(r *domain.CreateRecipeRequest) { r.Tags = []uint{1, 1} }, "tags"},
		{"unknown tag", func(r *domain.CreateRecipeRequest) { r.Tags = []uint{99} }, "tags"},
		{"malformed image", func(r *domain.CreateRecipeRequest) { r.Image = "not-a-data-uri" }, "image"},

		// multi-error payloads report the earliest failing field
		{"amount checked before cooking time", func(r *domain.CreateRecipeRequest) {
			r.Ingredients[0].Amount = 0
			r.CookingTime = 0
		}, "amount"},
		{"duplicate ingredient checked before cooking time", func(r *domain.CreateRecipeRequest) {
			r.Ingredients[1].ID = 1
			r.CookingTime = 0
		}, "ingredients"},
		{"duplicate tag checked before unknown ingredient", func(r *domain.CreateRecipeRequest) {
			r.Tags = []uint{1, 1}
			r.Ingredients[1].ID = 99
		}, "tags"},
		{"cooking time checked before unknown ingredient", func(r *domain.CreateRecipeRequest) {
			r.CookingTime = 0
			r.Ingredients[1].ID = 99
		}, "cooking_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture()
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := f.service.CreateRecipe(ctx, req, 1)
			require.Error(t, err)

			var fieldErr *domain.ValidationError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
		})
	}
}

func TestCreateRecipeSuccess(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	res, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", res.Name)
	assert.Equal(t, 15, res.CookingTime)
	assert.False(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)
	require.Len(t, res.Ingredients, 2)
	assert.Equal(t, "flour", res.Ingredients[0].Name)
	assert.Equal(t, "g", res.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 200, res.Ingredients[0].Amount)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, "breakfast", res.Tags[0].Slug)
	assert.Equal(t, 1, f.s3.uploads)
}

func TestUpdateRecipeAuthorization(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	name := "Stolen"
	_, err = f.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Name: &name}, 2)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)

	_, err = f.service.UpdateRecipe(ctx, 999, domain.UpdateRecipeRequest{Name: &name}, 1)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	items := []domain.RecipeIngredientRequest{{ID: 2, Amount: 50}}
	res, err := f.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Ingredients: &items}, 1)
	require.NoError(t, err)

	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, uint(2), res.Ingredients[0].ID)
	assert.Equal(t, 50, res.Ingredients[0].Amount)
	// untouched fields survive a partial update
	assert.Equal(t, "Pancakes", res.Name)
}

func TestUpdateRecipeEmptyIngredientList(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	items := []domain.RecipeIngredientRequest{}
	_, err = f.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Ingredients: &items}, 1)

	var fieldErr *domain.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "ingredients", fieldErr.Field)
}

func TestDeleteRecipe(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, created.ID, 2), domain.ErrNotRecipeAuthor)
	require.NoError(t, f.service.DeleteRecipe(ctx, created.ID, 1))
	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, created.ID, 1), domain.ErrRecipeNotFound)
	// the stored image goes with the recipe
	assert.Len(t, f.s3.deleted, 1)
}

func TestGetRecipesAnonymousMembershipFilter(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	_, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	for _, filter := range []domain.RecipeFilter{
		{IsFavorited: "1"},
		{IsInShoppingCart: "1"},
	} {
		recipes, count, err := f.service.GetRecipes(ctx, filter, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, recipes)
		assert.Zero(t, count)
	}

	// anonymous listing without membership filters still works
	recipes, count, err := f.service.GetRecipes(ctx, domain.RecipeFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.EqualValues(t, 1, count)
	assert.False(t, recipes[0].IsFavorited)
	assert.False(t, recipes[0].IsInShoppingCart)
}

func TestFavoriteLifecycle(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	mini, err := f.service.FavoriteRecipe(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, created.ID, mini.ID)
	assert.Equal(t, "Pancakes", mini.Name)

	_, err = f.service.FavoriteRecipe(ctx, created.ID, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	detail, err := f.service.GetRecipeByID(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.True(t, detail.IsFavorited)

	require.NoError(t, f.service.UnfavoriteRecipe(ctx, created.ID, 2))
	assert.ErrorIs(t, f.service.UnfavoriteRecipe(ctx, created.ID, 2), domain.ErrNotFavorited)

	_, err = f.service.FavoriteRecipe(ctx, 999, 2)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestShoppingCartLifecycle(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	_, err = f.service.AddToShoppingCart(ctx, created.ID, 2)
	require.NoError(t, err)

	_, err = f.service.AddToShoppingCart(ctx, created.ID, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	require.NoError(t, f.service.RemoveFromShoppingCart(ctx, created.ID, 2))
	assert.ErrorIs(t, f.service.RemoveFromShoppingCart(ctx, created.ID, 2), domain.ErrNotInCart)
}

func TestShortLinks(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	res, err := f.service.GetShortLink(ctx, created.ID, "https://recipehub.test")
	require.NoError(t, err)
	assert.Equal(t, "https://recipehub.test/s/1/", res.ShortLink)

	id, err := f.service.ResolveShortLink(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = f.service.ResolveShortLink(ctx, "!!!")
	assert.ErrorIs(t, err, domain.ErrShortLinkInvalid)

	_, err = f.service.ResolveShortLink(ctx, "zzzz")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.service.GetShortLink(ctx, 999, "https://recipehub.test")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDownloadShoppingCart(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, validCreateRequest(), 1)
	require.NoError(t, err)

	_, err = f.service.AddToShoppingCart(ctx, created.ID, 2)
	require.NoError(t, err)

	data, filename, err := f.service.DownloadShoppingCart(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "shopping_list_bob.pdf", filename)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}
