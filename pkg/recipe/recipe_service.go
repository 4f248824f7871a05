package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"recipehub-backend/domain"
	"recipehub-backend/entities"
	"recipehub-backend/internal/utils"
	"recipehub-backend/internal/utils/storage"
	"recipehub-backend/pkg/cart"
	"recipehub-backend/pkg/ingredient"
	"recipehub-backend/pkg/shortlink"
	"recipehub-backend/pkg/tag"
	"recipehub-backend/pkg/user"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeByID(ctx context.Context, id uint, currentUserID uint) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID uint) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, userID uint) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id uint, userID uint) error

		FavoriteRecipe(ctx context.Context, recipeID, userID uint) (domain.RecipeMinifiedResponse, error)
		UnfavoriteRecipe(ctx context.Context, recipeID, userID uint) error
		AddToShoppingCart(ctx context.Context, recipeID, userID uint) (domain.RecipeMinifiedResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID uint) error

		GetShortLink(ctx context.Context, recipeID uint, baseURL string) (domain.ShortLinkResponse, error)
		ResolveShortLink(ctx context.Context, short string) (uint, error)
		DownloadShoppingCart(ctx context.Context, userID uint) ([]byte, string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

// The write-path checks run in a fixed fail-fast order: list presence
// and image, then amounts, duplicate ingredients, duplicate tags,
// cooking time, and only then referenced-entity existence. A payload
// with several problems always reports the earliest failing field.

func validateAmounts(items []domain.RecipeIngredientRequest) error {
	for _, item := range items {
		if item.Amount < domain.MinIngredientAmount {
			return domain.NewValidationError(
				"amount",
				fmt.Sprintf("amount must be at least %d", domain.MinIngredientAmount),
			)
		}
	}
	return nil
}

func validateUniqueIngredients(items []domain.RecipeIngredientRequest) error {
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return domain.NewValidationError(
				"ingredients",
				fmt.Sprintf("duplicate ingredient with id %d", item.ID),
			)
		}
		seen[item.ID] = true
	}
	return nil
}

func validateUniqueTags(tagIDs []uint) error {
	seen := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			return domain.NewValidationError(
				"tags",
				fmt.Sprintf("duplicate tag with id %d", id),
			)
		}
		seen[id] = true
	}
	return nil
}

// resolveLineItems checks that every referenced ingredient exists and
// builds the line-item rows.
func (s *recipeService) resolveLineItems(ctx context.Context, items []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	existing, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(existing))
	for _, ing := range existing {
		found[ing.ID] = true
	}
	for _, item := range items {
		if !found[item.ID] {
			return nil, domain.NewValidationError(
				"ingredients",
				fmt.Sprintf("ingredient with id %d not found", item.ID),
			)
		}
	}

	lineItems := make([]*entities.RecipeIngredient, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &entities.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return lineItems, nil
}

func (s *recipeService) resolveTags(ctx context.Context, tagIDs []uint) ([]*entities.Tag, error) {
	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		found := make(map[uint]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, id := range tagIDs {
			if !found[id] {
				return nil, domain.NewValidationError(
					"tags",
					fmt.Sprintf("tag with id %d not found", id),
				)
			}
		}
	}
	return tags, nil
}

func (s *recipeService) uploadImage(blob utils.ImageBlob) (string, error) {
	objectKey, err := s.s3.UploadBlob("recipes", blob)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID uint) (domain.RecipeResponse, error) {
	if len(req.Ingredients) == 0 {
		return domain.RecipeResponse{}, domain.NewValidationError("ingredients", "ingredients list cannot be empty")
	}
	if len(req.Tags) == 0 {
		return domain.RecipeResponse{}, domain.NewValidationError("tags", "tags list cannot be empty")
	}
	if req.Image == "" {
		return domain.RecipeResponse{}, domain.NewValidationError("image", "this field is required")
	}
	if err := validateAmounts(req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := validateUniqueIngredients(req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := validateUniqueTags(req.Tags); err != nil {
		return domain.RecipeResponse{}, err
	}
	if req.CookingTime < domain.MinCookingTime {
		return domain.RecipeResponse{}, domain.NewValidationError(
			"cooking_time",
			fmt.Sprintf("cooking time must be at least %d", domain.MinCookingTime),
		)
	}

	lineItems, err := s.resolveLineItems(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	blob, err := utils.DecodeBase64Image(req.Image)
	if err != nil {
		return domain.RecipeResponse{}, domain.NewValidationError("image", err.Error())
	}
	imageURL, err := s.uploadImage(blob)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := entities.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, lineItems, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeByID(ctx, recipe.ID, authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, userID uint) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID != userID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	// present fields go through the same fail-fast order as create
	if req.Ingredients != nil {
		if len(*req.Ingredients) == 0 {
			return domain.RecipeResponse{}, domain.NewValidationError("ingredients", "ingredients list cannot be empty")
		}
		if err := validateAmounts(*req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
		if err := validateUniqueIngredients(*req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
	}
	if req.Tags != nil {
		if len(*req.Tags) == 0 {
			return domain.RecipeResponse{}, domain.NewValidationError("tags", "tags list cannot be empty")
		}
		if err := validateUniqueTags(*req.Tags); err != nil {
			return domain.RecipeResponse{}, err
		}
	}
	if req.CookingTime != nil && *req.CookingTime < domain.MinCookingTime {
		return domain.RecipeResponse{}, domain.NewValidationError(
			"cooking_time",
			fmt.Sprintf("cooking time must be at least %d", domain.MinCookingTime),
		)
	}

	var lineItems []*entities.RecipeIngredient
	if req.Ingredients != nil {
		lineItems, err = s.resolveLineItems(ctx, *req.Ingredients)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	var tags []*entities.Tag
	if req.Tags != nil {
		tags, err = s.resolveTags(ctx, *req.Tags)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.Image != nil {
		if *req.Image == "" {
			return domain.RecipeResponse{}, domain.NewValidationError("image", "this field is required")
		}
		blob, err := utils.DecodeBase64Image(*req.Image)
		if err != nil {
			return domain.RecipeResponse{}, domain.NewValidationError("image", err.Error())
		}
		imageURL, err := s.uploadImage(blob)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		if recipe.ImageURL != "" {
			_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(recipe.ImageURL))
		}
		recipe.ImageURL = imageURL
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, lineItems, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeByID(ctx, recipe.ID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, userID uint) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return domain.ErrNotRecipeAuthor
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe); err != nil {
		return err
	}
	if recipe.ImageURL != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(recipe.ImageURL))
	}
	return nil
}

// buildResponses maps recipes to their read representation. The
// caller-relative flags come from three batched membership lookups, one
// per set for the whole page, never one per recipe.
func (s *recipeService) buildResponses(ctx context.Context, recipes []*entities.Recipe, currentUserID uint) ([]domain.RecipeResponse, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.recipeRepository.GetFavoritedRecipeIDs(ctx, currentUserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.recipeRepository.GetCartRecipeIDs(ctx, currentUserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.userRepository.GetSubscribedAuthorIDs(ctx, currentUserID, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res := domain.RecipeResponse{
			ID:               r.ID,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}

		res.Tags = make([]domain.TagResponse, 0, len(r.Tags))
		for _, t := range r.Tags {
			res.Tags = append(res.Tags, domain.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
		}

		res.Ingredients = make([]domain.RecipeIngredientResponse, 0, len(r.RecipeIngredients))
		for _, item := range r.RecipeIngredients {
			line := domain.RecipeIngredientResponse{
				ID:     item.IngredientID,
				Amount: item.Amount,
			}
			if item.Ingredient != nil {
				line.Name = item.Ingredient.Name
				line.MeasurementUnit = item.Ingredient.MeasurementUnit
			}
			res.Ingredients = append(res.Ingredients, line)
		}

		if r.Author != nil {
			res.Author = domain.UserResponse{
				ID:           r.Author.ID,
				Email:        r.Author.Email,
				Username:     r.Author.Username,
				FirstName:    r.Author.FirstName,
				LastName:     r.Author.LastName,
				IsSubscribed: subscribed[r.AuthorID],
				Avatar:       r.Author.AvatarURL,
			}
		}

		result = append(result, res)
	}
	return result, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error) {
	// membership filters with value "1" are meaningless without a caller
	// identity: an anonymous user's favorites/cart are empty sets
	if filter.UserID == 0 && (filter.IsFavorited == "1" || filter.IsInShoppingCart == "1") {
		return []domain.RecipeResponse{}, 0, nil
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result, err := s.buildResponses(ctx, recipes, filter.UserID)
	if err != nil {
		return nil, 0, err
	}
	return result, count, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id uint, currentUserID uint) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	responses, err := s.buildResponses(ctx, []*entities.Recipe{recipe}, currentUserID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return responses[0], nil
}

func toMinified(recipe *entities.Recipe) domain.RecipeMinifiedResponse {
	return domain.RecipeMinifiedResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID uint) (domain.RecipeMinifiedResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeMinifiedResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeMinifiedResponse{}, err
	}

	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		// the unique index decides under concurrent duplicate requests
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeMinifiedResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeMinifiedResponse{}, err
	}
	return toMinified(recipe), nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID uint) error {
	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}

	rows, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID uint) (domain.RecipeMinifiedResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeMinifiedResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeMinifiedResponse{}, err
	}

	if err := s.recipeRepository.AddToCart(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeMinifiedResponse{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeMinifiedResponse{}, err
	}
	return toMinified(recipe), nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID uint) error {
	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}

	rows, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) GetShortLink(ctx context.Context, recipeID uint, baseURL string) (domain.ShortLinkResponse, error) {
	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	if !exists {
		return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
	}

	code := shortlink.Encode(uint64(recipeID))
	return domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s/", strings.TrimSuffix(baseURL, "/"), code),
	}, nil
}

// ResolveShortLink decodes a short string and re-validates that the
// recipe still exists: stale links resolve to not-found, never a crash.
func (s *recipeService) ResolveShortLink(ctx context.Context, short string) (uint, error) {
	id, err := shortlink.Decode(short)
	if err != nil {
		return 0, domain.ErrShortLinkInvalid
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, uint(id))
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrRecipeNotFound
	}
	return uint(id), nil
}

func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID uint) ([]byte, string, error) {
	currentUser, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	recipes, err := s.recipeRepository.GetCartRecipes(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	lines := cart.FormatLines(cart.Aggregate(recipes))
	data, err := cart.RenderPDF(lines)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("shopping_list_%s.pdf", currentUser.Username)
	return data, fileName, nil
}
