package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipehub-backend/domain"
	"recipehub-backend/entities"
	"recipehub-backend/internal/utils"
	"recipehub-backend/internal/utils/storage"
	"recipehub-backend/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterUserRequest) (domain.RegisterUserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUserByID(ctx context.Context, id uint, currentUserID uint) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page, limit int, currentUserID uint) ([]domain.UserResponse, int64, error)
		UpdateAvatar(ctx context.Context, userID uint, req domain.UpdateAvatarRequest) (domain.UpdateAvatarResponse, error)
		DeleteAvatar(ctx context.Context, userID uint) error
		GetSubscriptions(ctx context.Context, userID uint, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
		Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, userID, authorID uint) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func toUserResponse(u *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       u.AvatarURL,
	}
}

func toRecipeMinified(recipes []*entities.Recipe) []domain.RecipeMinifiedResponse {
	result := make([]domain.RecipeMinifiedResponse, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, domain.RecipeMinifiedResponse{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}
	return result
}

func (s *userService) Register(ctx context.Context, req domain.RegisterUserRequest) (domain.RegisterUserResponse, error) {
	if err := ValidateNewCredentials(ctx, req.Username, req.Email, s.userRepository); err != nil {
		return domain.RegisterUserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterUserResponse{}, err
	}

	user := entities.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		// The unique indexes are the source of truth under concurrent
		// registrations; re-check which field lost the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if taken, checkErr := s.userRepository.UsernameExists(ctx, req.Username); checkErr == nil && taken {
				return domain.RegisterUserResponse{}, domain.ErrUsernameTaken
			}
			return domain.RegisterUserResponse{}, domain.ErrEmailTaken
		}
		return domain.RegisterUserResponse{}, err
	}

	return domain.RegisterUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	return domain.LoginResponse{AuthToken: s.jwtService.GenerateToken(user.ID)}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint, currentUserID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if currentUserID != 0 {
		isSubscribed, err = s.userRepository.IsSubscribed(ctx, currentUserID, user.ID)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}

	return toUserResponse(user, isSubscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, currentUserID uint) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := s.userRepository.GetSubscribedAuthorIDs(ctx, currentUserID, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u, subscribed[u.ID]))
	}
	return result, count, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint, req domain.UpdateAvatarRequest) (domain.UpdateAvatarResponse, error) {
	if req.Avatar == "" {
		return domain.UpdateAvatarResponse{}, domain.ErrAvatarRequired
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UpdateAvatarResponse{}, err
	}

	blob, err := utils.DecodeBase64Image(req.Avatar)
	if err != nil {
		return domain.UpdateAvatarResponse{}, domain.NewValidationError("avatar", err.Error())
	}

	objectKey, err := s.s3.UploadBlob("avatars", blob)
	if err != nil {
		return domain.UpdateAvatarResponse{}, err
	}

	if user.AvatarURL != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(user.AvatarURL))
	}

	user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UpdateAvatarResponse{}, err
	}

	return domain.UpdateAvatarResponse{Avatar: user.AvatarURL}, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.AvatarURL != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(user.AvatarURL))
		user.AvatarURL = ""
		return s.userRepository.UpdateUser(ctx, user)
	}
	return nil
}

func (s *userService) buildSubscriptionResponse(ctx context.Context, userID uint, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	isSubscribed, err := s.userRepository.IsSubscribed(ctx, userID, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	recipes, err := s.userRepository.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	count, err := s.userRepository.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	return domain.SubscriptionResponse{
		UserResponse: toUserResponse(author, isSubscribed),
		Recipes:      toRecipeMinified(recipes),
		RecipesCount: count,
	}, nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID uint, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	subscriptions, count, err := s.userRepository.GetSubscriptions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SubscriptionResponse, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if sub.Author == nil {
			continue
		}
		res, err := s.buildSubscriptionResponse(ctx, userID, sub.Author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, res)
	}
	return result, count, nil
}

func (s *userService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (domain.SubscriptionResponse, error) {
	if userID == authorID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	subscription := entities.Subscription{UserID: userID, AuthorID: authorID}
	if err := s.userRepository.Subscribe(ctx, &subscription); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.buildSubscriptionResponse(ctx, userID, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	rows, err := s.userRepository.Unsubscribe(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}
