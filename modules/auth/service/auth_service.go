package service

import (
	"context"
	"strings"

	"meteocal/core/cache"
	"meteocal/core/constants"
	"meteocal/core/errors"
	"meteocal/core/logger"
	"meteocal/core/utils"
	"meteocal/modules/auth/dto"
	"meteocal/modules/auth/entity"
	"meteocal/modules/auth/mapper"
	"meteocal/modules/auth/repository"

	"github.com/google/uuid"
)

// LoginHook runs after every successful login. Its error never fails the login.
type LoginHook interface {
	AfterLogin(ctx context.Context, userID uuid.UUID) error
}

type AuthServiceInterface interface {
	Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	ListUsersExcept(ctx context.Context, id uuid.UUID) ([]dto.UserResponse, *errors.AppError)
}

type AuthService struct {
	repo  repository.UserRepository
	cache cache.Cache
	hooks []LoginHook
}

func NewAuthService(repo repository.UserRepository, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

// AddLoginHook registers a hook run after successful logins.
func (service *AuthService) AddLoginHook(hook LoginHook) {
	service.hooks = append(service.hooks, hook)
}

func (service *AuthService) Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(requestData.Email))

	existing, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Register:GetUserByEmail:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", nil)
	}

	hashedPassword, err := utils.HashPassword(requestData.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(requestData.FirstName),
		LastName:  strings.TrimSpace(requestData.LastName),
		Email:     email,
		Password:  hashedPassword,
		UserGroup: constants.UserGroupUsers,
	}

	created, err := service.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("AuthService:Register:CreateUser:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	logger.Info("AuthService:Register:Success", "user_id", created.ID)
	return mapper.ToUserDTO(created), nil
}

func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(requestData.Email))

	// Check if user is currently blocked due to too many failed login attempts
	blocked, err := service.cache.IsLoginBlocked(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		if err := service.cache.Expire(ctx, email, constants.BlockDuration); err != nil {
			logger.Error("AuthService:Login:Expire:Error", "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to expire login attempt", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user is locked for 15 minutes", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:GetUserByEmail:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}

	if user == nil || !utils.ComparePassword(user.Password, requestData.Password) {
		if err := service.cache.IncrementLoginAttempt(ctx, email); err != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error", "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to increment login attempt", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Email, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	refreshToken, err := utils.GenerateToken(user.ID, user.Email, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	if err := service.cache.Del(ctx, email); err != nil {
		logger.Error("AuthService:Login:Del:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reset login attempts", err)
	}

	for _, hook := range service.hooks {
		if err := hook.AfterLogin(ctx, user.ID); err != nil {
			logger.Error("AuthService:Login:AfterLogin:Error", "user_id", user.ID, "error", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout blacklists the token for the rest of its lifetime.
func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	if err := service.cache.AddToTokenBlacklist(ctx, token, claims.TokenTTL()); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

func (service *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Error("AuthService:GetUserByID:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return mapper.ToUserDTO(user), nil
}

func (service *AuthService) ListUsersExcept(ctx context.Context, id uuid.UUID) ([]dto.UserResponse, *errors.AppError) {
	users, err := service.repo.GetUsersExcept(ctx, id)
	if err != nil {
		logger.Error("AuthService:ListUsersExcept:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list users", err)
	}
	return mapper.ToUserDTOs(users), nil
}
