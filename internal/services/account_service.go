package services

import (
	"context"

	"stravadash/internal/models/db_models"
	"stravadash/internal/models/request_models"
	"stravadash/internal/models/response_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) error
}

type AccountService struct {
	userRepo repositories.UserRepository
}

func NewAccountService(userRepo repositories.UserRepository) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",
		UseMetric:    true,
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	profile := BuildProfileResponse(user)
	return &profile, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	if request.DisplayName != nil {
		user.Name = *request.DisplayName
	}
	if request.UseMetric != nil {
		user.UseMetric = *request.UseMetric
	}
	if request.BirthYear != nil {
		user.BirthYear = request.BirthYear
	}
	if request.Gender != nil {
		user.Gender = request.Gender
	}

	if err := a.userRepo.UpdateProfile(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func BuildProfileResponse(user *db_models.User) response_models.ProfileResponse {
	return response_models.ProfileResponse{
		ID:              user.ID.String(),
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		StravaConnected: user.IsStravaConnected(),
		StravaID:        user.StravaID,
		LastStravaSync:  user.LastStravaSync,
		UseMetric:       user.UseMetric,
		BirthYear:       user.BirthYear,
		Gender:          user.Gender,
	}
}
