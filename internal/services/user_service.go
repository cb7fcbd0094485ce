package services

import (
	"context"
	"fmt"

	"github.com/gatherly/api/internal/helpers"
	"github.com/gatherly/api/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

// UserService owns the identity boundary: account creation, login and token
// refresh against Supabase. The marketplace profile record is created in the
// same step so every identity resolves to a profile immediately.
type UserService struct {
	authRepo    models.AuthRepo
	profileRepo models.ProfileRepo
}

func NewUserService(authRepo models.AuthRepo, profileRepo models.ProfileRepo) *UserService {
	return &UserService{
		authRepo:    authRepo,
		profileRepo: profileRepo,
	}
}

func (us *UserService) SignUp(ctx context.Context, input *models.SignupInput) (*models.UserProfile, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, err
	}

	if !helpers.IsPasswordStrong(input.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	res, err := us.authRepo.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:          res.User.ID.String(),
		Name:        input.Name,
		Username:    input.Username,
		Email:       input.Email,
		ProfileType: input.ProfileType,
		Skills:      input.Skills,
	}
	profile.Sanitize()

	created, err := us.profileRepo.CreateProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("account created but profile setup failed: %v", err)
	}
	return created, nil
}

func (us *UserService) Authenticate(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	response, err := us.authRepo.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}
	return response, nil
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := us.authRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}
