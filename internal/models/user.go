package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go/types"
)

// SignupInput is the payload for account creation. Identity lives in
// Supabase; the marketplace profile record is created alongside it in the
// profile collections.
type SignupInput struct {
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=8"`
	Name        string      `json:"name" validate:"required"`
	Username    string      `json:"username" validate:"required,min=3,max=30"`
	ProfileType ProfileType `json:"profileType" validate:"required,oneof=eventPoster serviceProvider"`
	Skills      []string    `json:"skills,omitempty"`
}

type AuthRepo interface {
	SignUp(ctx context.Context, email, password string) (*types.SignupResponse, error)
	Authenticate(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
}

func (su *SupabaseRepo) SignUp(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if strings.Contains(err.Error(), "User already registered") ||
			strings.Contains(err.Error(), "unique constraint") {
			return nil, fmt.Errorf("email already in use")
		}
		return nil, fmt.Errorf("failed to create account")
	}
	return res, nil
}

func (su *SupabaseRepo) Authenticate(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}
