package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gatherly/api/internal/connect"
	"github.com/gatherly/api/internal/helpers"
	"github.com/gatherly/api/internal/models"
)

type ProfileService struct {
	profileRepo models.ProfileRepo
	logger      *slog.Logger
}

func NewProfileService(profileRepo models.ProfileRepo, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Resolve translates an ambiguous id into a profile. A nil result with nil
// error means no profile matched; callers render it as an empty state.
func (ps *ProfileService) Resolve(ctx context.Context, id string) (*models.UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("profile id is required")
	}
	return ps.profileRepo.Resolve(ctx, id)
}

func (ps *ProfileService) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error) {
	profile, err := ps.profileRepo.Resolve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %v", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	// The record id may differ from the identity id for provider profiles.
	return ps.profileRepo.UpdateProfile(ctx, profile.ProfileType, profile.ID, fields)
}

// IsUsernameTaken fails open: when the store cannot answer, the username is
// reported as available so signup stays possible during an outage. Duplicates
// under that window are an accepted tradeoff.
func (ps *ProfileService) IsUsernameTaken(ctx context.Context, username string) bool {
	if strings.TrimSpace(username) == "" {
		return false
	}

	taken, err := ps.profileRepo.IsUsernameTaken(ctx, username)
	if err != nil {
		ps.logger.Warn("username uniqueness check failed, reporting available",
			"username", username,
			"error", err,
		)
		return false
	}
	return taken
}

func (ps *ProfileService) UploadAvatar(ctx context.Context, id string, imageData string) (string, error) {
	profile, err := ps.profileRepo.Resolve(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to resolve profile: %v", err)
	}
	if profile == nil {
		return "", fmt.Errorf("profile not found")
	}

	urls, _, err := helpers.UploadImages(ctx, connect.Cld, []string{imageData}, helpers.AvatarFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("no avatar URL returned after upload")
	}

	if _, err := ps.profileRepo.UpdateProfile(ctx, profile.ProfileType, profile.ID, map[string]interface{}{
		"avatar_url": urls[0],
	}); err != nil {
		return "", err
	}
	return urls[0], nil
}

// UploadPortfolioImages appends uploaded work samples to a provider's
// portfolio. Only provider profiles carry a portfolio.
func (ps *ProfileService) UploadPortfolioImages(ctx context.Context, id string, imageData []string) ([]string, error) {
	profile, err := ps.profileRepo.Resolve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %v", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}
	if !profile.IsProvider() {
		return nil, fmt.Errorf("only provider profiles have a portfolio")
	}

	urls, _, err := helpers.UploadImages(ctx, connect.Cld, imageData, helpers.PortfolioFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload portfolio images: %v", err)
	}

	portfolio := append(profile.PortfolioImages, urls...)
	if _, err := ps.profileRepo.UpdateProfile(ctx, profile.ProfileType, profile.ID, map[string]interface{}{
		"portfolio_images": portfolio,
	}); err != nil {
		return nil, err
	}
	return portfolio, nil
}

func (ps *ProfileService) ListProviders(ctx context.Context, offset, limit int) ([]*models.UserProfile, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return ps.profileRepo.ListProviders(ctx, offset, limit)
}
