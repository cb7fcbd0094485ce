package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gatherly/api/internal/models"
)

type ReviewService struct {
	reviewsRepo models.ReviewsRepo
	profileRepo models.ProfileRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo, profileRepo models.ProfileRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		profileRepo: profileRepo,
	}
}

func (rs *ReviewService) CreateReview(ctx context.Context, reviewerID, entityID, entityType string, rating int, comment string) (*models.Review, error) {
	reviewer, err := rs.profileRepo.Resolve(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer: %v", err)
	}
	if reviewer == nil {
		return nil, fmt.Errorf("reviewer not found")
	}

	review := &models.Review{
		ReviewerID:     reviewerID,
		ReviewerName:   reviewer.Name,
		ReviewerAvatar: reviewer.AvatarURL,
		EntityID:       entityID,
		EntityType:     entityType,
		Rating:         rating,
		Comment:        comment,
	}
	return rs.reviewsRepo.CreateReview(ctx, review)
}

// EntityReviews returns the raw review list plus its aggregate for display.
func (rs *ReviewService) EntityReviews(ctx context.Context, entityID string) ([]*models.Review, models.ReviewSummary, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, models.ReviewSummary{}, fmt.Errorf("entity id is required")
	}

	reviews, err := rs.reviewsRepo.ListReviewsByEntity(ctx, entityID)
	if err != nil {
		return nil, models.ReviewSummary{}, err
	}
	return reviews, models.Summarize(reviews), nil
}
