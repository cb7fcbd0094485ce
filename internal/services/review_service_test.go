package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gatherly/api/internal/models"
)

type fakeReviewsRepo struct {
	reviews []*models.Review
	nextID  int
}

func (f *fakeReviewsRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}
	review.Sanitize()
	f.nextID++
	review.ID = fmt.Sprintf("rev-%d", f.nextID)
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeReviewsRepo) ListReviewsByEntity(ctx context.Context, entityID string) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewsRepo) ListReviewsByReviewer(ctx context.Context, reviewerID string) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.ReviewerID == reviewerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func reviewFixture() (*ReviewService, *fakeReviewsRepo) {
	reviews := &fakeReviewsRepo{}
	profiles := newFakeProfileRepo()
	profiles.organizers["alice"] = &models.UserProfile{
		ID: "alice", Name: "Alice", AvatarURL: "https://cdn.example/alice.png",
		ProfileType: models.ProfileTypeOrganizer,
	}
	return NewReviewService(reviews, profiles), reviews
}

func TestCreateReviewSnapshotsReviewer(t *testing.T) {
	svc, _ := reviewFixture()

	review, err := svc.CreateReview(context.Background(), "alice", "prov-1", "user", 5, "  great work  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.ReviewerName != "Alice" {
		t.Errorf("reviewer name not snapshotted: %q", review.ReviewerName)
	}
	if review.ReviewerAvatar != "https://cdn.example/alice.png" {
		t.Errorf("reviewer avatar not snapshotted: %q", review.ReviewerAvatar)
	}
	if review.Comment != "great work" {
		t.Errorf("comment not trimmed: %q", review.Comment)
	}
}

func TestCreateReviewGuards(t *testing.T) {
	svc, _ := reviewFixture()
	ctx := context.Background()

	if _, err := svc.CreateReview(ctx, "ghost", "prov-1", "user", 5, "x"); err == nil {
		t.Error("expected unknown reviewer to be rejected")
	}
	if _, err := svc.CreateReview(ctx, "alice", "alice", "user", 5, "x"); err == nil {
		t.Error("expected self-review to be rejected")
	}
	if _, err := svc.CreateReview(ctx, "alice", "prov-1", "user", 0, "x"); err == nil {
		t.Error("expected out-of-range rating to be rejected")
	}
}

func TestEntityReviewsIncludesSummary(t *testing.T) {
	svc, _ := reviewFixture()
	ctx := context.Background()

	svc.CreateReview(ctx, "alice", "prov-1", "user", 5, "excellent")
	svc.CreateReview(ctx, "alice", "prov-1", "user", 5, "again excellent")
	svc.CreateReview(ctx, "alice", "prov-1", "user", 1, "off day")

	reviews, summary, err := svc.EntityReviews(ctx, "prov-1")
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(reviews))
	}
	if summary.Average != 3.7 || summary.Total != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	if _, _, err := svc.EntityReviews(ctx, "  "); err == nil {
		t.Error("expected blank entity id to be rejected")
	}
}
