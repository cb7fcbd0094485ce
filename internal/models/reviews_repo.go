package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	ListReviewsByEntity(ctx context.Context, entityID string) ([]*Review, error)
	ListReviewsByReviewer(ctx context.Context, reviewerID string) ([]*Review, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}
	review.Sanitize()

	col, err := mdb.GetCollection(ctx, DBName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()

	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to insert review: %v", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) ListReviewsByEntity(ctx context.Context, entityID string) ([]*Review, error) {
	return mdb.listReviews(ctx, bson.M{"entity_id": entityID})
}

func (mdb *MongodbRepo) ListReviewsByReviewer(ctx context.Context, reviewerID string) ([]*Review, error) {
	return mdb.listReviews(ctx, bson.M{"reviewer_id": reviewerID})
}

func (mdb *MongodbRepo) listReviews(ctx context.Context, filter bson.M) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, DBName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %v", err)
	}
	return reviews, nil
}
