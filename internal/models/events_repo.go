package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo interface {
	CreateEvent(ctx context.Context, ownerID string, event *Event) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, offset, limit int) ([]*Event, int, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
	LikeEvent(ctx context.Context, eventID string) error
	AddComment(ctx context.Context, comment *Comment) (*Comment, error)
	ListComments(ctx context.Context, parentID string) ([]*Comment, error)
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, ownerID string, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.OwnerID = ownerID
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.ImageURLs == nil {
		event.ImageURLs = []string{}
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %v", err)
	}
	return event, nil
}

// GetEvent addresses an event by its flat id regardless of owner. A missing
// event is a normal outcome and returns (nil, nil).
func (mdb *MongodbRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %v", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context, offset, limit int) ([]*Event, int, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %v", err)
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("failed to decode events: %v", err)
	}

	return events, int(total), nil
}

func (mdb *MongodbRepo) ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %v", err)
	}
	return events, nil
}

// DeleteEvent removes the record when it belongs to ownerID. Comments and
// offers referencing the event are left in place; readers null-check joins.
func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": eventID, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete event: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no event found to delete")
	}
	return nil
}

func (mdb *MongodbRepo) LikeEvent(ctx context.Context, eventID string) error {
	col, err := mdb.GetCollection(ctx, DBName, EventColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return fmt.Errorf("failed to like event: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no event found to like")
	}
	return nil
}

func (mdb *MongodbRepo) AddComment(ctx context.Context, comment *Comment) (*Comment, error) {
	if err := comment.ValidateComment(); err != nil {
		return nil, fmt.Errorf("invalid comment data: %w", err)
	}

	col, err := mdb.GetCollection(ctx, DBName, CommentColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()

	if _, err := col.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %v", err)
	}
	return comment, nil
}

func (mdb *MongodbRepo) ListComments(ctx context.Context, parentID string) ([]*Comment, error) {
	col, err := mdb.GetCollection(ctx, DBName, CommentColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := col.Find(ctx, bson.M{"parent_id": parentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %v", err)
	}
	return comments, nil
}
