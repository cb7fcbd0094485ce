package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepo interface {
	CreateProfile(ctx context.Context, profile *UserProfile) (*UserProfile, error)
	Resolve(ctx context.Context, id string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, profileType ProfileType, recordID string, fields map[string]interface{}) (*UserProfile, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	ListProviders(ctx context.Context, offset, limit int) ([]*UserProfile, int, error)
}

func profileCollection(pt ProfileType) string {
	if pt == ProfileTypeProvider {
		return ProviderColName
	}
	return OrganizerColName
}

func (mdb *MongodbRepo) CreateProfile(ctx context.Context, profile *UserProfile) (*UserProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, profileCollection(profile.ProfileType))
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := col.InsertOne(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to insert profile: %v", err)
	}
	return profile, nil
}

// Resolve translates an opaque id into a profile record. Resolution order,
// first match wins: organizer record by primary key, provider record by
// primary key, provider record by user_account_id. An unmatched id is a
// normal outcome and returns (nil, nil); only transport failures error.
func (mdb *MongodbRepo) Resolve(ctx context.Context, id string) (*UserProfile, error) {
	organizers, err := mdb.GetCollection(ctx, DBName, OrganizerColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	providers, err := mdb.GetCollection(ctx, DBName, ProviderColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var profile UserProfile

	err = organizers.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == nil {
		return &profile, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up organizer profile: %v", err)
	}

	err = providers.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == nil {
		return &profile, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up provider profile: %v", err)
	}

	err = providers.FindOne(ctx, bson.M{"user_account_id": id}).Decode(&profile)
	if err == nil {
		return &profile, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up provider profile by account id: %v", err)
	}

	return nil, nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, profileType ProfileType, recordID string, fields map[string]interface{}) (*UserProfile, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	col, err := mdb.GetCollection(ctx, DBName, profileCollection(profileType))
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated UserProfile
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": recordID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("no profile found to update")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	return &updated, nil
}

// IsUsernameTaken checks both profile collections case-insensitively.
// Callers apply the fail-open policy; this method reports transport
// failures honestly.
func (mdb *MongodbRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	filter := bson.M{"username": normalized}

	for _, colName := range []string{OrganizerColName, ProviderColName} {
		col, err := mdb.GetCollection(ctx, DBName, colName)
		if err != nil {
			return false, fmt.Errorf("error getting collection: %v", err)
		}
		count, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("failed to check username in %s: %v", colName, err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (mdb *MongodbRepo) ListProviders(ctx context.Context, offset, limit int) ([]*UserProfile, int, error) {
	col, err := mdb.GetCollection(ctx, DBName, ProviderColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %v", err)
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list providers: %v", err)
	}
	defer cursor.Close(ctx)

	var providers []*UserProfile
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode providers: %v", err)
	}

	return providers, int(total), nil
}
