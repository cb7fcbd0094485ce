package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OffersRepo interface {
	SubmitOffer(ctx context.Context, offer *Offer) (*Offer, error)
	GetOffer(ctx context.Context, id string) (*Offer, error)
	SetOfferStatus(ctx context.Context, offerID string, status OfferStatus) (*Offer, error)
	ListOffersReceived(ctx context.Context, ownerID string) ([]*Offer, error)
	ListOffersSent(ctx context.Context, providerID string) ([]*Offer, error)
}

func (mdb *MongodbRepo) SubmitOffer(ctx context.Context, offer *Offer) (*Offer, error) {
	if err := offer.ValidateOffer(); err != nil {
		return nil, fmt.Errorf("invalid offer data: %w", err)
	}

	col, err := mdb.GetCollection(ctx, DBName, OfferColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	offer.Description = strings.TrimSpace(offer.Description)
	offer.Status = OfferStatusSubmitted
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if _, err := col.InsertOne(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to insert offer: %v", err)
	}
	return offer, nil
}

func (mdb *MongodbRepo) GetOffer(ctx context.Context, id string) (*Offer, error) {
	col, err := mdb.GetCollection(ctx, DBName, OfferColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var offer Offer
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %v", err)
	}
	return &offer, nil
}

// SetOfferStatus moves an offer out of submitted. The filter pins the current
// status so a concurrent or repeated transition loses cleanly: the update
// matches nothing and ErrInvalidTransition is reported, store unchanged.
func (mdb *MongodbRepo) SetOfferStatus(ctx context.Context, offerID string, status OfferStatus) (*Offer, error) {
	if !CanTransition(OfferStatusSubmitted, status) {
		return nil, ErrInvalidTransition
	}

	col, err := mdb.GetCollection(ctx, DBName, OfferColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"_id": offerID, "status": OfferStatusSubmitted}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Offer
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Either the offer is missing or it already reached a terminal state.
		existing, lookupErr := mdb.GetOffer(ctx, offerID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			return nil, fmt.Errorf("no offer found to update")
		}
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update offer status: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) ListOffersReceived(ctx context.Context, ownerID string) ([]*Offer, error) {
	return mdb.listOffers(ctx, bson.M{"event_owner_id": ownerID})
}

func (mdb *MongodbRepo) ListOffersSent(ctx context.Context, providerID string) ([]*Offer, error) {
	return mdb.listOffers(ctx, bson.M{"provider_id": providerID})
}

func (mdb *MongodbRepo) listOffers(ctx context.Context, filter bson.M) ([]*Offer, error) {
	col, err := mdb.GetCollection(ctx, DBName, OfferColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %v", err)
	}
	defer cursor.Close(ctx)

	var offers []*Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %v", err)
	}
	return offers, nil
}
