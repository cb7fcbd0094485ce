package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type OfferStatus string

const (
	OfferStatusSubmitted OfferStatus = "submitted"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
)

const (
	OfferDescriptionMinLen = 10
	OfferDescriptionMaxLen = 500
)

// ErrInvalidTransition is returned when a status change is attempted on an
// offer that has already reached a terminal state.
var ErrInvalidTransition = errors.New("offer status can only change from submitted to accepted or rejected")

// Offer is a priced proposal from a provider against a specific event. The
// event owner id is denormalized onto the offer so inbox queries do not need
// to walk the events collection first.
type Offer struct {
	ID           string      `bson:"_id" json:"id"`
	EventID      string      `bson:"event_id" json:"eventID"`
	EventOwnerID string      `bson:"event_owner_id" json:"eventOwnerId"`
	ProviderID   string      `bson:"provider_id" json:"serviceProviderProfileId"`
	Description  string      `bson:"description" json:"description"`
	Price        float64     `bson:"price" json:"price"`
	Status       OfferStatus `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `bson:"updated_at" json:"updated_at"`
}

func (o OfferStatus) IsTerminal() bool {
	return o == OfferStatusAccepted || o == OfferStatusRejected
}

func (o OfferStatus) IsValid() bool {
	switch o {
	case OfferStatusSubmitted, OfferStatusAccepted, OfferStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether an offer currently in status `from` may move
// to `to`. The lifecycle is one-directional: submitted -> accepted|rejected.
func CanTransition(from, to OfferStatus) bool {
	return from == OfferStatusSubmitted && to.IsTerminal()
}

func (o *Offer) ValidateOffer() error {
	if o.EventID == "" {
		return fmt.Errorf("event id is required")
	}
	if o.ProviderID == "" {
		return fmt.Errorf("provider id is required")
	}
	if o.Price <= 0 {
		return fmt.Errorf("price must be a positive number")
	}
	desc := strings.TrimSpace(o.Description)
	if len(desc) < OfferDescriptionMinLen {
		return fmt.Errorf("description must be at least %d characters", OfferDescriptionMinLen)
	}
	if len(desc) > OfferDescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters", OfferDescriptionMaxLen)
	}
	return nil
}

// OfferView is an offer resolved with best-effort joins. Event and Provider
// are nil when the referenced record no longer resolves; the offer itself is
// always present.
type OfferView struct {
	Offer    *Offer       `json:"offer"`
	Event    *Event       `json:"event,omitempty"`
	Provider *UserProfile `json:"provider,omitempty"`
}
