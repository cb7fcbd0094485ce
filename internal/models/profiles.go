package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type ProfileType string

const (
	ProfileTypeOrganizer ProfileType = "eventPoster"
	ProfileTypeProvider  ProfileType = "serviceProvider"
)

// Service categories a provider can offer and an event can request.
const (
	CategoryPhotography = "Photography"
	CategoryDJ          = "DJ"
	CategoryCatering    = "Catering"
	CategoryDecor       = "Decor"
	CategoryPlanning    = "Planning"
	CategoryMusic       = "Music"
	CategoryVideography = "Videography"
)

// Location is stored either as a structured city/country/lat/lng document or,
// for older records, as a plain string. Both shapes must round-trip unchanged.
type Location struct {
	City    string  `json:"city,omitempty" bson:"city,omitempty"`
	Country string  `json:"country,omitempty" bson:"country,omitempty"`
	Lat     float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty" bson:"lng,omitempty"`

	// Freeform holds the legacy plain-string form. When set, the structured
	// fields are empty and the value is marshalled back as a bare string.
	Freeform string `json:"-" bson:"-"`
}

// locationDoc avoids recursing into the custom marshallers.
type locationDoc struct {
	City    string  `json:"city,omitempty" bson:"city,omitempty"`
	Country string  `json:"country,omitempty" bson:"country,omitempty"`
	Lat     float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

func (l Location) IsStructured() bool {
	return l.Freeform == ""
}

// Display returns the human-readable form regardless of shape.
func (l Location) Display() string {
	if l.Freeform != "" {
		return l.Freeform
	}
	parts := []string{}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.Freeform != "" {
		return json.Marshal(l.Freeform)
	}
	return json.Marshal(locationDoc{City: l.City, Country: l.Country, Lat: l.Lat, Lng: l.Lng})
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Location{Freeform: s}
		return nil
	}

	var doc locationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("location must be a string or an object: %v", err)
	}
	*l = Location{City: doc.City, Country: doc.Country, Lat: doc.Lat, Lng: doc.Lng}
	return nil
}

func (l Location) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if l.Freeform != "" {
		return bson.MarshalValue(l.Freeform)
	}
	return bson.MarshalValue(locationDoc{City: l.City, Country: l.Country, Lat: l.Lat, Lng: l.Lng})
}

func (l *Location) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*l = Location{Freeform: s}
		return nil
	case bsontype.EmbeddedDocument:
		var doc locationDoc
		if err := bson.UnmarshalValue(t, data, &doc); err != nil {
			return err
		}
		*l = Location{City: doc.City, Country: doc.Country, Lat: doc.Lat, Lng: doc.Lng}
		return nil
	case bsontype.Null:
		*l = Location{}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Location", t)
	}
}

// UserProfile covers both organizer and provider records. Organizer records
// are keyed by the identity id. Provider records may carry their own id with
// a back-reference to the owning identity in UserAccountID.
type UserProfile struct {
	ID          string      `bson:"_id" json:"id"`
	Name        string      `bson:"name" json:"name" validate:"required"`
	Username    string      `bson:"username" json:"username" validate:"required,min=3,max=30"`
	Email       string      `bson:"email" json:"email" validate:"required,email"`
	AvatarURL   string      `bson:"avatar_url" json:"avatarUrl"`
	Bio         string      `bson:"bio,omitempty" json:"bio,omitempty"`
	Location    *Location   `bson:"location,omitempty" json:"location,omitempty"`
	ProfileType ProfileType `bson:"profile_type" json:"profileType" validate:"required,oneof=eventPoster serviceProvider"`

	// Provider-only fields.
	UserAccountID   string   `bson:"user_account_id,omitempty" json:"userAccountId,omitempty"`
	Skills          []string `bson:"skills,omitempty" json:"skills,omitempty"`
	PortfolioImages []string `bson:"portfolio_images,omitempty" json:"portfolioImages,omitempty"`
	ExperienceLevel string   `bson:"experience_level,omitempty" json:"experienceLevel,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (p *UserProfile) IsProvider() bool {
	return p.ProfileType == ProfileTypeProvider
}

// AccountID is the identity that owns this profile record, whichever way the
// record is keyed.
func (p *UserProfile) AccountID() string {
	if p.UserAccountID != "" {
		return p.UserAccountID
	}
	return p.ID
}

func (p *UserProfile) Sanitize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Username = strings.ToLower(strings.TrimSpace(p.Username))
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Bio = strings.TrimSpace(p.Bio)
}

// ParticipantSnapshot is the denormalized participant view embedded in
// conversations.
type ParticipantSnapshot struct {
	Name      string `bson:"name" json:"name"`
	AvatarURL string `bson:"avatar_url" json:"avatarUrl"`
}

func (p *UserProfile) Snapshot() ParticipantSnapshot {
	return ParticipantSnapshot{Name: p.Name, AvatarURL: p.AvatarURL}
}
