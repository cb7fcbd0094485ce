package models

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventTypeWedding    EventType = "Wedding"
	EventTypeBirthday   EventType = "Birthday"
	EventTypeCorporate  EventType = "Corporate"
	EventTypeConference EventType = "Conference"
	EventTypeParty      EventType = "Party"
	EventTypeOther      EventType = "Other"
)

// Event is owned by a single organizer. Records live in a flat collection
// namespaced by owner_id; the event's own id stays globally addressable so
// discovery pages can link to any event without knowing the owner.
type Event struct {
	ID           string    `bson:"_id" json:"id"`
	OwnerID      string    `bson:"owner_id" json:"userAccountId"`
	Title        string    `bson:"title" json:"title" validate:"required,min=3,max=120"`
	Description  string    `bson:"description" json:"description" validate:"required,min=10"`
	Type         EventType `bson:"type" json:"type" validate:"required,oneof=Wedding Birthday Corporate Conference Party Other"`
	EventDate    time.Time `bson:"event_date" json:"eventDate" validate:"required"`
	Location     Location  `bson:"location" json:"location"`
	ServiceNeeds []string  `bson:"service_needs" json:"serviceNeeds"`
	ImageURLs    []string  `bson:"image_urls" json:"imageUrls"`
	Likes        int       `bson:"likes" json:"likes"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (e *Event) Sanitize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
}

func (e *Event) ValidateEvent() error {
	if err := Validate.Struct(e); err != nil {
		return err
	}
	if e.Location.Display() == "" {
		return fmt.Errorf("location is required")
	}
	return nil
}

// Comment is an append-only note scoped under its parent event or post.
// Author identity is snapshotted at write time; the parent is referenced by
// id only, so readers must tolerate comments on deleted parents.
type Comment struct {
	ID           string    `bson:"_id" json:"id"`
	ParentID     string    `bson:"parent_id" json:"parentId"`
	ParentType   string    `bson:"parent_type" json:"parentType"`
	AuthorID     string    `bson:"author_id" json:"authorId"`
	AuthorName   string    `bson:"author_name" json:"authorName"`
	AuthorAvatar string    `bson:"author_avatar" json:"authorAvatar"`
	Content      string    `bson:"content" json:"content"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (c *Comment) ValidateComment() error {
	if c.ParentID == "" {
		return fmt.Errorf("parent id is required")
	}
	if c.ParentType != "event" && c.ParentType != "post" {
		return fmt.Errorf("unsupported parent type: %s", c.ParentType)
	}
	if c.AuthorID == "" {
		return fmt.Errorf("author id is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("comment content cannot be empty")
	}
	return nil
}
