package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gatherly/api/internal/connect"
	"github.com/gatherly/api/internal/helpers"
	"github.com/gatherly/api/internal/models"
)

type EventService struct {
	eventsRepo  models.EventsRepo
	profileRepo models.ProfileRepo
}

func NewEventService(eventsRepo models.EventsRepo, profileRepo models.ProfileRepo) *EventService {
	return &EventService{
		eventsRepo:  eventsRepo,
		profileRepo: profileRepo,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, ownerID string, event *models.Event) (*models.Event, error) {
	event.Sanitize()
	if err := event.ValidateEvent(); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %v", err)
	}

	// Upload inspirational images before the write so a failed upload never
	// leaves an event pointing at missing media.
	var uploadedPublicIDs []string
	if len(event.ImageURLs) > 0 {
		uploadChan := make(chan struct {
			urls      []string
			publicIDs []string
		}, 1)
		errorChan := make(chan error, 1)

		go func() {
			urls, publicIDs, uploadErr := helpers.UploadImages(ctx, connect.Cld, event.ImageURLs, helpers.EventsFolder)
			if uploadErr != nil {
				errorChan <- uploadErr
				return
			}
			uploadChan <- struct {
				urls      []string
				publicIDs []string
			}{urls, publicIDs}
		}()

		select {
		case result := <-uploadChan:
			event.ImageURLs = result.urls
			uploadedPublicIDs = result.publicIDs
		case uploadErr := <-errorChan:
			return nil, fmt.Errorf("failed to upload images: %v", uploadErr)
		case <-time.After(30 * time.Second):
			return nil, fmt.Errorf("image upload timeout")
		}
	}

	created, err := es.eventsRepo.CreateEvent(ctx, ownerID, event)
	if err != nil {
		if len(uploadedPublicIDs) > 0 {
			helpers.DeleteImages(ctx, connect.Cld, helpers.EventsFolder, uploadedPublicIDs)
		}
		return nil, err
	}
	return created, nil
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("event id is required")
	}
	return es.eventsRepo.GetEvent(ctx, id)
}

func (es *EventService) ListEvents(ctx context.Context, offset, limit int) ([]*models.Event, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return es.eventsRepo.ListEvents(ctx, offset, limit)
}

func (es *EventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*models.Event, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	return es.eventsRepo.ListEventsByOwner(ctx, ownerID)
}

// DeleteEvent removes the owner's event. Offers and comments referencing it
// are not cascaded; listings degrade around the dangling references.
func (es *EventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	if ownerID == "" || eventID == "" {
		return fmt.Errorf("owner id and event id are required")
	}
	return es.eventsRepo.DeleteEvent(ctx, ownerID, eventID)
}

func (es *EventService) LikeEvent(ctx context.Context, eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return fmt.Errorf("event id is required")
	}
	return es.eventsRepo.LikeEvent(ctx, eventID)
}

func (es *EventService) AddComment(ctx context.Context, authorID, parentID, parentType, content string) (*models.Comment, error) {
	author, err := es.profileRepo.Resolve(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment author: %v", err)
	}
	if author == nil {
		return nil, fmt.Errorf("comment author not found")
	}

	comment := &models.Comment{
		ParentID:     parentID,
		ParentType:   parentType,
		AuthorID:     authorID,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarURL,
		Content:      strings.TrimSpace(content),
	}
	return es.eventsRepo.AddComment(ctx, comment)
}

func (es *EventService) ListComments(ctx context.Context, parentID string) ([]*models.Comment, error) {
	if strings.TrimSpace(parentID) == "" {
		return nil, fmt.Errorf("parent id is required")
	}
	return es.eventsRepo.ListComments(ctx, parentID)
}
