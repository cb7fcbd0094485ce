package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gatherly/api/internal/models"
)

// In-memory repo fakes mirroring the store semantics: idempotent conversation
// upserts, status-pinned offer transitions, three-branch profile resolution.

type fakeProfileRepo struct {
	organizers map[string]*models.UserProfile
	providers  map[string]*models.UserProfile
	lookupErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		organizers: make(map[string]*models.UserProfile),
		providers:  make(map[string]*models.UserProfile),
	}
}

func (f *fakeProfileRepo) CreateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if profile.IsProvider() {
		f.providers[profile.ID] = profile
	} else {
		f.organizers[profile.ID] = profile
	}
	return profile, nil
}

func (f *fakeProfileRepo) Resolve(ctx context.Context, id string) (*models.UserProfile, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if p, ok := f.organizers[id]; ok {
		return p, nil
	}
	if p, ok := f.providers[id]; ok {
		return p, nil
	}
	for _, p := range f.providers {
		if p.UserAccountID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) UpdateProfile(ctx context.Context, profileType models.ProfileType, recordID string, fields map[string]interface{}) (*models.UserProfile, error) {
	records := f.organizers
	if profileType == models.ProfileTypeProvider {
		records = f.providers
	}
	p, ok := records[recordID]
	if !ok {
		return nil, fmt.Errorf("no profile found to update")
	}
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if bio, ok := fields["bio"].(string); ok {
		p.Bio = bio
	}
	if avatar, ok := fields["avatar_url"].(string); ok {
		p.AvatarURL = avatar
	}
	return p, nil
}

func (f *fakeProfileRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	normalized := strings.ToLower(strings.TrimSpace(username))
	for _, records := range []map[string]*models.UserProfile{f.organizers, f.providers} {
		for _, p := range records {
			if p.Username == normalized {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeProfileRepo) ListProviders(ctx context.Context, offset, limit int) ([]*models.UserProfile, int, error) {
	ids := make([]string, 0, len(f.providers))
	for id := range f.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*models.UserProfile
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, f.providers[id])
	}
	return out, len(f.providers), nil
}

type fakeEventsRepo struct {
	events map[string]*models.Event
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{events: make(map[string]*models.Event)}
}

func (f *fakeEventsRepo) CreateEvent(ctx context.Context, ownerID string, event *models.Event) (*models.Event, error) {
	event.OwnerID = ownerID
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventsRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventsRepo) ListEvents(ctx context.Context, offset, limit int) ([]*models.Event, int, error) {
	var out []*models.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventsRepo) ListEventsByOwner(ctx context.Context, ownerID string) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range f.events {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventsRepo) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	e, ok := f.events[eventID]
	if !ok || e.OwnerID != ownerID {
		return fmt.Errorf("no event found to delete")
	}
	delete(f.events, eventID)
	return nil
}

func (f *fakeEventsRepo) LikeEvent(ctx context.Context, eventID string) error {
	e, ok := f.events[eventID]
	if !ok {
		return fmt.Errorf("no event found to like")
	}
	e.Likes++
	return nil
}

func (f *fakeEventsRepo) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	comment.CreatedAt = time.Now()
	return comment, nil
}

func (f *fakeEventsRepo) ListComments(ctx context.Context, parentID string) ([]*models.Comment, error) {
	return nil, nil
}

type fakeOffersRepo struct {
	offers map[string]*models.Offer
	nextID int
}

func newFakeOffersRepo() *fakeOffersRepo {
	return &fakeOffersRepo{offers: make(map[string]*models.Offer)}
}

func (f *fakeOffersRepo) SubmitOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := offer.ValidateOffer(); err != nil {
		return nil, err
	}
	f.nextID++
	offer.ID = fmt.Sprintf("offer-%d", f.nextID)
	offer.Status = models.OfferStatusSubmitted
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = offer.CreatedAt
	f.offers[offer.ID] = offer
	return offer, nil
}

func (f *fakeOffersRepo) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	return f.offers[id], nil
}

func (f *fakeOffersRepo) SetOfferStatus(ctx context.Context, offerID string, status models.OfferStatus) (*models.Offer, error) {
	if !models.CanTransition(models.OfferStatusSubmitted, status) {
		return nil, models.ErrInvalidTransition
	}
	offer, ok := f.offers[offerID]
	if !ok {
		return nil, fmt.Errorf("no offer found to update")
	}
	// Status pinned to submitted, matching the conditional store update.
	if offer.Status != models.OfferStatusSubmitted {
		return nil, models.ErrInvalidTransition
	}
	offer.Status = status
	offer.UpdatedAt = time.Now()
	return offer, nil
}

func (f *fakeOffersRepo) ListOffersReceived(ctx context.Context, ownerID string) ([]*models.Offer, error) {
	var out []*models.Offer
	for _, o := range f.offers {
		if o.EventOwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOffersRepo) ListOffersSent(ctx context.Context, providerID string) ([]*models.Offer, error) {
	var out []*models.Offer
	for _, o := range f.offers {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeConversationsRepo struct {
	conversations map[string]*models.Conversation
	messages      map[string][]*models.Message
	nextMsg       int
	touchErr      error
}

func newFakeConversationsRepo() *fakeConversationsRepo {
	return &fakeConversationsRepo{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string][]*models.Message),
	}
}

func (f *fakeConversationsRepo) FindBetween(ctx context.Context, a, b string) (*models.Conversation, error) {
	return f.conversations[models.PairKey(a, b)], nil
}

func (f *fakeConversationsRepo) GetOrCreateConversation(ctx context.Context, a, b string, snapA, snapB models.ParticipantSnapshot) (*models.Conversation, error) {
	key := models.PairKey(a, b)
	if existing, ok := f.conversations[key]; ok {
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	convo := &models.Conversation{
		ID:             key,
		ParticipantIDs: []string{a, b},
		Participants: map[string]models.ParticipantSnapshot{
			a: snapA,
			b: snapB,
		},
		UnreadCounts: map[string]int{a: 0, b: 0},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.conversations[key] = convo
	return convo, nil
}

func (f *fakeConversationsRepo) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	return f.conversations[id], nil
}

func (f *fakeConversationsRepo) ListConversations(ctx context.Context, participantID string) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(participantID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConversationsRepo) TouchConversation(ctx context.Context, conversationID, preview string, at time.Time, unreadParticipantID string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	convo, ok := f.conversations[conversationID]
	if !ok {
		return fmt.Errorf("no conversation found to update")
	}
	convo.LastMessage = preview
	convo.LastMessageAt = at
	convo.UpdatedAt = at
	convo.UnreadCounts[unreadParticipantID]++
	return nil
}

func (f *fakeConversationsRepo) MarkRead(ctx context.Context, conversationID, participantID string) error {
	convo, ok := f.conversations[conversationID]
	if !ok {
		return fmt.Errorf("no conversation found to update")
	}
	convo.UnreadCounts[participantID] = 0
	return nil
}

func (f *fakeConversationsRepo) AppendMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	f.nextMsg++
	msg := &models.Message{
		ID:             fmt.Sprintf("msg-%d", f.nextMsg),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	f.messages[conversationID] = append(f.messages[conversationID], msg)
	return msg, nil
}

func (f *fakeConversationsRepo) ListMessages(ctx context.Context, conversationID string) ([]*models.Message, error) {
	return f.messages[conversationID], nil
}
