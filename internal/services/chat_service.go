package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gatherly/api/internal/hub"
	"github.com/gatherly/api/internal/models"
)

// ChatService is the messaging core: it joins the conversation store, the
// append-only message log and the live-delivery hub.
type ChatService struct {
	convRepo    models.ConversationsRepo
	profileRepo models.ProfileRepo
	hub         *hub.Hub
}

func NewChatService(convRepo models.ConversationsRepo, profileRepo models.ProfileRepo, h *hub.Hub) *ChatService {
	return &ChatService{
		convRepo:    convRepo,
		profileRepo: profileRepo,
		hub:         h,
	}
}

// GetOrCreate returns the thread for the pair, creating it lazily on first
// contact. Calling it twice for the same unordered pair yields the same
// conversation id.
func (cs *ChatService) GetOrCreate(ctx context.Context, a, b string) (*models.Conversation, error) {
	if err := models.ValidatePair(a, b); err != nil {
		return nil, err
	}

	profileA, err := cs.profileRepo.Resolve(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %v", err)
	}
	if profileA == nil {
		return nil, fmt.Errorf("participant %s not found", a)
	}

	profileB, err := cs.profileRepo.Resolve(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %v", err)
	}
	if profileB == nil {
		return nil, fmt.Errorf("participant %s not found", b)
	}

	return cs.convRepo.GetOrCreateConversation(ctx, a, b, profileA.Snapshot(), profileB.Snapshot())
}

func (cs *ChatService) GetConversation(ctx context.Context, id, participantID string) (*models.Conversation, error) {
	convo, err := cs.convRepo.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if convo == nil {
		return nil, nil
	}
	if !convo.HasParticipant(participantID) {
		return nil, fmt.Errorf("you are not a participant of this conversation")
	}
	return convo, nil
}

func (cs *ChatService) ListConversations(ctx context.Context, participantID string) ([]*models.Conversation, error) {
	if strings.TrimSpace(participantID) == "" {
		return nil, fmt.Errorf("participant id is required")
	}
	return cs.convRepo.ListConversations(ctx, participantID)
}

// Send appends to the message log, delivers to live subscribers, then
// updates the conversation preview and bumps the other participant's unread
// counter. The metadata write is not atomic with the append; a failure
// between the two leaves a stale preview that the next send repairs.
func (cs *ChatService) Send(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content cannot be empty")
	}

	convo, err := cs.convRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if convo == nil {
		return nil, fmt.Errorf("conversation not found")
	}
	if !convo.HasParticipant(senderID) {
		return nil, fmt.Errorf("sender is not a participant of this conversation")
	}

	msg, err := cs.convRepo.AppendMessage(ctx, conversationID, senderID, content)
	if err != nil {
		return nil, err
	}
	cs.hub.Publish(msg)

	other, ok := convo.OtherParticipant(senderID)
	if !ok {
		return msg, nil
	}
	if err := cs.convRepo.TouchConversation(ctx, conversationID, content, msg.CreatedAt, other); err != nil {
		return nil, fmt.Errorf("message stored but conversation update failed: %v", err)
	}

	return msg, nil
}

// MarkRead zeroes the participant's unread counter for the conversation.
func (cs *ChatService) MarkRead(ctx context.Context, conversationID, participantID string) error {
	convo, err := cs.convRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if convo == nil {
		return fmt.Errorf("conversation not found")
	}
	if !convo.HasParticipant(participantID) {
		return fmt.Errorf("you are not a participant of this conversation")
	}
	return cs.convRepo.MarkRead(ctx, conversationID, participantID)
}

// History returns the full message log ascending by creation time.
func (cs *ChatService) History(ctx context.Context, conversationID, participantID string) ([]*models.Message, error) {
	convo, err := cs.GetConversation(ctx, conversationID, participantID)
	if err != nil {
		return nil, err
	}
	if convo == nil {
		return nil, fmt.Errorf("conversation not found")
	}
	return cs.convRepo.ListMessages(ctx, conversationID)
}

// Subscribe opens a live feed of inserts for the conversation. The caller
// must Cancel the subscription when its view goes away.
func (cs *ChatService) Subscribe(ctx context.Context, conversationID, participantID string) (*hub.Subscription, error) {
	convo, err := cs.GetConversation(ctx, conversationID, participantID)
	if err != nil {
		return nil, err
	}
	if convo == nil {
		return nil, fmt.Errorf("conversation not found")
	}
	return cs.hub.Subscribe(conversationID), nil
}
