package models

import (
	"fmt"
	"strings"
	"time"
)

// Conversation is a two-party message thread. Its primary key is the sorted
// pair of participant ids, which makes creation idempotent: two racing
// first-contact writes land on the same document instead of producing
// duplicate threads.
type Conversation struct {
	ID             string                         `bson:"_id" json:"id"`
	ParticipantIDs []string                       `bson:"participant_ids" json:"participantIds"`
	Participants   map[string]ParticipantSnapshot `bson:"participants" json:"participants"`
	LastMessage    string                         `bson:"last_message,omitempty" json:"lastMessage,omitempty"`
	LastMessageAt  time.Time                      `bson:"last_message_at,omitempty" json:"lastMessageAt,omitempty"`
	UnreadCounts   map[string]int                 `bson:"unread_counts" json:"unreadCounts"`
	CreatedAt      time.Time                      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time                      `bson:"updated_at" json:"updated_at"`
}

// PairKey builds the deterministic conversation id for an unordered pair.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// OtherParticipant returns the participant that is not id.
func (c *Conversation) OtherParticipant(id string) (string, bool) {
	for _, p := range c.ParticipantIDs {
		if p != id {
			return p, true
		}
	}
	return "", false
}

func (c *Conversation) HasParticipant(id string) bool {
	for _, p := range c.ParticipantIDs {
		if p == id {
			return true
		}
	}
	return false
}

func ValidatePair(a, b string) error {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return fmt.Errorf("both participant ids are required")
	}
	if a == b {
		return fmt.Errorf("cannot start a conversation with yourself")
	}
	return nil
}

// Message is one entry in a conversation's append-only log. Messages are
// never mutated or deleted; ordering is by the creation timestamp assigned
// at write time in the store layer.
type Message struct {
	ID             string    `bson:"_id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversationId"`
	SenderID       string    `bson:"sender_id" json:"senderId"`
	Content        string    `bson:"content" json:"content"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
