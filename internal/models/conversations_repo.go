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

type ConversationsRepo interface {
	FindBetween(ctx context.Context, a, b string) (*Conversation, error)
	GetOrCreateConversation(ctx context.Context, a, b string, snapA, snapB ParticipantSnapshot) (*Conversation, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	ListConversations(ctx context.Context, participantID string) ([]*Conversation, error)
	TouchConversation(ctx context.Context, conversationID, preview string, at time.Time, unreadParticipantID string) error
	MarkRead(ctx context.Context, conversationID, participantID string) error
	AppendMessage(ctx context.Context, conversationID, senderID, content string) (*Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]*Message, error)
}

// FindBetween looks up the thread for an unordered pair. The composite key
// replaces the participant-array scan the lookup would otherwise need.
func (mdb *MongodbRepo) FindBetween(ctx context.Context, a, b string) (*Conversation, error) {
	if err := ValidatePair(a, b); err != nil {
		return nil, err
	}
	return mdb.GetConversation(ctx, PairKey(a, b))
}

func (mdb *MongodbRepo) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	col, err := mdb.GetCollection(ctx, DBName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var convo Conversation
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&convo)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %v", err)
	}
	return &convo, nil
}

// GetOrCreateConversation upserts on the pair key. $setOnInsert carries the
// full initial document, so a second call for the same pair returns the
// existing thread untouched.
func (mdb *MongodbRepo) GetOrCreateConversation(ctx context.Context, a, b string, snapA, snapB ParticipantSnapshot) (*Conversation, error) {
	if err := ValidatePair(a, b); err != nil {
		return nil, err
	}

	col, err := mdb.GetCollection(ctx, DBName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	key := PairKey(a, b)

	update := bson.M{
		"$setOnInsert": bson.M{
			"participant_ids": []string{a, b},
			"participants": map[string]ParticipantSnapshot{
				a: snapA,
				b: snapB,
			},
			"unread_counts": map[string]int{a: 0, b: 0},
			"created_at":    now,
		},
		"$set": bson.M{
			"updated_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var convo Conversation
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&convo); err != nil {
		return nil, fmt.Errorf("error upserting conversation: %v", err)
	}
	return &convo, nil
}

func (mdb *MongodbRepo) ListConversations(ctx context.Context, participantID string) ([]*Conversation, error) {
	col, err := mdb.GetCollection(ctx, DBName, ConversationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"last_message_at": -1})
	cursor, err := col.Find(ctx, bson.M{"participant_ids": participantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %v", err)
	}
	defer cursor.Close(ctx)

	var conversations []*Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %v", err)
	}
	return conversations, nil
}

// TouchConversation updates the last-message preview and bumps the unread
// counter of the receiving participant with an atomic field increment. It is
// intentionally separate from AppendMessage; a crash between the two leaves a
// stale preview that the next send repairs.
func (mdb *MongodbRepo) TouchConversation(ctx context.Context, conversationID, preview string, at time.Time, unreadParticipantID string) error {
	col, err := mdb.GetCollection(ctx, DBName, ConversationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$set": bson.M{
			"last_message":    preview,
			"last_message_at": at,
			"updated_at":      at,
		},
		"$inc": bson.M{
			fmt.Sprintf("unread_counts.%s", unreadParticipantID): 1,
		},
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": conversationID}, update)
	if err != nil {
		return fmt.Errorf("failed to update conversation metadata: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no conversation found to update")
	}
	return nil
}

// MarkRead zeroes the participant's unread counter. The filter requires a
// non-zero counter so an already-read thread costs no write.
func (mdb *MongodbRepo) MarkRead(ctx context.Context, conversationID, participantID string) error {
	col, err := mdb.GetCollection(ctx, DBName, ConversationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	counterField := fmt.Sprintf("unread_counts.%s", participantID)
	filter := bson.M{
		"_id":        conversationID,
		counterField: bson.M{"$gt": 0},
	}
	update := bson.M{"$set": bson.M{counterField: 0}}

	if _, err := col.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark conversation read: %v", err)
	}
	return nil
}

// AppendMessage inserts into the append-only log. The creation timestamp is
// assigned here rather than by the caller so the log stays totally ordered
// under client clock skew.
func (mdb *MongodbRepo) AppendMessage(ctx context.Context, conversationID, senderID, content string) (*Message, error) {
	col, err := mdb.GetCollection(ctx, DBName, MessageColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	msg := &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	if _, err := col.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	return msg, nil
}

func (mdb *MongodbRepo) ListMessages(ctx context.Context, conversationID string) ([]*Message, error) {
	col, err := mdb.GetCollection(ctx, DBName, MessageColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := col.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}
