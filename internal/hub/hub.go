// Package hub fans out newly appended messages to live subscribers. One
// process, one hub: every send publishes here after the store write, and
// every open stream registers a subscription keyed by conversation id.
package hub

import (
	"sync"

	"github.com/gatherly/api/internal/models"
)

const subscriberBuffer = 32

// Subscription is a live feed of one conversation's inserts, delivered in
// append order. Cancel must be called when the consumer goes away, or the
// hub leaks the registration.
type Subscription struct {
	C      <-chan *models.Message
	cancel func()
}

func (s *Subscription) Cancel() {
	s.cancel()
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[int64]chan *models.Message
	nextID      int64
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[int64]chan *models.Message)}
}

// Subscribe registers a live feed for the given conversation.
func (h *Hub) Subscribe(conversationID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[conversationID]; !ok {
		h.subscribers[conversationID] = make(map[int64]chan *models.Message)
	}

	h.nextID++
	id := h.nextID
	ch := make(chan *models.Message, subscriberBuffer)
	h.subscribers[conversationID][id] = ch

	return &Subscription{
		C:      ch,
		cancel: func() { h.unsubscribe(conversationID, id) },
	}
}

func (h *Hub) unsubscribe(conversationID string, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subscribers[conversationID]; ok {
		if ch, ok := subs[id]; ok {
			delete(subs, id)
			close(ch)
		}
		if len(subs) == 0 {
			delete(h.subscribers, conversationID)
		}
	}
}

// Publish delivers a message to every live subscriber of its conversation.
// A subscriber whose buffer is full misses the message rather than blocking
// the sender; the full history remains available from the store.
func (h *Hub) Publish(msg *models.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[msg.ConversationID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports live subscriptions for a conversation.
func (h *Hub) SubscriberCount(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[conversationID])
}
