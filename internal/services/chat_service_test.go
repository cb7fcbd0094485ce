package services

import (
	"context"
	"testing"

	"github.com/gatherly/api/internal/hub"
	"github.com/gatherly/api/internal/models"
)

func chatFixture() (*ChatService, *fakeConversationsRepo, *fakeProfileRepo, *hub.Hub) {
	profiles := newFakeProfileRepo()
	profiles.organizers["alice"] = &models.UserProfile{
		ID: "alice", Name: "Alice", ProfileType: models.ProfileTypeOrganizer,
	}
	profiles.providers["bob"] = &models.UserProfile{
		ID: "bob", Name: "Bob", ProfileType: models.ProfileTypeProvider,
	}
	convos := newFakeConversationsRepo()
	h := hub.NewHub()
	return NewChatService(convos, profiles, h), convos, profiles, h
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc, _, _, _ := chatFixture()
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetOrCreate(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("same pair must map to one conversation, got %s and %s", first.ID, second.ID)
	}
	if first.UnreadCounts["alice"] != 0 || first.UnreadCounts["bob"] != 0 {
		t.Errorf("new conversation must start with zeroed counters: %v", first.UnreadCounts)
	}
}

func TestGetOrCreateRejectsUnknownParticipant(t *testing.T) {
	svc, _, _, _ := chatFixture()
	if _, err := svc.GetOrCreate(context.Background(), "alice", "ghost"); err == nil {
		t.Error("expected unknown participant to be rejected")
	}
	if _, err := svc.GetOrCreate(context.Background(), "alice", "alice"); err == nil {
		t.Error("expected self-conversation to be rejected")
	}
}

func TestSendIncrementsOnlyRecipientCounter(t *testing.T) {
	svc, convos, _, _ := chatFixture()
	ctx := context.Background()

	convo, err := svc.GetOrCreate(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Send(ctx, convo.ID, "alice", "are you free on the 12th?"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	stored := convos.conversations[convo.ID]
	if stored.UnreadCounts["bob"] != 1 {
		t.Errorf("recipient counter should be 1, got %d", stored.UnreadCounts["bob"])
	}
	if stored.UnreadCounts["alice"] != 0 {
		t.Errorf("sender counter should stay 0, got %d", stored.UnreadCounts["alice"])
	}
	if stored.LastMessage != "are you free on the 12th?" {
		t.Errorf("preview not updated: %q", stored.LastMessage)
	}
}

func TestSendRejectsNonParticipantAndEmptyContent(t *testing.T) {
	svc, _, _, _ := chatFixture()
	ctx := context.Background()

	convo, _ := svc.GetOrCreate(ctx, "alice", "bob")

	if _, err := svc.Send(ctx, convo.ID, "mallory", "hello"); err == nil {
		t.Error("expected non-participant sender to be rejected")
	}
	if _, err := svc.Send(ctx, convo.ID, "alice", "   "); err == nil {
		t.Error("expected blank content to be rejected")
	}
}

func TestSendDeliversToSubscribers(t *testing.T) {
	svc, _, _, _ := chatFixture()
	ctx := context.Background()

	convo, _ := svc.GetOrCreate(ctx, "alice", "bob")

	sub, err := svc.Subscribe(ctx, convo.ID, "bob")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Cancel()

	sent, err := svc.Send(ctx, convo.ID, "alice", "hello bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case got := <-sub.C:
		if got.ID != sent.ID {
			t.Errorf("expected message %s, got %s", sent.ID, got.ID)
		}
	default:
		t.Fatal("subscriber did not receive the message")
	}
}

func TestSubscribeRejectsNonParticipant(t *testing.T) {
	svc, _, _, _ := chatFixture()
	ctx := context.Background()

	convo, _ := svc.GetOrCreate(ctx, "alice", "bob")
	if _, err := svc.Subscribe(ctx, convo.ID, "mallory"); err == nil {
		t.Error("expected non-participant subscription to be rejected")
	}
}

func TestMarkReadZeroesCounter(t *testing.T) {
	svc, convos, _, _ := chatFixture()
	ctx := context.Background()

	convo, _ := svc.GetOrCreate(ctx, "alice", "bob")
	svc.Send(ctx, convo.ID, "alice", "message one")
	svc.Send(ctx, convo.ID, "alice", "message two")

	if got := convos.conversations[convo.ID].UnreadCounts["bob"]; got != 2 {
		t.Fatalf("expected 2 unread messages, got %d", got)
	}

	if err := svc.MarkRead(ctx, convo.ID, "bob"); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if got := convos.conversations[convo.ID].UnreadCounts["bob"]; got != 0 {
		t.Errorf("expected counter to reset to 0, got %d", got)
	}
}

func TestHistoryOrderedAndGuarded(t *testing.T) {
	svc, _, _, _ := chatFixture()
	ctx := context.Background()

	convo, _ := svc.GetOrCreate(ctx, "alice", "bob")
	svc.Send(ctx, convo.ID, "alice", "first")
	svc.Send(ctx, convo.ID, "bob", "second")

	msgs, err := svc.History(ctx, convo.ID, "alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "second" {
		t.Error("history not in append order")
	}

	if _, err := svc.History(ctx, convo.ID, "mallory"); err == nil {
		t.Error("expected non-participant history read to be rejected")
	}
}
