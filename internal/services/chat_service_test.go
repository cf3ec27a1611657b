package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestChatService_StartDirect_IdempotentAcrossOrdering(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	svc := NewChatService(db)
	ctx := context.Background()

	room1, created, err := svc.StartDirect(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if !created {
		t.Fatalf("first start must create the room")
	}

	room2, created, err := svc.StartDirect(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if created || room2.ID != room1.ID {
		t.Fatalf("expected same room, got %s created=%v", room2.ID, created)
	}
}

func TestChatService_StartDirect_SelfAndUnknownPeer(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	svc := NewChatService(db)
	ctx := context.Background()

	if _, _, err := svc.StartDirect(ctx, "alice", "alice"); !errors.Is(err, ErrSelfChat) {
		t.Fatalf("expected ErrSelfChat, got %v", err)
	}
	if _, _, err := svc.StartDirect(ctx, "alice", "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChatService_Send_ValidationAndAccess(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	seedUser(t, db, "eve", "eve", "doctor")
	svc := NewChatService(db)
	ctx := context.Background()

	room, _, err := svc.StartDirect(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.Send(ctx, "alice", room.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	svc.MaxMessageRunes = 5
	if _, err := svc.Send(ctx, "alice", room.ID, "too long here"); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
	svc.MaxMessageRunes = 0

	if _, err := svc.Send(ctx, "eve", room.ID, "let me in"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := svc.Send(ctx, "alice", "no-such-room", "hi"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	msg, err := svc.Send(ctx, "alice", room.ID, "  hello bob  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Content != "hello bob" {
		t.Fatalf("content must be trimmed, got %q", msg.Content)
	}
	if msg.SenderID != "alice" || msg.Timestamp.IsZero() {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChatService_History_OrderAndAccess(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	seedUser(t, db, "eve", "eve", "doctor")
	svc := NewChatService(db)
	ctx := context.Background()

	room, _, err := svc.StartDirect(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, txt := range []string{"one", "two", "three"} {
		if _, err := svc.Send(ctx, "alice", room.ID, txt); err != nil {
			t.Fatalf("send %s: %v", txt, err)
		}
	}

	if _, err := svc.History(ctx, "eve", room.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	msgs, err := svc.History(ctx, "bob", room.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	joined := strings.Join([]string{msgs[0].Content, msgs[1].Content, msgs[2].Content}, ",")
	if joined != "one,two,three" {
		t.Fatalf("unexpected order: %s", joined)
	}

	count, latest, err := svc.RoomStats(ctx, "bob", room.ID)
	if err != nil || count != 3 || latest == nil {
		t.Fatalf("RoomStats = %d,%v,%v", count, latest, err)
	}
}

func TestChatService_SendDirect_CreatesRoomAndPosts(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	svc := NewChatService(db)
	ctx := context.Background()

	msg, room, err := svc.SendDirect(ctx, "alice", "bob", "first contact")
	if err != nil {
		t.Fatalf("SendDirect: %v", err)
	}
	if msg.RoomID != room.ID || msg.Content != "first contact" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	rooms, err := svc.Rooms(ctx, "bob")
	if err != nil || len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("unexpected rooms for bob: %#v err=%v", rooms, err)
	}

	contacts, err := svc.Contacts(ctx, "alice")
	if err != nil || len(contacts) != 1 || contacts[0].ID != "bob" {
		t.Fatalf("unexpected contacts: %#v err=%v", contacts, err)
	}
}

func TestChatService_SendDirect_BlankContentResolvesRoomOnly(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	svc := NewChatService(db)
	ctx := context.Background()

	msg, room, err := svc.SendDirect(ctx, "alice", "bob", "   ")
	if err != nil {
		t.Fatalf("SendDirect: %v", err)
	}
	if msg != nil {
		t.Fatalf("blank content must not produce a message: %+v", msg)
	}
	if room == nil {
		t.Fatalf("blank content must still resolve the room")
	}

	rooms, err := svc.Rooms(ctx, "alice")
	if err != nil || len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("unexpected rooms: %#v err=%v", rooms, err)
	}
	history, err := svc.History(ctx, "alice", room.ID)
	if err != nil || len(history) != 0 {
		t.Fatalf("expected empty history, got %#v err=%v", history, err)
	}
}

func TestChatService_SendDirect_OversizedContentLeavesNoRoom(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice", "alice", "donor")
	seedUser(t, db, "bob", "bob", "recipient")
	svc := NewChatService(db)
	svc.MaxMessageRunes = 10
	ctx := context.Background()

	if _, _, err := svc.SendDirect(ctx, "alice", "bob", strings.Repeat("x", 11)); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}

	rooms, err := svc.Rooms(ctx, "alice")
	if err != nil || len(rooms) != 0 {
		t.Fatalf("rejected send must not create a room: %#v err=%v", rooms, err)
	}
}
