package repo

import (
	"context"
	"testing"
	"time"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

func TestDirectPairKey_Canonical(t *testing.T) {
	if DirectPairKey("b", "a") != DirectPairKey("a", "b") {
		t.Fatalf("pair key must be order-independent")
	}
	if got := DirectPairKey("u1", "u2"); got != "u1:u2" {
		t.Fatalf("unexpected pair key: %q", got)
	}
	if got := DirectPairKey("u2", "u1"); got != "u1:u2" {
		t.Fatalf("unexpected pair key after swap: %q", got)
	}
}

func TestGetOrCreateDirectRoom_CreatesOnceThenResolves(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for i, u := range []domain.User{
		{ID: "alice", Username: "alice", Role: domain.RoleDonor},
		{ID: "bob", Username: "bob", Role: domain.RoleRecipient},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
	}

	room1, created, err := GetOrCreateDirectRoom(ctx, db, "alice", "bob")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if !created {
		t.Fatalf("expected first call to create the room")
	}
	if room1.IsGroup {
		t.Fatalf("direct room must not be flagged as group")
	}
	if len(room1.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(room1.Participants))
	}

	// Same pair, reversed order: must converge on the same room.
	room2, created, err := GetOrCreateDirectRoom(ctx, db, "bob", "alice")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if created {
		t.Fatalf("second call must not create a new room")
	}
	if room2.ID != room1.ID {
		t.Fatalf("resolution diverged: %s vs %s", room1.ID, room2.ID)
	}

	var n int64
	if err := db.Model(&domain.ChatRoom{}).Count(&n).Error; err != nil {
		t.Fatalf("count rooms: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one room, got %d", n)
	}
}

func TestGetOrCreateDirectRoom_PairKeyUniqueUnderRace(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for _, u := range []domain.User{
		{ID: "d1", Username: "d1", Role: domain.RoleDonor},
		{ID: "u", Username: "u", Role: domain.RoleRecipient},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Simulate a racer that slipped between lookup and insert: its row is
	// already in place when our insert runs against the same pair key.
	key := DirectPairKey("d1", "u")
	winner := domain.ChatRoom{ID: "winner", Name: "direct:" + key, PairKey: &key, CreatedAt: time.Now().UTC()}
	if err := db.Omit("Participants").Create(&winner).Error; err != nil {
		t.Fatalf("seed winner room: %v", err)
	}
	if err := db.Exec(
		"INSERT INTO chat_room_participants (chat_room_id, user_id) VALUES (?, ?), (?, ?)",
		"winner", "d1", "winner", "u",
	).Error; err != nil {
		t.Fatalf("seed winner membership: %v", err)
	}

	// A second insert with the same pair key must violate the unique index.
	loser := domain.ChatRoom{ID: "loser", Name: "direct:dup:" + key, PairKey: &key}
	if err := db.Omit("Participants").Create(&loser).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate pair key")
	} else if !isUniqueViolation(err) {
		t.Fatalf("expected unique-violation classification, got %v", err)
	}

	// The public API resolves to the winner's room.
	room, created, err := GetOrCreateDirectRoom(ctx, db, "u", "d1")
	if err != nil {
		t.Fatalf("resolve after race: %v", err)
	}
	if created || room.ID != "winner" {
		t.Fatalf("expected winner room, got id=%s created=%v", room.ID, created)
	}
}

func TestIsParticipant_AndAccessPlumbing(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for _, u := range []domain.User{
		{ID: "a", Username: "a", Role: domain.RoleDonor},
		{ID: "b", Username: "b", Role: domain.RoleRecipient},
		{ID: "c", Username: "c", Role: domain.RoleDoctor},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	room, _, err := GetOrCreateDirectRoom(ctx, db, "a", "b")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	for id, want := range map[string]bool{"a": true, "b": true, "c": false} {
		got, err := IsParticipant(ctx, db, room.ID, id)
		if err != nil {
			t.Fatalf("IsParticipant(%s): %v", id, err)
		}
		if got != want {
			t.Fatalf("IsParticipant(%s) = %v, want %v", id, got, want)
		}
	}

	// AddParticipant is idempotent at the application level.
	if err := AddParticipant(ctx, db, room.ID, "c"); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := AddParticipant(ctx, db, room.ID, "c"); err != nil {
		t.Fatalf("AddParticipant repeat: %v", err)
	}
	got, err := IsParticipant(ctx, db, room.ID, "c")
	if err != nil || !got {
		t.Fatalf("expected c to be a member after add, got %v err=%v", got, err)
	}
}

func TestListRoomsForUser_FiltersMembership(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for _, u := range []domain.User{
		{ID: "a", Username: "a", Role: domain.RoleDonor},
		{ID: "b", Username: "b", Role: domain.RoleRecipient},
		{ID: "c", Username: "c", Role: domain.RoleDoctor},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ab, _, err := GetOrCreateDirectRoom(ctx, db, "a", "b")
	if err != nil {
		t.Fatalf("room ab: %v", err)
	}
	if _, _, err := GetOrCreateDirectRoom(ctx, db, "b", "c"); err != nil {
		t.Fatalf("room bc: %v", err)
	}

	roomsA, err := ListRoomsForUser(ctx, db, "a")
	if err != nil {
		t.Fatalf("ListRoomsForUser(a): %v", err)
	}
	if len(roomsA) != 1 || roomsA[0].ID != ab.ID {
		t.Fatalf("expected only room ab for a, got %+v", roomsA)
	}

	roomsB, err := ListRoomsForUser(ctx, db, "b")
	if err != nil {
		t.Fatalf("ListRoomsForUser(b): %v", err)
	}
	if len(roomsB) != 2 {
		t.Fatalf("expected 2 rooms for b, got %d", len(roomsB))
	}
}

func TestCreateMessage_OrderingAndCount(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for _, u := range []domain.User{
		{ID: "a", Username: "a", Role: domain.RoleDonor},
		{ID: "b", Username: "b", Role: domain.RoleRecipient},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	room, _, err := GetOrCreateDirectRoom(ctx, db, "a", "b")
	if err != nil {
		t.Fatalf("room: %v", err)
	}

	// Seed with explicit timestamps so ascending order is deterministic.
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, txt := range []string{"first", "second", "third"} {
		m := domain.Message{
			ID:        txt,
			RoomID:    room.ID,
			SenderID:  "a",
			Content:   txt,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed message %s: %v", txt, err)
		}
	}

	msg, err := CreateMessage(ctx, db, room.ID, "b", "hello")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.ID == "" || msg.Timestamp.IsZero() {
		t.Fatalf("message fields unset: %+v", msg)
	}

	list, err := ListRoomMessages(ctx, db, room.ID)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(list))
	}
	if list[0].Content != "first" || list[1].Content != "second" || list[2].Content != "third" || list[3].Content != "hello" {
		t.Fatalf("unexpected order: %#v", list)
	}

	total, err := CountRoomMessages(ctx, db, room.ID)
	if err != nil {
		t.Fatalf("CountRoomMessages: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4, got %d", total)
	}
}

func TestCountRoomMessages_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, err := CountRoomMessages(context.Background(), db, "r1"); err == nil {
		t.Fatalf("expected error when table missing")
	}
}
