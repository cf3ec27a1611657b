// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for chat rooms,
// membership, and messages.
//
// Direct-room resolution is the one operation here with real invariants:
// for any unordered user pair {A, B} at most one direct room may exist.
// A naive lookup-then-insert leaves a window where two concurrent starters
// both miss the lookup and both insert. The canonical pair key (sorted IDs
// joined with ':') under a unique index closes that window: the second
// insert fails the constraint and the loser re-reads the winner's room.
//
// Functions:
//
//   - DirectPairKey(a, b) -> string
//     Canonical key for an unordered user pair.
//
//   - GetOrCreateDirectRoom(ctx, db, a, b) -> (*domain.ChatRoom, created, error)
//     Atomic get-or-create of the direct room for {a, b}.
//
//   - ListRoomsForUser(ctx, db, userID) -> []domain.ChatRoom
//     Rooms the user participates in, most recent first.
//
//   - GetRoom / IsParticipant / AddParticipant
//     Membership plumbing for the access-control gate.
//
//   - CreateMessage / ListRoomMessages / CountRoomMessages
//     Message persistence; ordering is timestamp ASC with ID tiebreak.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// DirectPairKey returns the canonical key for the unordered pair {a, b}:
// the two IDs sorted lexicographically and joined with ':'.
func DirectPairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// findDirectRoom looks up the direct room for a pair key, participants
// preloaded. Returns ErrNotFound when absent.
func findDirectRoom(ctx context.Context, db *gorm.DB, pairKey string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := db.WithContext(ctx).
		Preload("Participants").
		Where("pair_key = ?", pairKey).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetOrCreateDirectRoom resolves the direct room between users a and b,
// creating it (with both memberships) when absent. The create runs in a
// transaction; when a concurrent caller wins the race the unique pair-key
// constraint rejects the insert and the existing room is returned instead.
// Repeated calls for the same pair therefore converge on one room ID.
//
// The caller is responsible for rejecting a == b before calling.
func GetOrCreateDirectRoom(ctx context.Context, db *gorm.DB, a, b string) (*domain.ChatRoom, bool, error) {
	key := DirectPairKey(a, b)

	if room, err := findDirectRoom(ctx, db, key); err == nil {
		return room, false, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	room := &domain.ChatRoom{
		ID:        uuid.NewString(),
		Name:      "direct:" + key,
		IsGroup:   false,
		PairKey:   &key,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Create(room).Error; err != nil {
			return err
		}
		return tx.Exec(
			"INSERT INTO chat_room_participants (chat_room_id, user_id) VALUES (?, ?), (?, ?)",
			room.ID, a, room.ID, b,
		).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race: the concurrent starter's room is authoritative.
			existing, ferr := findDirectRoom(ctx, db, key)
			if ferr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	created, err := findDirectRoom(ctx, db, key)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// isUniqueViolation reports whether err stems from a unique-index conflict.
// The pure-Go SQLite driver surfaces these as textual constraint errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}

// GetRoom fetches a room by ID with participants preloaded, or ErrNotFound.
func GetRoom(ctx context.Context, db *gorm.DB, id string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser returns all rooms the user participates in, newest first.
func ListRoomsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	err := db.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN chat_room_participants crp ON crp.chat_room_id = chat_rooms.id").
		Where("crp.user_id = ?", userID).
		Order("chat_rooms.created_at desc").
		Find(&out).Error
	return out, err
}

// IsParticipant reports whether userID is a current member of roomID.
func IsParticipant(ctx context.Context, db *gorm.DB, roomID, userID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("chat_room_participants").
		Where("chat_room_id = ? AND user_id = ?", roomID, userID).
		Count(&n).Error
	return n > 0, err
}

// AddParticipant inserts a membership row; adding an existing member is a
// no-op at the application level (group-room management path).
func AddParticipant(ctx context.Context, db *gorm.DB, roomID, userID string) error {
	member, err := IsParticipant(ctx, db, roomID, userID)
	if err != nil || member {
		return err
	}
	return db.WithContext(ctx).Exec(
		"INSERT INTO chat_room_participants (chat_room_id, user_id) VALUES (?, ?)",
		roomID, userID,
	).Error
}

// CreateMessage inserts a message with a server-assigned UTC timestamp.
// Membership must have been verified by the caller.
func CreateMessage(ctx context.Context, db *gorm.DB, roomID, senderID, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListRoomMessages returns all messages in a room ordered deterministically
// (Timestamp ASC, ID ASC so stored ties resolve stably).
func ListRoomMessages(ctx context.Context, db *gorm.DB, roomID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountRoomMessages uses a raw COUNT so a missing table surfaces as an error.
func CountRoomMessages(ctx context.Context, db *gorm.DB, roomID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM messages WHERE room_id = ?", roomID).
		Scan(&total).Error
	return total, err
}
