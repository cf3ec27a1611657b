// Package services – ChatService
//
// This file implements ChatService, the application-level component that owns
// direct conversations between users. It resolves rooms idempotently (one
// room per unordered user pair), enforces membership before any read or
// write, and persists messages in strict chronological order.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// room/user identifiers where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatService coordinates direct-room resolution and message exchange.
type ChatService struct {
	DB *gorm.DB

	// MaxMessageRunes caps message bodies by rune length. Zero disables
	// the limit.
	MaxMessageRunes int
}

// NewChatService constructs a ChatService with a sane message length cap.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db, MaxMessageRunes: 4000}
}

// StartDirect resolves the direct room between userID and otherID, creating
// it on first contact. The second return value reports whether this call
// created the room. Both orderings of the pair resolve to the same room.
func (s *ChatService) StartDirect(ctx context.Context, userID, otherID string) (*domain.ChatRoom, bool, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "StartDirect",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("peer.id", otherID),
		),
	)
	defer span.End()

	if userID == otherID {
		return nil, false, ErrSelfChat
	}
	if _, err := repo.GetUser(ctx, s.DB, otherID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	room, created, err := repo.GetOrCreateDirectRoom(ctx, s.DB, userID, otherID)
	if err != nil {
		return nil, false, err
	}
	return room, created, nil
}

// Send posts a message to a room on behalf of userID. The sender must be a
// participant of the room.
func (s *ChatService) Send(ctx context.Context, userID, roomID, content string) (*domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(
			attribute.String("room.id", roomID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(content) > s.MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	if err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return repo.CreateMessage(ctx, s.DB, roomID, userID, content)
}

// SendDirect resolves the direct room to otherID and, when content is
// non-blank, posts it as a message in one step. Blank content resolves the
// room without writing a message. Content is validated before the room is
// touched so a rejected body leaves no room behind.
func (s *ChatService) SendDirect(ctx context.Context, userID, otherID, content string) (*domain.Message, *domain.ChatRoom, error) {
	content = strings.TrimSpace(content)
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(content) > s.MaxMessageRunes {
		return nil, nil, ErrMessageTooLong
	}

	room, _, err := s.StartDirect(ctx, userID, otherID)
	if err != nil {
		return nil, nil, err
	}
	if content == "" {
		return nil, room, nil
	}
	msg, err := s.Send(ctx, userID, room.ID, content)
	if err != nil {
		return nil, nil, err
	}
	return msg, room, nil
}

// History returns every message in the room in chronological order. The
// caller must be a participant.
func (s *ChatService) History(ctx context.Context, userID, roomID string) ([]domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("room.id", roomID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return repo.ListRoomMessages(ctx, s.DB, roomID)
}

// RoomStats returns the message count and latest message timestamp for a
// room, for use in conditional responses. Access rules match History.
func (s *ChatService) RoomStats(ctx context.Context, userID, roomID string) (int64, *time.Time, error) {
	if err := s.requireMember(ctx, roomID, userID); err != nil {
		return 0, nil, err
	}
	return repo.RoomMessagesStats(ctx, s.DB, roomID)
}

// Rooms lists the rooms the user participates in, most recent first.
func (s *ChatService) Rooms(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	return repo.ListRoomsForUser(ctx, s.DB, userID)
}

// Contacts lists every other account as a potential conversation target for
// the chat dashboard.
func (s *ChatService) Contacts(ctx context.Context, userID string) ([]domain.User, error) {
	return repo.ListUsersExcept(ctx, s.DB, userID)
}

// requireMember verifies the room exists and that userID participates in it.
func (s *ChatService) requireMember(ctx context.Context, roomID, userID string) error {
	if _, err := repo.GetRoom(ctx, s.DB, roomID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	member, err := repo.IsParticipant(ctx, s.DB, roomID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotParticipant
	}
	return nil
}
