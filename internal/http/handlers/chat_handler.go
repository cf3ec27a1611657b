// Chat HTTP handlers.
//
// This file exposes the direct-messaging endpoints:
//   - GET  /chat                        (dashboard: own rooms + contacts)
//   - POST /chat/direct                 (get-or-create the room with a peer)
//   - POST /chat/rooms/{id}/messages    (send into a room)
//   - GET  /chat/rooms/{id}/messages    (room history, ETag-aware)
//   - POST /chat/direct/{userID}/messages (one-shot send to a peer)
//
// Starting a direct conversation is idempotent: the same unordered pair of
// accounts always resolves to the same room, and the response reports whether
// this call created it.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// StartDirectRequest is the JSON payload to open a conversation with a peer.
type StartDirectRequest struct {
	UserID string `json:"user_id" binding:"required" example:"9b1d...c2"`
}

// StartDirectResponse reports the resolved room and whether it was created
// by this call.
type StartDirectResponse struct {
	Room    *domain.ChatRoom `json:"room"`
	Created bool             `json:"created"`
}

// SendMessageRequest is the JSON payload for sending a chat message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required" example:"Are you available Friday?"`
}

// SendDirectMessageRequest is the JSON payload for the one-shot send to a
// peer. Content may be blank, which resolves the room without delivering a
// message.
type SendDirectMessageRequest struct {
	Content string `json:"content" example:"Are you available Friday?"`
}

// SendDirectMessageResponse reports the resolved room and, when content was
// delivered, the message it produced.
type SendDirectMessageResponse struct {
	RoomID  string           `json:"room_id"`
	Message *MessageResponse `json:"message,omitempty"`
}

// MessageResponse is the wire shape of a delivered message.
type MessageResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// ChatDashboardResponse is the landing view for the chat UI: the caller's
// rooms plus every account they could start a conversation with.
type ChatDashboardResponse struct {
	Rooms    []domain.ChatRoom `json:"rooms"`
	Contacts []domain.User     `json:"contacts"`
}

func toMessageResponse(m *domain.Message, sender string) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Sender:    sender,
		Text:      m.Content,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}

// ChatDashboard godoc
// @ID          chatDashboard
// @Summary     Chat dashboard
// @Description Returns the caller's conversations and the directory of
// @Description accounts available as conversation targets.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Success     200  {object}  handlers.ChatDashboardResponse
// @Router      /chat [get]
func (h *Handlers) ChatDashboard(c *gin.Context) {
	uid := currentUser(c).ID

	rooms, err := h.chatSvc.Rooms(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	contacts, err := h.chatSvc.Contacts(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ChatDashboardResponse{Rooms: rooms, Contacts: contacts})
}

// StartDirect godoc
// @ID          startDirectChat
// @Summary     Open a conversation with a peer
// @Description Resolves the direct room for the caller and the given account,
// @Description creating it on first contact. Safe to call repeatedly.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       body  body  handlers.StartDirectRequest  true  "Peer account"
// @Success     200  {object}  handlers.StartDirectResponse "Existing room"
// @Success     201  {object}  handlers.StartDirectResponse "Room created"
// @Failure     400  {object}  handlers.ErrorResponse "Self-chat"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown peer"
// @Router      /chat/direct [post]
func (h *Handlers) StartDirect(c *gin.Context) {
	var req StartDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id required")
		return
	}

	room, created, err := h.chatSvc.StartDirect(c.Request.Context(), currentUser(c).ID, req.UserID)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, StartDirectResponse{Room: room, Created: created})
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message into a room
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       id    path  string  true  "Room ID"
// @Param       body  body  handlers.SendMessageRequest  true  "Message payload"
// @Success     201  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Blank or oversized content"
// @Failure     403  {object}  handlers.ErrorResponse "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown room"
// @Router      /chat/rooms/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	u := currentUser(c)
	m, err := h.chatSvc.Send(c.Request.Context(), u.ID, c.Param("id"), req.Content)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, toMessageResponse(m, u.Username))
}

// SendDirectMessage godoc
// @ID          sendDirectMessage
// @Summary     Send a message straight to a peer
// @Description Resolves (creating if needed) the direct room with the peer and
// @Description delivers the message in one call. Blank content resolves the
// @Description room only.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       userID  path  string  true  "Peer account ID"
// @Param       body  body  handlers.SendDirectMessageRequest  true  "Message payload"
// @Success     200  {object}  handlers.SendDirectMessageResponse "Room resolved, no message"
// @Success     201  {object}  handlers.SendDirectMessageResponse "Message delivered"
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse "Unknown peer"
// @Router      /chat/direct/{userID}/messages [post]
func (h *Handlers) SendDirectMessage(c *gin.Context) {
	var req SendDirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u := currentUser(c)
	m, room, err := h.chatSvc.SendDirect(c.Request.Context(), u.ID, c.Param("userID"), req.Content)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}

	resp := SendDirectMessageResponse{RoomID: room.ID}
	status := http.StatusOK
	if m != nil {
		mr := toMessageResponse(m, u.Username)
		resp.Message = &mr
		status = http.StatusCreated
	}
	ok(c, status, resp)
}

// RoomHistory godoc
// @ID          roomHistory
// @Summary     List a room's messages
// @Description Returns the full history oldest first. Responses carry a weak
// @Description ETag derived from the message count and latest timestamp;
// @Description a matching If-None-Match yields 304 without a body.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       id  path  string  true  "Room ID"
// @Param       If-None-Match  header  string  false  "Previously returned ETag"
// @Success     200  {array}  domain.Message
// @Success     304  "Not modified"
// @Failure     403  {object}  handlers.ErrorResponse "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown room"
// @Router      /chat/rooms/{id}/messages [get]
func (h *Handlers) RoomHistory(c *gin.Context) {
	uid := currentUser(c).ID
	roomID := c.Param("id")

	count, latest, err := h.chatSvc.RoomStats(c.Request.Context(), uid, roomID)
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}

	var ts int64
	if latest != nil {
		ts = latest.UnixNano()
	}
	etag := fmt.Sprintf("W/\"messages:%s:%d:%d\"", roomID, count, ts)
	c.Header("ETag", etag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}

	msgs, err := h.chatSvc.History(c.Request.Context(), uid, roomID)
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, msgs)
}
