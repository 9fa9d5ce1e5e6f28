package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/chat"
	"github.com/heartmarshall/workbench-backend/internal/transport/rest/loader"
)

type chatService interface {
	CreateChat(ctx context.Context, input chat.CreateChatInput) (*domain.Chat, error)
	ListChats(ctx context.Context, input chat.ListChatsInput) ([]domain.Chat, error)
	GetChat(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error)
	UpdateChat(ctx context.Context, chatID uuid.UUID, input chat.UpdateChatInput) (*domain.Chat, error)
	DeleteChat(ctx context.Context, chatID uuid.UUID) error
	ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error)
	CreateMessage(ctx context.Context, chatID uuid.UUID, input chat.CreateMessageInput) (*domain.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID uuid.UUID) error
}

// ChatHandler serves /api/chat.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type createChatRequest struct {
	Title   string  `json:"title"`
	SpaceID *string `json:"spaceId"`
}

type updateChatRequest struct {
	Title  *string `json:"title"`
	Pinned *bool   `json:"pinned"`
}

type createMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// List handles GET /api/chat?spaceId=&pinned=&limit=&offset=.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := chat.ListChatsInput{
		SpaceID: q.uuid("spaceId"),
		Pinned:  q.bool("pinned"),
		Limit:   q.int("limit"),
		Offset:  q.int("offset"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	chats, err := h.svc.ListChats(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(chats, toChatResponse))
}

// Create handles POST /api/chat.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	spaceID, err := parseOptUUID("spaceId", req.SpaceID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.svc.CreateChat(r.Context(), chat.CreateChatInput{Title: req.Title, SpaceID: spaceID})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toChatResponse(c))
}

// Get handles GET /api/chat/{id}. The response includes all messages.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.GetChat(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	msgs, err := h.renderMessages(r.Context(), c.Messages)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	resp := toChatResponse(c)
	resp.Messages = msgs
	writeData(w, http.StatusOK, resp)
}

// Update handles PATCH /api/chat/{id}.
func (h *ChatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateChat(r.Context(), id, chat.UpdateChatInput{Title: req.Title, Pinned: req.Pinned})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toChatResponse(c))
}

// Delete handles DELETE /api/chat/{id}.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteChat(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}

// ListMessages handles GET /api/chat/{id}/messages?limit=&offset=.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	q := newQuery(r)
	limit, offset := q.int("limit"), q.int("offset")
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	msgs, err := h.svc.ListMessages(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.renderMessages(r.Context(), msgs)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, out)
}

// CreateMessage handles POST /api/chat/{id}/messages.
func (h *ChatHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req createMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.CreateMessage(r.Context(), id, chat.CreateMessageInput{
		Role:    domain.MessageRole(req.Role),
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.renderMessages(r.Context(), []domain.Message{*m})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, out[0])
}

// DeleteMessage handles DELETE /api/chat/{id}/messages/{messageId}.
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(w, r, "messageId")
	if !ok {
		return
	}

	if err := h.svc.DeleteMessage(r.Context(), id, messageID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}

// renderMessages attaches sender profiles, batching the user lookups.
func (h *ChatHandler) renderMessages(ctx context.Context, msgs []domain.Message) ([]messageResponse, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, m := range msgs {
		if m.SenderID == nil {
			continue
		}
		if _, ok := seen[*m.SenderID]; !ok {
			seen[*m.SenderID] = struct{}{}
			ids = append(ids, *m.SenderID)
		}
	}

	users, err := loader.LoadUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]messageResponse, len(msgs))
	for i := range msgs {
		var sender *domain.User
		if msgs[i].SenderID != nil {
			sender = users[*msgs[i].SenderID]
		}
		out[i] = toMessageResponse(&msgs[i], sender)
	}
	return out, nil
}
