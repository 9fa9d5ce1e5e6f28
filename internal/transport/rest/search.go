package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/workbench-backend/internal/adapter/search"
	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

const maxSearchLimit = 100

type searchService interface {
	Search(ctx context.Context, q search.Query) (search.Response, error)
}

// SearchHandler serves /api/search.
type SearchHandler struct {
	svc searchService
	log *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc searchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search")}
}

// Search handles GET /api/search?q=&type=&spaceId=&limit=.
// Only the caller's own notes and chats are searched.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	q := newQuery(r)
	sq := search.Query{
		UserID:     userID,
		Text:       q.str("q"),
		FilterType: search.ResultType(q.str("type")),
		SpaceID:    q.uuid("spaceId"),
		Limit:      q.int("limit"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if sq.Limit > maxSearchLimit {
		sq.Limit = maxSearchLimit
	}

	resp, err := h.svc.Search(r.Context(), sq)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}
