package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/space"
)

type spaceService interface {
	CreateSpace(ctx context.Context, input space.CreateSpaceInput) (*domain.Space, error)
	ListSpaces(ctx context.Context, orgID *uuid.UUID) ([]domain.Space, error)
	GetSpace(ctx context.Context, spaceID uuid.UUID) (*domain.Space, error)
	UpdateSpace(ctx context.Context, spaceID uuid.UUID, input space.UpdateSpaceInput) (*domain.Space, error)
	DeleteSpace(ctx context.Context, spaceID uuid.UUID) error
}

// SpaceHandler serves /api/spaces.
type SpaceHandler struct {
	svc spaceService
	log *slog.Logger
}

// NewSpaceHandler creates a SpaceHandler.
func NewSpaceHandler(svc spaceService, logger *slog.Logger) *SpaceHandler {
	return &SpaceHandler{svc: svc, log: logger.With("handler", "space")}
}

type createSpaceRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	OrganizationID *string `json:"organizationId"`
}

type updateSpaceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List handles GET /api/spaces?organizationId=.
func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	orgID := q.uuid("organizationId")
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	spaces, err := h.svc.ListSpaces(r.Context(), orgID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(spaces, toSpaceResponse))
}

// Create handles POST /api/spaces.
func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSpaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	orgID, err := parseOptUUID("organizationId", req.OrganizationID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	sp, err := h.svc.CreateSpace(r.Context(), space.CreateSpaceInput{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: orgID,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toSpaceResponse(sp))
}

// Get handles GET /api/spaces/{id}.
func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sp, err := h.svc.GetSpace(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toSpaceResponse(sp))
}

// Update handles PATCH /api/spaces/{id}.
func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateSpaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sp, err := h.svc.UpdateSpace(r.Context(), id, space.UpdateSpaceInput{Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toSpaceResponse(sp))
}

// Delete handles DELETE /api/spaces/{id}.
func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSpace(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}
