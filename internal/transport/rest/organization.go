package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/organization"
	"github.com/heartmarshall/workbench-backend/internal/transport/rest/loader"
)

type organizationService interface {
	CreateOrganization(ctx context.Context, input organization.CreateOrganizationInput) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, orgID uuid.UUID, input organization.UpdateOrganizationInput) (*domain.Organization, error)
	DeleteOrganization(ctx context.Context, orgID uuid.UUID) error
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	AddMember(ctx context.Context, orgID uuid.UUID, input organization.AddMemberInput) (*domain.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, memberID uuid.UUID, role domain.MemberRole) (*domain.Membership, error)
	RemoveMember(ctx context.Context, orgID, memberID uuid.UUID) error
}

// OrganizationHandler serves /api/organizations.
type OrganizationHandler struct {
	svc organizationService
	log *slog.Logger
}

// NewOrganizationHandler creates an OrganizationHandler.
func NewOrganizationHandler(svc organizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, log: logger.With("handler", "organization")}
}

type createOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type updateOrganizationRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type addMemberRequest struct {
	UserID *string `json:"userId"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
}

type updateMemberRequest struct {
	Role string `json:"role"`
}

// List handles GET /api/organizations.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(orgs, toOrganizationResponse))
}

// Create handles POST /api/organizations.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.svc.CreateOrganization(r.Context(), organization.CreateOrganizationInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toOrganizationResponse(org))
}

// Get handles GET /api/organizations/{id}.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	org, err := h.svc.GetOrganization(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toOrganizationResponse(org))
}

// Update handles PATCH /api/organizations/{id}.
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.svc.UpdateOrganization(r.Context(), id, organization.UpdateOrganizationInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toOrganizationResponse(org))
}

// Delete handles DELETE /api/organizations/{id}.
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteOrganization(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}

// ListMembers handles GET /api/organizations/{id}/members.
func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	users, err := loader.LoadUsers(r.Context(), ids)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]memberResponse, len(members))
	for i := range members {
		out[i] = toMemberResponse(&members[i], users[members[i].UserID])
	}
	writeData(w, http.StatusOK, out)
}

// AddMember handles POST /api/organizations/{id}/members.
func (h *OrganizationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req addMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, err := parseOptUUID("userId", req.UserID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.svc.AddMember(r.Context(), id, organization.AddMemberInput{
		UserID: userID,
		Email:  req.Email,
		Role:   domain.MemberRole(req.Role),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	users, err := loader.LoadUsers(r.Context(), []uuid.UUID{m.UserID})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toMemberResponse(m, users[m.UserID]))
}

// UpdateMember handles PATCH /api/organizations/{id}/members/{userId}.
func (h *OrganizationHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	var req updateMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.UpdateMemberRole(r.Context(), id, memberID, domain.MemberRole(req.Role))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toMemberResponse(m, nil))
}

// RemoveMember handles DELETE /api/organizations/{id}/members/{userId}.
func (h *OrganizationHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.svc.RemoveMember(r.Context(), id, memberID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}
