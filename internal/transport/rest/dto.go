package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// profileResponse is the public view of another user.
type profileResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func toProfile(u *domain.User) *profileResponse {
	if u == nil {
		return nil
	}
	return &profileResponse{ID: u.ID.String(), Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}

type organizationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Role        string    `json:"role,omitempty"`
	MemberCount int       `json:"memberCount"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOrganizationResponse(o *domain.Organization) organizationResponse {
	return organizationResponse{
		ID:          o.ID.String(),
		Name:        o.Name,
		Slug:        o.Slug,
		Role:        string(o.Role),
		MemberCount: o.MemberCount,
		CreatedBy:   o.CreatedBy.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type memberResponse struct {
	UserID    string           `json:"userId"`
	Role      string           `json:"role"`
	User      *profileResponse `json:"user,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toMemberResponse(m *domain.Membership, u *domain.User) memberResponse {
	return memberResponse{
		UserID:    m.UserID.String(),
		Role:      string(m.Role),
		User:      toProfile(u),
		CreatedAt: m.CreatedAt,
	}
}

type spaceResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	OwnerUserID    *string   `json:"ownerUserId,omitempty"`
	OrganizationID *string   `json:"organizationId,omitempty"`
	Personal       bool      `json:"personal"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toSpaceResponse(s *domain.Space) spaceResponse {
	return spaceResponse{
		ID:             s.ID.String(),
		Name:           s.Name,
		Description:    s.Description,
		OwnerUserID:    optString(s.OwnerUserID),
		OrganizationID: optString(s.OrganizationID),
		Personal:       s.IsPersonal(),
		CreatedBy:      s.CreatedBy.String(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type chatResponse struct {
	ID           string            `json:"id"`
	SpaceID      *string           `json:"spaceId,omitempty"`
	Title        string            `json:"title"`
	Pinned       bool              `json:"pinned"`
	MessageCount int               `json:"messageCount"`
	Messages     []messageResponse `json:"messages,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func toChatResponse(c *domain.Chat) chatResponse {
	return chatResponse{
		ID:           c.ID.String(),
		SpaceID:      optString(c.SpaceID),
		Title:        c.Title,
		Pinned:       c.Pinned,
		MessageCount: c.MessageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type messageResponse struct {
	ID        string           `json:"id"`
	ChatID    string           `json:"chatId"`
	SenderID  *string          `json:"senderId,omitempty"`
	Sender    *profileResponse `json:"sender,omitempty"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toMessageResponse(m *domain.Message, sender *domain.User) messageResponse {
	return messageResponse{
		ID:        m.ID.String(),
		ChatID:    m.ChatID.String(),
		SenderID:  optString(m.SenderID),
		Sender:    toProfile(sender),
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type noteResponse struct {
	ID         string    `json:"id"`
	SpaceID    *string   `json:"spaceId,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Position   int       `json:"position"`
	FolderPath []string  `json:"folderPath"`
	Tags       []string  `json:"tags"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:         n.ID.String(),
		SpaceID:    optString(n.SpaceID),
		Title:      n.Title,
		Content:    n.Content,
		Position:   n.Position,
		FolderPath: nonNilStrings(n.Metadata.FolderPath),
		Tags:       nonNilStrings(n.Metadata.Tags),
		Pinned:     n.Metadata.Pinned,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

type fileResponse struct {
	ID          string    `json:"id"`
	SpaceID     *string   `json:"spaceId,omitempty"`
	ParentID    *string   `json:"parentId,omitempty"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toFileResponse(f *domain.File) fileResponse {
	return fileResponse{
		ID:          f.ID.String(),
		SpaceID:     optString(f.SpaceID),
		ParentID:    optString(f.Metadata.ParentID),
		Kind:        string(f.Kind),
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}

func optString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
