package rest

import (
	"net/http"

	"github.com/heartmarshall/workbench-backend/internal/transport/middleware"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Organization *OrganizationHandler
	Space        *SpaceHandler
	Chat         *ChatHandler
	Note         *NoteHandler
	File         *FileHandler
	Search       *SearchHandler
}

// NewRouter registers all routes. global wraps the whole mux; authLimit, when
// non-nil, wraps the unauthenticated auth endpoints.
func NewRouter(h Handlers, authLimit middleware.Middleware, global ...middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		if authLimit == nil {
			return fn
		}
		return authLimit(fn)
	}

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("POST /api/auth/register", limited(h.Auth.Register))
	mux.Handle("POST /api/auth/login", limited(h.Auth.Login))
	mux.Handle("POST /api/auth/refresh", limited(h.Auth.Refresh))
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("POST /api/auth/password", limited(h.Auth.ChangePassword))

	mux.HandleFunc("GET /api/me", h.Profile.Get)
	mux.HandleFunc("PATCH /api/me", h.Profile.Update)

	mux.HandleFunc("GET /api/organizations", h.Organization.List)
	mux.HandleFunc("POST /api/organizations", h.Organization.Create)
	mux.HandleFunc("GET /api/organizations/{id}", h.Organization.Get)
	mux.HandleFunc("PATCH /api/organizations/{id}", h.Organization.Update)
	mux.HandleFunc("DELETE /api/organizations/{id}", h.Organization.Delete)
	mux.HandleFunc("GET /api/organizations/{id}/members", h.Organization.ListMembers)
	mux.HandleFunc("POST /api/organizations/{id}/members", h.Organization.AddMember)
	mux.HandleFunc("PATCH /api/organizations/{id}/members/{userId}", h.Organization.UpdateMember)
	mux.HandleFunc("DELETE /api/organizations/{id}/members/{userId}", h.Organization.RemoveMember)

	mux.HandleFunc("GET /api/spaces", h.Space.List)
	mux.HandleFunc("POST /api/spaces", h.Space.Create)
	mux.HandleFunc("GET /api/spaces/{id}", h.Space.Get)
	mux.HandleFunc("PATCH /api/spaces/{id}", h.Space.Update)
	mux.HandleFunc("DELETE /api/spaces/{id}", h.Space.Delete)

	mux.HandleFunc("GET /api/chat", h.Chat.List)
	mux.HandleFunc("POST /api/chat", h.Chat.Create)
	mux.HandleFunc("GET /api/chat/{id}", h.Chat.Get)
	mux.HandleFunc("PATCH /api/chat/{id}", h.Chat.Update)
	mux.HandleFunc("DELETE /api/chat/{id}", h.Chat.Delete)
	mux.HandleFunc("GET /api/chat/{id}/messages", h.Chat.ListMessages)
	mux.HandleFunc("POST /api/chat/{id}/messages", h.Chat.CreateMessage)
	mux.HandleFunc("DELETE /api/chat/{id}/messages/{messageId}", h.Chat.DeleteMessage)

	mux.HandleFunc("GET /api/notes", h.Note.List)
	mux.HandleFunc("POST /api/notes", h.Note.Create)
	mux.HandleFunc("GET /api/notes/folders", h.Note.Folders)
	mux.HandleFunc("PATCH /api/notes/batch", h.Note.BatchUpdate)
	mux.HandleFunc("PUT /api/notes/reorder", h.Note.Reorder)
	mux.HandleFunc("GET /api/notes/{id}", h.Note.Get)
	mux.HandleFunc("PATCH /api/notes/{id}", h.Note.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", h.Note.Delete)

	mux.HandleFunc("GET /api/files", h.File.List)
	mux.HandleFunc("POST /api/files", h.File.Upload)
	mux.HandleFunc("POST /api/files/folders", h.File.CreateFolder)
	mux.HandleFunc("GET /api/files/{id}", h.File.Get)
	mux.HandleFunc("PATCH /api/files/{id}", h.File.Update)
	mux.HandleFunc("DELETE /api/files/{id}", h.File.Delete)
	mux.HandleFunc("GET /api/files/{id}/content", h.File.Content)

	mux.HandleFunc("GET /api/search", h.Search.Search)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "route not found")
	})

	return middleware.Chain(global...)(mux)
}
