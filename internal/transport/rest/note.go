package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/note"
)

type noteService interface {
	CreateNote(ctx context.Context, input note.CreateNoteInput) (*domain.Note, error)
	ListNotes(ctx context.Context, input note.ListNotesInput) ([]domain.Note, error)
	GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, input note.UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	BatchUpdate(ctx context.Context, input note.BatchUpdateInput) ([]domain.Note, error)
	Reorder(ctx context.Context, input note.ReorderInput) error
	ListFolders(ctx context.Context, spaceID *uuid.UUID) ([][]string, error)
}

// NoteHandler serves /api/notes.
type NoteHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(svc noteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, log: logger.With("handler", "note")}
}

type createNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	SpaceID    *string  `json:"spaceId"`
	FolderPath []string `json:"folderPath"`
	Tags       []string `json:"tags"`
	Pinned     bool     `json:"pinned"`
}

type updateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	SpaceID    *string   `json:"spaceId"`
	FolderPath *[]string `json:"folderPath"`
	Tags       *[]string `json:"tags"`
	Pinned     *bool     `json:"pinned"`
}

func (req updateNoteRequest) input() (note.UpdateNoteInput, error) {
	spaceID, err := parseOptUUID("spaceId", req.SpaceID)
	if err != nil {
		return note.UpdateNoteInput{}, err
	}
	return note.UpdateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		SpaceID:    spaceID,
		FolderPath: req.FolderPath,
		Tags:       req.Tags,
		Pinned:     req.Pinned,
	}, nil
}

type batchUpdateRequest struct {
	IDs    []string          `json:"ids"`
	Update updateNoteRequest `json:"update"`
}

type reorderRequest struct {
	Positions []struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	} `json:"positions"`
}

// List handles GET /api/notes?spaceId=&folder=&recursive=&tag=&q=&limit=&offset=.
// folder is a slash separated path; an empty value selects the root.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := note.ListNotesInput{
		SpaceID: q.uuid("spaceId"),
		Folder:  q.optStr("folder"),
		Tag:     q.optStr("tag"),
		Query:   q.optStr("q"),
		Limit:   q.int("limit"),
		Offset:  q.int("offset"),
	}
	if rec := q.bool("recursive"); rec != nil {
		input.Recursive = *rec
	}
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	notes, err := h.svc.ListNotes(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(notes, toNoteResponse))
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	spaceID, err := parseOptUUID("spaceId", req.SpaceID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	n, err := h.svc.CreateNote(r.Context(), note.CreateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		SpaceID:    spaceID,
		FolderPath: req.FolderPath,
		Tags:       req.Tags,
		Pinned:     req.Pinned,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toNoteResponse(n))
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toNoteResponse(n))
}

// Update handles PATCH /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	n, err := h.svc.UpdateNote(r.Context(), id, input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toNoteResponse(n))
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteNote(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}

// BatchUpdate handles PATCH /api/notes/batch.
func (h *NoteHandler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req batchUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		id, err := parseUUIDField("ids", raw)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		ids[i] = id
	}
	update, err := req.Update.input()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	notes, err := h.svc.BatchUpdate(r.Context(), note.BatchUpdateInput{IDs: ids, Update: update})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(notes, toNoteResponse))
}

// Reorder handles PUT /api/notes/reorder.
func (h *NoteHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	positions := make([]domain.NotePosition, len(req.Positions))
	for i, p := range req.Positions {
		id, err := parseUUIDField("positions.id", p.ID)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		positions[i] = domain.NotePosition{ID: id, Position: p.Position}
	}

	if err := h.svc.Reorder(r.Context(), note.ReorderInput{Positions: positions}); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"updated": len(positions)})
}

// Folders handles GET /api/notes/folders?spaceId=.
func (h *NoteHandler) Folders(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	spaceID := q.uuid("spaceId")
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	folders, err := h.svc.ListFolders(r.Context(), spaceID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if folders == nil {
		folders = [][]string{}
	}
	writeData(w, http.StatusOK, folders)
}
