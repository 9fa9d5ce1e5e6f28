package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/adapter/blob"
	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/file"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temporary file.
const (
	multipartMemory   = 8 << 20
	multipartOverhead = 1 << 20
)

type fileService interface {
	Upload(ctx context.Context, input file.UploadInput) (*domain.File, error)
	CreateFolder(ctx context.Context, input file.CreateFolderInput) (*domain.File, error)
	ListFiles(ctx context.Context, input file.ListFilesInput) ([]domain.File, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (*domain.File, error)
	Download(ctx context.Context, fileID uuid.UUID) (*domain.File, *blob.Object, error)
	UpdateFile(ctx context.Context, fileID uuid.UUID, input file.UpdateFileInput) (*domain.File, error)
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}

// FileHandler serves /api/files.
type FileHandler struct {
	svc       fileService
	maxUpload int64
	log       *slog.Logger
}

// NewFileHandler creates a FileHandler. maxUpload bounds the request body.
func NewFileHandler(svc fileService, maxUpload int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{svc: svc, maxUpload: maxUpload, log: logger.With("handler", "file")}
}

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	SpaceID  *string `json:"spaceId"`
}

type updateFileRequest struct {
	Name       *string `json:"name"`
	ParentID   *string `json:"parentId"`
	MoveToRoot bool    `json:"moveToRoot"`
}

// List handles GET /api/files?spaceId=&parentId=&kind=.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	input := file.ListFilesInput{
		SpaceID:  q.uuid("spaceId"),
		ParentID: q.uuid("parentId"),
	}
	if k := q.str("kind"); k != "" {
		kind := domain.FileKind(k)
		input.Kind = &kind
	}
	if err := q.err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	files, err := h.svc.ListFiles(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, mapSlice(files, toFileResponse))
}

// Upload handles POST /api/files as multipart/form-data with a "file" part and
// optional "name", "parentId" and "spaceId" fields.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, r, h.log, domain.ErrTooLarge)
			return
		}
		writeFail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("file", "required"))
		return
	}
	defer part.Close()

	parentID, err := parseOptUUID("parentId", formValue(r, "parentId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	spaceID, err := parseOptUUID("spaceId", formValue(r, "spaceId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	f, err := h.svc.Upload(r.Context(), file.UploadInput{
		Name:        name,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        part,
		ParentID:    parentID,
		SpaceID:     spaceID,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toFileResponse(f))
}

func formValue(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

// CreateFolder handles POST /api/files/folders.
func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	parentID, err := parseOptUUID("parentId", req.ParentID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	spaceID, err := parseOptUUID("spaceId", req.SpaceID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	f, err := h.svc.CreateFolder(r.Context(), file.CreateFolderInput{Name: req.Name, ParentID: parentID, SpaceID: spaceID})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toFileResponse(f))
}

// Get handles GET /api/files/{id}.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	f, err := h.svc.GetFile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toFileResponse(f))
}

// Update handles PATCH /api/files/{id} (rename and/or move).
func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	parentID, err := parseOptUUID("parentId", req.ParentID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	f, err := h.svc.UpdateFile(r.Context(), id, file.UpdateFileInput{
		Name:       req.Name,
		ParentID:   parentID,
		MoveToRoot: req.MoveToRoot,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toFileResponse(f))
}

// Delete handles DELETE /api/files/{id}. Folders are deleted recursively.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteFile(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeNoContent(w)
}

// Content handles GET /api/files/{id}/content and streams the blob.
func (h *FileHandler) Content(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	f, obj, err := h.svc.Download(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	defer obj.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = f.ContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if obj.ETag != "" {
		w.Header().Set("ETag", strconv.Quote(obj.ETag))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj); err != nil {
		h.log.WarnContext(r.Context(), "download interrupted",
			slog.String("file_id", id.String()),
			slog.String("error", err.Error()))
	}
}
