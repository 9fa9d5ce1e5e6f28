// Package rest implements the JSON HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/file"
	"github.com/heartmarshall/workbench-backend/internal/service/organization"
	"github.com/heartmarshall/workbench-backend/internal/service/space"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

const maxJSONBody = 1 << 20

// envelope is the shape of every API response body.
type envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeNoContent(w http.ResponseWriter) {
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Error: message})
}

// writeError maps a service error to its HTTP status. Unexpected errors are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, envelope{Error: "validation failed", Fields: fields})
	case errors.Is(err, domain.ErrValidation):
		writeFail(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeFail(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeFail(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrNotFound):
		writeFail(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeFail(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeFail(w, http.StatusConflict, conflictMessage(err))
	case errors.Is(err, domain.ErrTooLarge):
		writeFail(w, http.StatusRequestEntityTooLarge, "payload too large")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeFail(w, http.StatusInternalServerError, "internal server error")
	}
}

// conflicts are the wrapped conflicts whose message is safe to show.
var conflicts = []error{
	organization.ErrLastOwner,
	organization.ErrLimitReached,
	space.ErrLimitReached,
	file.ErrMoveIntoSelf,
}

func conflictMessage(err error) string {
	for _, c := range conflicts {
		if errors.Is(err, c) {
			return strings.TrimSuffix(c.Error(), ": "+domain.ErrConflict.Error())
		}
	}
	return "conflict"
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeFail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		if errors.Is(err, io.EOF) {
			writeFail(w, http.StatusBadRequest, "request body is empty")
			return false
		}
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathUUID parses the named path value, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{
			Error:  "validation failed",
			Fields: []fieldError{{Field: name, Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

// query collects typed query parameters and their parse errors.
type query struct {
	values map[string][]string
	errs   []domain.FieldError
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) has(name string) bool {
	_, ok := q.values[name]
	return ok
}

func (q *query) str(name string) string {
	if v := q.values[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (q *query) optStr(name string) *string {
	if !q.has(name) {
		return nil
	}
	v := q.str(name)
	return &v
}

func (q *query) uuid(name string) *uuid.UUID {
	v := q.str(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be a UUID"})
		return nil
	}
	return &id
}

func (q *query) int(name string) int {
	v := q.str(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be a non-negative integer"})
		return 0
	}
	return n
}

func (q *query) bool(name string) *bool {
	v := q.str(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be true or false"})
		return nil
	}
	return &b
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(q.errs)
}

func parseUUIDField(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a UUID")
	}
	return id, nil
}

func parseOptUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseUUIDField(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
