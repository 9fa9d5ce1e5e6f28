package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type engine interface {
	Healthy() bool
	Search(ctx context.Context, q Query) ([]Result, int, error)
	IndexNotes(notes []NoteRecord) error
	IndexChats(chats []ChatRecord) error
	DeleteNote(id string) error
	DeleteChat(id string) error
}

type fallback interface {
	Search(ctx context.Context, q Query) ([]Result, int, error)
}

type notePager interface {
	ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Note, error)
}

type chatPager interface {
	ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Chat, error)
}

const reindexPageSize = 500

// Service is the facade that tries Meilisearch first and falls back to
// PostgreSQL. Index updates are fire-and-forget.
type Service struct {
	engine       engine
	fallback     fallback
	notes        notePager
	chats        chatPager
	defaultLimit int
	log          *slog.Logger
}

// NewService creates a search service. eng may be nil when Meilisearch is
// not configured.
func NewService(eng *Meili, fb *PgFTS, notes notePager, chats chatPager, defaultLimit int, logger *slog.Logger) *Service {
	s := &Service{
		fallback:     fb,
		notes:        notes,
		chats:        chats,
		defaultLimit: defaultLimit,
		log:          logger.With("service", "search"),
	}
	// Keep the interface nil when no engine is configured.
	if eng != nil {
		s.engine = eng
	}
	return s
}

// Search validates q and runs it on the best available engine.
func (s *Service) Search(ctx context.Context, q Query) (Response, error) {
	if q.Text == "" {
		return Response{}, domain.NewValidationError("q", "required")
	}
	if q.FilterType != "" && !q.FilterType.IsValid() {
		return Response{}, domain.NewValidationError("type", "must be note or chat")
	}
	if q.Limit <= 0 {
		q.Limit = s.defaultLimit
	}

	if s.engine != nil && s.engine.Healthy() {
		results, total, err := s.engine.Search(ctx, q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text, Engine: "meilisearch"}, nil
		}
		s.log.WarnContext(ctx, "meilisearch error, falling back to postgres", slog.String("error", err.Error()))
	}

	results, total, err := s.fallback.Search(ctx, q)
	if err != nil {
		return Response{}, err
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text, Engine: "postgres"}, nil
}

// Healthy reports whether the external engine is in use.
func (s *Service) Healthy() bool {
	return s.engine != nil && s.engine.Healthy()
}

// IndexNote pushes a note to the index in the background.
func (s *Service) IndexNote(n domain.Note) {
	s.async("index note", n.ID, func(e engine) error { return e.IndexNotes([]NoteRecord{noteRecord(n)}) })
}

// IndexChat pushes a chat to the index in the background.
func (s *Service) IndexChat(c domain.Chat) {
	s.async("index chat", c.ID, func(e engine) error { return e.IndexChats([]ChatRecord{chatRecord(c)}) })
}

// DeleteNote removes a note from the index in the background.
func (s *Service) DeleteNote(id uuid.UUID) {
	s.async("delete note", id, func(e engine) error { return e.DeleteNote(id.String()) })
}

// DeleteChat removes a chat from the index in the background.
func (s *Service) DeleteChat(id uuid.UUID) {
	s.async("delete chat", id, func(e engine) error { return e.DeleteChat(id.String()) })
}

// Reindex walks every note and chat in PostgreSQL and pushes them to the
// index. Returns the number of documents sent.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.engine == nil || !s.engine.Healthy() {
		return 0, nil
	}
	start := time.Now()
	sent := 0

	after := uuid.Nil
	for {
		page, err := s.notes.ListPage(ctx, after, reindexPageSize)
		if err != nil {
			return sent, err
		}
		if len(page) == 0 {
			break
		}
		records := make([]NoteRecord, len(page))
		for i, n := range page {
			records[i] = noteRecord(n)
		}
		if err := s.engine.IndexNotes(records); err != nil {
			return sent, err
		}
		sent += len(records)
		after = page[len(page)-1].ID
	}

	after = uuid.Nil
	for {
		page, err := s.chats.ListPage(ctx, after, reindexPageSize)
		if err != nil {
			return sent, err
		}
		if len(page) == 0 {
			break
		}
		records := make([]ChatRecord, len(page))
		for i, c := range page {
			records[i] = chatRecord(c)
		}
		if err := s.engine.IndexChats(records); err != nil {
			return sent, err
		}
		sent += len(records)
		after = page[len(page)-1].ID
	}

	s.log.InfoContext(ctx, "search index rebuilt",
		slog.Int("documents", sent),
		slog.Duration("elapsed", time.Since(start)),
	)
	return sent, nil
}

func (s *Service) async(op string, id uuid.UUID, fn func(engine) error) {
	if s.engine == nil || !s.engine.Healthy() {
		return
	}
	e := s.engine
	go func() {
		if err := fn(e); err != nil {
			s.log.Warn("search "+op, slog.String("id", id.String()), slog.String("error", err.Error()))
		}
	}()
}

func noteRecord(n domain.Note) NoteRecord {
	return NoteRecord{
		ID:      n.ID.String(),
		UserID:  n.UserID.String(),
		SpaceID: spaceString(n.SpaceID),
		Title:   n.Title,
		Content: n.Content,
		Tags:    n.Metadata.Tags,
	}
}

func chatRecord(c domain.Chat) ChatRecord {
	return ChatRecord{
		ID:      c.ID.String(),
		UserID:  c.UserID.String(),
		SpaceID: spaceString(c.SpaceID),
		Title:   c.Title,
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
