// Package chat implements chat and message persistence using PostgreSQL.
package chat

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Repo provides chat persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new chat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var chatColumns = []string{"id", "user_id", "space_id", "title", "pinned", "message_count", "created_at", "updated_at"}

var chatColumnList = strings.Join(chatColumns, ", ")

const (
	createSQL = `
INSERT INTO chats (id, user_id, space_id, title, pinned, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, space_id, title, pinned, message_count, created_at, updated_at`

	deleteSQL = `DELETE FROM chats WHERE id = $1`

	// Fallback search when the external index is unavailable.
	searchSQL = `
SELECT id, user_id, space_id, title, pinned, message_count, created_at, updated_at
FROM chats c
WHERE c.user_id = $1
  AND ($3::uuid IS NULL OR c.space_id = $3)
  AND (c.title ILIKE $2 OR EXISTS (
        SELECT 1 FROM messages m WHERE m.chat_id = c.id AND m.content ILIKE $2))
ORDER BY c.updated_at DESC
LIMIT $4`

	pageSQL = `
SELECT id, user_id, space_id, title, pinned, message_count, created_at, updated_at
FROM chats WHERE id > $1 ORDER BY id LIMIT $2`
)

// Create inserts a chat and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Chat) (*domain.Chat, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		c.ID, c.UserID, c.SpaceID, c.Title, c.Pinned, c.CreatedAt, c.UpdatedAt,
	)
	out, err := scanChat(row)
	if err != nil {
		return nil, postgres.MapError(err, "chat", c.ID)
	}
	return out, nil
}

// GetByID returns a chat without its messages.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	q := postgres.Builder().Select(chatColumns...).From("chats").Where(sq.Eq{"id": id})
	c, err := scanChat(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "chat", id)
	}
	return c, nil
}

// GetByIDs returns the user's chats among ids. Missing or foreign ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Chat, error) {
	if len(ids) == 0 {
		return []domain.Chat{}, nil
	}
	q := postgres.Builder().Select(chatColumns...).From("chats").
		Where(sq.Eq{"user_id": userID, "id": ids})
	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("get chats: %w", err)
	}
	return collectChats(rows)
}

// List returns the user's chats, pinned first, most recently updated next.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.ChatFilter) ([]domain.Chat, error) {
	q := postgres.Builder().Select(chatColumns...).From("chats").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("pinned DESC", "updated_at DESC", "id")
	if f.SpaceID != nil {
		q = q.Where(sq.Eq{"space_id": *f.SpaceID})
	}
	if f.Pinned != nil {
		q = q.Where(sq.Eq{"pinned": *f.Pinned})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return collectChats(rows)
}

// Update applies a partial update. With no fields set it returns the current row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.ChatUpdateParams) (*domain.Chat, error) {
	if params.Title == nil && params.Pinned == nil {
		return r.GetByID(ctx, id)
	}

	q := postgres.Builder().Update("chats").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + chatColumnList)
	if params.Title != nil {
		q = q.Set("title", *params.Title)
	}
	if params.Pinned != nil {
		q = q.Set("pinned", *params.Pinned)
	}

	c, err := scanChat(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "chat", id)
	}
	return c, nil
}

// Delete removes a chat; its messages cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "chat", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Search matches the query against chat titles and message bodies.
func (r *Repo) Search(ctx context.Context, userID uuid.UUID, query string, spaceID *uuid.UUID, limit int) ([]domain.Chat, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, searchSQL, userID, pattern, spaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("search chats: %w", err)
	}
	return collectChats(rows)
}

// ListPage returns up to limit chats with id greater than after, ordered by id.
// Used to walk the whole table when rebuilding the search index.
func (r *Repo) ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Chat, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, pageSQL, after, limit)
	if err != nil {
		return nil, fmt.Errorf("page chats: %w", err)
	}
	return collectChats(rows)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

const messageColumns = `id, chat_id, sender_id, role, content, created_at`

const (
	// The insert and the counter bump run as one statement.
	createMessageSQL = `
WITH ins AS (
    INSERT INTO messages (id, chat_id, sender_id, role, content, created_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + messageColumns + `
), bump AS (
    UPDATE chats SET message_count = message_count + 1, updated_at = now()
    WHERE id = $2
)
SELECT ` + messageColumns + ` FROM ins`

	deleteMessageSQL = `
WITH del AS (
    DELETE FROM messages WHERE id = $1 AND chat_id = $2 RETURNING chat_id
)
UPDATE chats SET message_count = message_count - 1, updated_at = now()
WHERE id IN (SELECT chat_id FROM del)`

	getMessageSQL = `SELECT ` + messageColumns + ` FROM messages WHERE id = $1 AND chat_id = $2`
)

// CreateMessage inserts a message and increments the chat's message count.
func (r *Repo) CreateMessage(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createMessageSQL,
		m.ID, m.ChatID, m.SenderID, string(m.Role), m.Content, m.CreatedAt,
	)
	out, err := scanMessage(row)
	if err != nil {
		return nil, postgres.MapError(err, "message", m.ID)
	}
	return out, nil
}

// GetMessage returns a message of the given chat.
func (r *Repo) GetMessage(ctx context.Context, chatID, messageID uuid.UUID) (*domain.Message, error) {
	m, err := scanMessage(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getMessageSQL, messageID, chatID))
	if err != nil {
		return nil, postgres.MapError(err, "message", messageID)
	}
	return m, nil
}

// ListMessages returns messages in chronological order. limit <= 0 returns all.
func (r *Repo) ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	q := postgres.Builder().
		Select("id", "chat_id", "sender_id", "role", "content", "created_at").
		From("messages").
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("created_at", "id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

// DeleteMessage removes a message and decrements the chat's message count.
func (r *Repo) DeleteMessage(ctx context.Context, chatID, messageID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteMessageSQL, messageID, chatID)
	if err != nil {
		return postgres.MapError(err, "message", messageID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", messageID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanChat(row pgx.Row) (*domain.Chat, error) {
	var c domain.Chat
	err := row.Scan(&c.ID, &c.UserID, &c.SpaceID, &c.Title, &c.Pinned, &c.MessageCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectChats(rows pgx.Rows) ([]domain.Chat, error) {
	defer rows.Close()

	chats := []domain.Chat{}
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, *c)
	}
	return chats, rows.Err()
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		m    domain.Message
		role string
	)
	if err := row.Scan(&m.ID, &m.ChatID, &m.SenderID, &role, &m.Content, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Role = domain.MessageRole(role)
	return &m, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
