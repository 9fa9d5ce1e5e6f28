package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/pkg/querycache"
)

// ChatsKey is the cache key of the chat list of spaceID ("" for all chats).
func ChatsKey(spaceID string) querycache.Key { return querycache.Key{"chats", spaceID} }

// MessagesKey is the cache key of the messages of chatID.
func MessagesKey(chatID string) querycache.Key { return querycache.Key{"chat", chatID, "messages"} }

func (c *Client) chatList(spaceID string) querycache.List[Chat] {
	return querycache.List[Chat]{
		Cache:   c.cache,
		Key:     ChatsKey(spaceID),
		ID:      func(ch Chat) string { return ch.ID },
		Prepend: true,
	}
}

func (c *Client) messageList(chatID string) querycache.List[Message] {
	return querycache.List[Message]{
		Cache: c.cache,
		Key:   MessagesKey(chatID),
		ID:    func(m Message) string { return m.ID },
	}
}

// Chats lists the chats of spaceID, from cache when fresh.
func (c *Client) Chats(ctx context.Context, spaceID string) ([]Chat, error) {
	v := url.Values{}
	if spaceID != "" {
		v.Set("spaceId", spaceID)
	}
	return querycache.Fetch(ctx, c.cache, ChatsKey(spaceID), func(ctx context.Context) ([]Chat, error) {
		return do[[]Chat](ctx, c, http.MethodGet, "/api/chat", v, nil)
	})
}

// CreateChat creates a chat at the top of the list of spaceID.
func (c *Client) CreateChat(ctx context.Context, spaceID, title string) (Chat, error) {
	body := map[string]any{"title": title}
	temp := Chat{ID: tempIDPrefix + uuid.NewString(), Title: title, CreatedAt: time.Now()}
	if spaceID != "" {
		body["spaceId"] = spaceID
		temp.SpaceID = &spaceID
	}
	return c.chatList(spaceID).AddItem(ctx, temp, func(ctx context.Context) (Chat, error) {
		return do[Chat](ctx, c, http.MethodPost, "/api/chat", nil, body)
	})
}

// UpdateChat renames or pins a chat in the list of spaceID.
func (c *Client) UpdateChat(ctx context.Context, spaceID, chatID string, u ChatUpdate) (Chat, error) {
	patch := func(ch Chat) Chat {
		if u.Title != nil {
			ch.Title = *u.Title
		}
		if u.Pinned != nil {
			ch.Pinned = *u.Pinned
		}
		return ch
	}
	return c.chatList(spaceID).UpdateItem(ctx, chatID, patch, func(ctx context.Context) (Chat, error) {
		return do[Chat](ctx, c, http.MethodPatch, "/api/chat/"+url.PathEscape(chatID), nil, u)
	})
}

// DeleteChat removes a chat and forgets its messages.
func (c *Client) DeleteChat(ctx context.Context, spaceID, chatID string) error {
	err := c.chatList(spaceID).DeleteItem(ctx, chatID, func(ctx context.Context) error {
		_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/chat/"+url.PathEscape(chatID), nil, nil)
		return err
	})
	if err == nil {
		c.cache.Invalidate(MessagesKey(chatID))
	}
	return err
}

// Messages lists the messages of chatID, from cache when fresh.
func (c *Client) Messages(ctx context.Context, chatID string) ([]Message, error) {
	return querycache.Fetch(ctx, c.cache, MessagesKey(chatID), func(ctx context.Context) ([]Message, error) {
		return do[[]Message](ctx, c, http.MethodGet, "/api/chat/"+url.PathEscape(chatID)+"/messages", nil, nil)
	})
}

// SendMessage appends a user message to chatID. The message list and the
// chat's messageCount in the list of spaceID change together and roll back
// together.
func (c *Client) SendMessage(ctx context.Context, spaceID, chatID, content string) (Message, error) {
	msgs := c.messageList(chatID)
	chats := c.chatList(spaceID)
	temp := Message{
		ID:        tempIDPrefix + uuid.NewString(),
		ChatID:    chatID,
		Role:      "user",
		Content:   content,
		CreatedAt: time.Now(),
	}

	return querycache.Coordinated(ctx, c.cache, []querycache.Key{msgs.Key, chats.Key},
		func() {
			msgs.Insert(temp)
			chats.Patch([]string{chatID}, func(ch Chat) Chat {
				ch.MessageCount++
				return ch
			})
		},
		func(ctx context.Context) (Message, error) {
			return do[Message](ctx, c, http.MethodPost, "/api/chat/"+url.PathEscape(chatID)+"/messages", nil,
				map[string]string{"role": "user", "content": content})
		},
		func(m Message) { msgs.Replace(temp.ID, m) },
	)
}

// DeleteMessage removes a message and decrements the chat's messageCount.
func (c *Client) DeleteMessage(ctx context.Context, spaceID, chatID, messageID string) error {
	msgs := c.messageList(chatID)
	chats := c.chatList(spaceID)

	_, err := querycache.Coordinated(ctx, c.cache, []querycache.Key{msgs.Key, chats.Key},
		func() {
			msgs.Remove(messageID)
			chats.Patch([]string{chatID}, func(ch Chat) Chat {
				if ch.MessageCount > 0 {
					ch.MessageCount--
				}
				return ch
			})
		},
		func(ctx context.Context) (struct{}, error) {
			path := "/api/chat/" + url.PathEscape(chatID) + "/messages/" + url.PathEscape(messageID)
			return do[struct{}](ctx, c, http.MethodDelete, path, nil, nil)
		},
		nil,
	)
	return err
}
