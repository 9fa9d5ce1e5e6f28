package client

import "time"

// User is the authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the public view of a user.
type Profile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Session is returned by Register, Login and Refresh.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	User         User   `json:"user"`
}

type Note struct {
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

// NewNote is the body of a create.
type NewNote struct {
	Title      string   `json:"title"`
	Content    string   `json:"content,omitempty"`
	SpaceID    *string  `json:"spaceId,omitempty"`
	FolderPath []string `json:"folderPath,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Pinned     bool     `json:"pinned,omitempty"`
}

// NoteUpdate is a partial update; nil fields are left unchanged.
type NoteUpdate struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	FolderPath *[]string `json:"folderPath,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Pinned     *bool     `json:"pinned,omitempty"`
}

func (u NoteUpdate) apply(n Note) Note {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.FolderPath != nil {
		n.FolderPath = *u.FolderPath
	}
	if u.Tags != nil {
		n.Tags = *u.Tags
	}
	if u.Pinned != nil {
		n.Pinned = *u.Pinned
	}
	return n
}

type Chat struct {
	ID           string    `json:"id"`
	SpaceID      *string   `json:"spaceId,omitempty"`
	Title        string    `json:"title"`
	Pinned       bool      `json:"pinned"`
	MessageCount int       `json:"messageCount"`
	Messages     []Message `json:"messages,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChatUpdate is a partial update; nil fields are left unchanged.
type ChatUpdate struct {
	Title  *string `json:"title,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  *string   `json:"senderId,omitempty"`
	Sender    *Profile  `json:"sender,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
