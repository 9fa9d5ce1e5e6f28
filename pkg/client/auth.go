package client

import (
	"context"
	"net/http"
)

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, email, username, name, password string) (*Session, error) {
	body := map[string]string{"email": email, "username": username, "name": name, "password": password}
	s, err := do[Session](ctx, c, http.MethodPost, "/api/auth/register", nil, body)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.AccessToken)
	return &s, nil
}

// Login authenticates with email and password and stores the access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	s, err := do[Session](ctx, c, http.MethodPost, "/api/auth/login", nil,
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	c.SetToken(s.AccessToken)
	return &s, nil
}

// Refresh rotates the refresh token and stores the new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	s, err := do[Session](ctx, c, http.MethodPost, "/api/auth/refresh", nil,
		map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, err
	}
	c.SetToken(s.AccessToken)
	return &s, nil
}

// Logout revokes every session of the user and drops the cached queries.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := do[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	c.cache.InvalidatePrefix(nil)
	return nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	u, err := do[User](ctx, c, http.MethodGet, "/api/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
