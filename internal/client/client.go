// Package client provides a typed HTTP client for the lounge API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/api/httpapi"
	"github.com/SEUB66/sofartist-lounge/internal/app/presence"
	"github.com/SEUB66/sofartist-lounge/internal/domain/media"
	"github.com/SEUB66/sofartist-lounge/internal/domain/message"
	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
	"github.com/SEUB66/sofartist-lounge/internal/infra/objstore"
)

// Client talks to a lounge server.
type Client struct {
	baseURL    string
	token      string
	adminToken string
	httpClient *http.Client
}

// New creates a client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken sets the session token sent with authenticated requests.
func (c *Client) SetToken(token string) { c.token = token }

// SetAdminToken sets the admin token sent with admin requests.
func (c *Client) SetAdminToken(token string) { c.adminToken = token }

// apiError is the error body every failed call carries.
type apiError struct {
	Error string `json:"error"`
}

// do performs a JSON round trip and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(httpapi.SessionTokenHeader, c.token)
	}
	if c.adminToken != "" {
		req.Header.Set(httpapi.AdminTokenHeader, c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil && ae.Error != "" {
			return errors.Newf("server returned %d: %s", resp.StatusCode, ae.Error)
		}
		return errors.Newf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Nickname string `json:"nickname"`
		IsAdmin  bool   `json:"is_admin"`
	} `json:"user"`
}

// Login authenticates a nickname and stores the returned token on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, nickname, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"nickname": nickname, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Logout deletes the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Heartbeat marks the caller as still online.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/heartbeat", nil, nil)
}

// OnlineUsers lists who is currently in the lounge.
func (c *Client) OnlineUsers(ctx context.Context) ([]presence.Entry, error) {
	var resp struct {
		Users []presence.Entry `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/online", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// PostMessage sends a chat message.
func (c *Client) PostMessage(ctx context.Context, body string) (*message.Message, error) {
	var msg message.Message
	if err := c.do(ctx, http.MethodPost, "/api/messages",
		map[string]string{"body": body}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MessagesAfter fetches messages newer than the given id.
func (c *Client) MessagesAfter(ctx context.Context, after int64, limit int) ([]message.Message, error) {
	path := fmt.Sprintf("/api/messages?after=%d", after)
	if limit > 0 {
		path += fmt.Sprintf("&limit=%d", limit)
	}
	var resp struct {
		Messages []message.Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// ShareMedia adds a link to the shared library.
func (c *Client) ShareMedia(ctx context.Context, url, title, kind string) (*media.Item, error) {
	var item media.Item
	if err := c.do(ctx, http.MethodPost, "/api/media",
		map[string]string{"url": url, "title": title, "kind": kind}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMedia lists shared links, optionally filtered by kind.
func (c *Client) ListMedia(ctx context.Context, kind string) ([]media.Item, error) {
	path := "/api/media"
	if kind != "" {
		path += "?kind=" + kind
	}
	var resp struct {
		Media []media.Item `json:"media"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// PresignUpload asks the server to broker a file upload.
func (c *Client) PresignUpload(ctx context.Context, filename, contentType string) (*objstore.Upload, error) {
	var upload objstore.Upload
	if err := c.do(ctx, http.MethodPost, "/api/uploads",
		map[string]string{"filename": filename, "content_type": contentType}, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// PlaybackState fetches the shared playback state.
func (c *Client) PlaybackState(ctx context.Context) (playback.State, error) {
	var state playback.State
	if err := c.do(ctx, http.MethodGet, "/api/playback", nil, &state); err != nil {
		return playback.State{}, err
	}
	return state, nil
}

// SetTrack switches the shared track; nil clears it.
func (c *Client) SetTrack(ctx context.Context, trackID *int64) error {
	return c.do(ctx, http.MethodPost, "/api/playback/track",
		map[string]*int64{"track_id": trackID}, nil)
}

// SetPlaying flips the shared play/pause flag.
func (c *Client) SetPlaying(ctx context.Context, isPlaying bool) error {
	return c.do(ctx, http.MethodPost, "/api/playback/playing",
		map[string]bool{"is_playing": isPlaying}, nil)
}

// SetPosition moves the shared playhead.
func (c *Client) SetPosition(ctx context.Context, seconds float64) error {
	return c.do(ctx, http.MethodPost, "/api/playback/position",
		map[string]float64{"position_seconds": seconds}, nil)
}

// AdminDeleteMessage removes any chat message.
func (c *Client) AdminDeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/messages/%d", id), nil, nil)
}

// AdminDeleteMedia removes any shared link.
func (c *Client) AdminDeleteMedia(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/media/%d", id), nil, nil)
}

// AdminResetPlayback puts the shared playback state back to defaults.
func (c *Client) AdminResetPlayback(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/playback/reset", nil, nil)
}

// AdminUser is the admin view of a registered user.
type AdminUser struct {
	ID          int64  `json:"id"`
	Nickname    string `json:"nickname"`
	IsAdmin     bool   `json:"is_admin"`
	HasPassword bool   `json:"has_password"`
	CreatedAt   string `json:"created_at"`
	LastSeenAt  string `json:"last_seen_at,omitempty"`
}

// AdminListUsers lists every registered user.
func (c *Client) AdminListUsers(ctx context.Context) ([]AdminUser, error) {
	var resp struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
