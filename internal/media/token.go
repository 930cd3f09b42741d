package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RoomClient provisions live-session rooms and their join tokens.
type RoomClient interface {
	CreateRoom(ctx context.Context, name, privacy string) error
	CreateSessionToken(ctx context.Context, roomName, userName string, exp int64) (string, error)
}

// HTTPRoomClient talks to a Daily-compatible media REST API.
type HTTPRoomClient struct {
	http   *http.Client
	apiKey string
	base   string
}

// NewRoomClient creates a client for the given API key.
func NewRoomClient(apiKey string) *HTTPRoomClient {
	return &HTTPRoomClient{
		http:   &http.Client{Timeout: 15 * time.Second},
		apiKey: apiKey,
		base:   "https://api.daily.co/v1",
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *HTTPRoomClient) WithBaseURL(base string) *HTTPRoomClient {
	c.base = base
	return c
}

// CreateRoom provisions a named room.
func (c *HTTPRoomClient) CreateRoom(ctx context.Context, name, privacy string) error {
	body := map[string]any{
		"name":    name,
		"privacy": privacy,
	}
	resp, err := c.post(ctx, "/rooms", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create room: %s: %s", resp.Status, string(b))
	}
	return nil
}

// CreateSessionToken mints a join token for the given room and user.
func (c *HTTPRoomClient) CreateSessionToken(ctx context.Context, roomName, userName string, exp int64) (string, error) {
	body := map[string]any{
		"properties": map[string]any{
			"room_name": roomName,
			"user_name": userName,
			"exp":       exp,
		},
	}
	resp, err := c.post(ctx, "/meeting-tokens", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("create session token: %s: %s", resp.Status, string(b))
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("create session token: empty token")
	}
	return parsed.Token, nil
}

func (c *HTTPRoomClient) post(ctx context.Context, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}
