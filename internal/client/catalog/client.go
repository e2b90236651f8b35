package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Song is one catalog row as served by GET /api/songs.
type Song map[string]string

// Client reads the song catalog from the auxiliary backend.
type Client struct {
	http *resty.Client
}

// New builds a catalog client. A zero timeout keeps the transport default.
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{http: client}
}

// ListSongs fetches every row of the catalog.
func (c *Client) ListSongs(ctx context.Context) ([]Song, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/songs")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch songs: %w", err)
	}

	if !resp.IsSuccess() {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body(), &payload)
		if payload.Error == "" {
			payload.Error = resp.Status()
		}
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), payload.Error)
	}

	var songs []Song
	if err := json.Unmarshal(resp.Body(), &songs); err != nil {
		return nil, fmt.Errorf("failed to parse songs response: %w", err)
	}
	return songs, nil
}
