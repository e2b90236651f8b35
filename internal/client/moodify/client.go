package moodify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/moodify-app/moodify/internal/model/chat"
)

const (
	endpointRecommend = "/recommend"
	endpointCommand   = "/command"
	endpointReset     = "/reset"
	endpointSession   = "/session/{session_id}"

	resetCommand = "reset"
)

// Client talks to the remote recommendation service. Calls are never retried.
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

// New builds a client for baseURL. A zero timeout keeps the transport default.
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{http: client, log: log}
}

// Recommend sends a preference update for the session.
func (c *Client) Recommend(ctx context.Context, sessionID string, prefs chat.Preferences) (Reply, error) {
	return c.postReply(ctx, endpointRecommend, RecommendRequest{SessionID: sessionID, Preferences: prefs})
}

// Command forwards a control instruction such as "another one".
func (c *Client) Command(ctx context.Context, sessionID, command string) (Reply, error) {
	return c.postReply(ctx, endpointCommand, CommandRequest{SessionID: sessionID, Command: command})
}

// Reset clears the server-side preferences of the session.
func (c *Client) Reset(ctx context.Context, sessionID string) (Reply, error) {
	return c.postReply(ctx, endpointReset, CommandRequest{SessionID: sessionID, Command: resetCommand})
}

// Preferences fetches the authoritative preference record of the session.
// Blank strings are reported as absent.
func (c *Client) Preferences(ctx context.Context, sessionID string) (chat.Preferences, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("session_id", sessionID).
		Get(endpointSession)
	if err != nil {
		return chat.Preferences{}, fmt.Errorf("GET /session: %w", err)
	}
	if !resp.IsSuccess() {
		return chat.Preferences{}, &StatusError{Endpoint: "GET /session", Code: resp.StatusCode(), Body: resp.String()}
	}

	var prefs chat.Preferences
	if err := json.Unmarshal(resp.Body(), &prefs); err != nil {
		return chat.Preferences{}, fmt.Errorf("GET /session: decode: %w", err)
	}

	return chat.Preferences{
		Genre:        blankToNil(prefs.Genre),
		Mood:         blankToNil(prefs.Mood),
		Tempo:        blankToNil(prefs.Tempo),
		ArtistOrSong: blankToNil(prefs.ArtistOrSong),
	}, nil
}

func (c *Client) postReply(ctx context.Context, endpoint string, body interface{}) (Reply, error) {
	name := "POST " + endpoint
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", name, err)
	}

	c.log.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode(),
		"elapsed":  resp.Time(),
	}).Debug("remote call finished")

	if !resp.IsSuccess() {
		return Reply{}, &StatusError{Endpoint: name, Code: resp.StatusCode(), Body: resp.String()}
	}

	var reply Reply
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		return Reply{}, fmt.Errorf("%s: decode: %w", name, err)
	}
	if _, ok := reply.Text(); !ok {
		return Reply{}, fmt.Errorf("%s: %w", name, ErrEmptyReply)
	}
	return reply, nil
}

func blankToNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
