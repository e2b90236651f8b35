package moodify

import (
	"strings"

	"github.com/moodify-app/moodify/internal/model/chat"
)

// RecommendRequest is the /recommend body. Absent preferences are sent as null.
type RecommendRequest struct {
	SessionID string `json:"session_id"`
	chat.Preferences
}

// CommandRequest is the /command body; /reset reuses it.
type CommandRequest struct {
	SessionID string `json:"session_id"`
	Command   string `json:"command"`
}

// Reply is the loosely shaped answer of /recommend, /command and /reset.
type Reply struct {
	Response   *string  `json:"response,omitempty"`
	Message    *string  `json:"message,omitempty"`
	Options    []string `json:"options,omitempty"`
	SpotifyURL *string  `json:"spotify_url,omitempty"`
	PreviewURL *string  `json:"preview_url,omitempty"`
	CoverArt   *string  `json:"cover_art,omitempty"`
	Song       *string  `json:"song,omitempty"`
	Artist     *string  `json:"artist,omitempty"`
}

// Text prefers "response" over "message". ok is false when neither carries text.
func (r Reply) Text() (text string, ok bool) {
	if s := strings.TrimSpace(chat.Value(r.Response)); s != "" {
		return chat.Value(r.Response), true
	}
	if s := strings.TrimSpace(chat.Value(r.Message)); s != "" {
		return chat.Value(r.Message), true
	}
	return "", false
}

// Track collects the media fields, or nil when the reply has none.
func (r Reply) Track() *chat.Track {
	track := chat.Track{
		Song:       chat.Value(r.Song),
		Artist:     chat.Value(r.Artist),
		SpotifyURL: chat.Value(r.SpotifyURL),
		PreviewURL: chat.Value(r.PreviewURL),
		CoverArt:   chat.Value(r.CoverArt),
	}
	if track.Empty() {
		return nil
	}
	return &track
}

// QuickReplies drops blank options.
func (r Reply) QuickReplies() []string {
	out := make([]string, 0, len(r.Options))
	for _, opt := range r.Options {
		if strings.TrimSpace(opt) != "" {
			out = append(out, opt)
		}
	}
	return out
}
