package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionPrefix marks client-generated session tokens.
const SessionPrefix = "sess-"

const sessionTokenLength = 8

// Session captures the lifetime of one chat client. The server keeps the
// authoritative preference state keyed by ID.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSession generates a fresh random session token.
func NewSession() Session {
	return Session{
		ID:        NewSessionID(),
		CreatedAt: time.Now().UTC(),
	}
}

// NewSessionID returns "sess-" followed by eight lowercase alphanumeric characters.
func NewSessionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return SessionPrefix + raw[:sessionTokenLength]
}
