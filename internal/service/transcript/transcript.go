package transcript

import (
	"sync"
	"time"

	"github.com/moodify-app/moodify/internal/model/chat"
)

// Observer is notified synchronously of every transcript change, in order.
type Observer interface {
	MessageAppended(msg chat.Message)
	TypingChanged(visible bool)
	Cleared()
}

// Transcript is the append-only conversation log plus the transient typing
// placeholder. It is safe for concurrent use.
type Transcript struct {
	mu        sync.Mutex
	messages  []chat.Message
	typing    bool
	active    int
	observers []Observer
	now       func() time.Time
}

// New returns an empty transcript.
func New(observers ...Observer) *Transcript {
	return &Transcript{
		messages:  make([]chat.Message, 0, 32),
		observers: observers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe registers another observer.
func (t *Transcript) Subscribe(o Observer) {
	t.mu.Lock()
	t.observers = append(t.observers, o)
	t.mu.Unlock()
}

// AppendUser adds a user line.
func (t *Transcript) AppendUser(text string) chat.Message {
	return t.append(chat.Message{Sender: chat.SenderUser, Text: text})
}

// AppendBot adds a bot line with an optional track card.
func (t *Transcript) AppendBot(text string, track *chat.Track) chat.Message {
	return t.append(chat.Message{Sender: chat.SenderBot, Text: text, Track: track})
}

func (t *Transcript) append(msg chat.Message) chat.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg.CreatedAt = t.now()
	t.messages = append(t.messages, msg)
	for _, o := range t.observers {
		o.MessageAppended(msg)
	}
	return msg
}

// ShowTyping inserts the placeholder unless one is already visible.
func (t *Transcript) ShowTyping() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setTypingLocked(true)
}

// HideTyping removes the placeholder; no-op when none is shown.
func (t *Transcript) HideTyping() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setTypingLocked(false)
}

func (t *Transcript) setTypingLocked(visible bool) {
	if t.typing == visible {
		return
	}
	t.typing = visible
	for _, o := range t.observers {
		o.TypingChanged(visible)
	}
}

// Typing reports whether the placeholder is visible.
func (t *Transcript) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}

// Clear drops every message and the placeholder.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = t.messages[:0]
	t.typing = false
	for _, o := range t.observers {
		o.Cleared()
	}
}

// Messages returns a copy of the log.
func (t *Transcript) Messages() []chat.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	copied := make([]chat.Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
