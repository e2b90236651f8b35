package panel

import (
	"context"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/moodify-app/moodify/internal/model/chat"
)

// Placeholder is shown for every field the server has not filled.
const Placeholder = "—"

// Fetcher loads the authoritative preference record of a session.
type Fetcher interface {
	Preferences(ctx context.Context, sessionID string) (chat.Preferences, error)
}

// View is the displayed state of the preferences panel.
type View struct {
	Genre        string
	Mood         string
	Tempo        string
	ArtistOrSong string
}

// Empty is a panel showing only placeholders.
func Empty() View {
	return View{Genre: Placeholder, Mood: Placeholder, Tempo: Placeholder, ArtistOrSong: Placeholder}
}

// Render applies the display transform to a preference record.
func Render(p chat.Preferences) View {
	return View{
		Genre:        display(p.Genre),
		Mood:         display(p.Mood),
		Tempo:        display(p.Tempo),
		ArtistOrSong: display(p.ArtistOrSong),
	}
}

func display(v *string) string {
	if v == nil || *v == "" {
		return Placeholder
	}
	return Capitalize(*v)
}

// Capitalize upper-cases the first rune only.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Panel mirrors the server's preference record; it is never written from
// locally extracted preferences.
type Panel struct {
	fetcher Fetcher
	session chat.Session
	log     logrus.FieldLogger

	mu       sync.Mutex
	view     View
	onChange []func(View)
}

// New returns a panel showing placeholders.
func New(fetcher Fetcher, session chat.Session, log logrus.FieldLogger) *Panel {
	return &Panel{
		fetcher: fetcher,
		session: session,
		log:     log,
		view:    Empty(),
	}
}

// OnChange registers a callback run after each update.
func (p *Panel) OnChange(fn func(View)) {
	p.mu.Lock()
	p.onChange = append(p.onChange, fn)
	p.mu.Unlock()
}

// Refresh re-fetches the record. On failure every field drops to the placeholder.
func (p *Panel) Refresh(ctx context.Context) (View, error) {
	prefs, err := p.fetcher.Preferences(ctx, p.session.ID)
	if err != nil {
		p.log.WithError(err).WithField("session", p.session.ID).Warn("[panel] preference sync failed")
		p.set(Empty())
		return Empty(), err
	}

	view := Render(prefs)
	p.set(view)
	return view, nil
}

// Clear shows placeholders without contacting the server.
func (p *Panel) Clear() {
	p.set(Empty())
}

// Snapshot returns the displayed values.
func (p *Panel) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

func (p *Panel) set(view View) {
	p.mu.Lock()
	p.view = view
	callbacks := make([]func(View), len(p.onChange))
	copy(callbacks, p.onChange)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(view)
	}
}
