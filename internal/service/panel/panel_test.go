package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/moodify-app/moodify/internal/logging"
	"github.com/moodify-app/moodify/internal/model/chat"
)

type stubFetcher struct {
	prefs chat.Preferences
	err   error
	calls []string
}

func (s *stubFetcher) Preferences(_ context.Context, sessionID string) (chat.Preferences, error) {
	s.calls = append(s.calls, sessionID)
	return s.prefs, s.err
}

func TestRefreshCapitalizesAndFillsPlaceholders(t *testing.T) {
	fetcher := &stubFetcher{prefs: chat.Preferences{
		Genre:        chat.StringPtr("hip-hop"),
		Tempo:        chat.StringPtr("fast"),
		ArtistOrSong: chat.StringPtr("élodie"),
	}}
	p := New(fetcher, chat.Session{ID: "sess-aaaabbbb"}, logging.Discard())

	var notified []View
	p.OnChange(func(v View) { notified = append(notified, v) })

	view, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh err: %v", err)
	}

	want := View{Genre: "Hip-hop", Mood: Placeholder, Tempo: "Fast", ArtistOrSong: "Élodie"}
	if view != want {
		t.Fatalf("unexpected view: got %+v want %+v", view, want)
	}
	if p.Snapshot() != want {
		t.Fatalf("snapshot not updated: %+v", p.Snapshot())
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != "sess-aaaabbbb" {
		t.Fatalf("unexpected fetch calls: %v", fetcher.calls)
	}
	if len(notified) != 1 {
		t.Fatalf("expected one change notification, got %d", len(notified))
	}
}

func TestRefreshFailureResetsToPlaceholders(t *testing.T) {
	fetcher := &stubFetcher{prefs: chat.Preferences{Mood: chat.StringPtr("sad")}}
	p := New(fetcher, chat.Session{ID: "sess-1"}, logging.Discard())

	if _, err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh err: %v", err)
	}
	if p.Snapshot().Mood != "Sad" {
		t.Fatalf("unexpected mood: %s", p.Snapshot().Mood)
	}

	fetcher.err = errors.New("boom")
	if _, err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if p.Snapshot() != Empty() {
		t.Fatalf("stale data kept after failure: %+v", p.Snapshot())
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{"": "", "pop": "Pop", "Rock": "Rock", "edm music": "Edm music"}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOnChangeNotifiesEveryCallbackRegisteredSoFar(t *testing.T) {
	p := New(&stubFetcher{prefs: chat.Preferences{Genre: chat.StringPtr("pop")}}, chat.Session{ID: "sess-1"}, logging.Discard())

	var first, second []View
	p.OnChange(func(v View) {
		first = append(first, v)
		// registering from inside a callback must not affect the running notification
		p.OnChange(func(v View) { second = append(second, v) })
	})

	if _, err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh err: %v", err)
	}
	if len(first) != 1 || first[0].Genre != "Pop" {
		t.Fatalf("unexpected first notifications: %+v", first)
	}
	if len(second) != 0 {
		t.Fatalf("late callback ran during the same update: %+v", second)
	}

	p.Clear()
	if len(first) != 2 || len(second) != 1 || second[0] != Empty() {
		t.Fatalf("unexpected notifications after Clear: first=%d second=%+v", len(first), second)
	}
}
