package transcript

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodify-app/moodify/internal/model/chat"
)

type recorder struct {
	events []string
}

func (r *recorder) MessageAppended(msg chat.Message) { r.events = append(r.events, string(msg.Sender)+":"+msg.Text) }
func (r *recorder) TypingChanged(visible bool) {
	if visible {
		r.events = append(r.events, "typing:on")
		return
	}
	r.events = append(r.events, "typing:off")
}
func (r *recorder) Cleared() { r.events = append(r.events, "cleared") }

func TestAppendAndClear(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)

	tr.AppendUser("happy pop")
	tr.AppendBot("Try Levitating", &chat.Track{Song: "Levitating"})

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("unexpected length: got %d want 2", len(msgs))
	}
	if msgs[0].Sender != chat.SenderUser || msgs[1].Sender != chat.SenderBot {
		t.Fatalf("unexpected senders: %s, %s", msgs[0].Sender, msgs[1].Sender)
	}
	if msgs[1].Track == nil || msgs[1].Track.Song != "Levitating" {
		t.Fatalf("track not kept: %+v", msgs[1].Track)
	}
	if msgs[0].CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be stamped")
	}

	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("expected empty transcript after clear, got %d", tr.Len())
	}

	want := []string{"user:happy pop", "bot:Try Levitating", "cleared"}
	assertEvents(t, rec.events, want)
}

func TestTypingIsIdempotent(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)

	tr.HideTyping()
	tr.ShowTyping()
	tr.ShowTyping()
	if !tr.Typing() {
		t.Fatal("expected typing placeholder")
	}
	tr.HideTyping()
	tr.HideTyping()

	assertEvents(t, rec.events, []string{"typing:on", "typing:off"})
}

func TestOverlappingTypingTasks(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	ctx := context.Background()

	first := tr.BeginTyping(ctx)
	second := tr.BeginTyping(ctx)

	first.Stop()
	if !tr.Typing() {
		t.Fatal("placeholder removed while a second turn is still pending")
	}
	first.Stop()
	if !tr.Typing() {
		t.Fatal("double Stop must not release the other task")
	}
	second.Stop()
	if tr.Typing() {
		t.Fatal("placeholder should be gone after the last task stops")
	}
	if first.Context().Err() == nil {
		t.Fatal("stopped task context should be canceled")
	}

	assertEvents(t, rec.events, []string{"typing:on", "typing:off"})
}

func TestTypingDelay(t *testing.T) {
	cases := []struct {
		words int
		want  time.Duration
	}{
		{words: 0, want: 0},
		{words: 1, want: 120 * time.Millisecond},
		{words: 10, want: 1200 * time.Millisecond},
		{words: 25, want: 3000 * time.Millisecond},
		{words: 30, want: 3000 * time.Millisecond},
	}
	for _, tc := range cases {
		text := ""
		for i := 0; i < tc.words; i++ {
			text += "word "
		}
		if got := TypingDelay(text, DefaultPerWord, DefaultMaxDelay); got != tc.want {
			t.Fatalf("TypingDelay(%d words) = %s, want %s", tc.words, got, tc.want)
		}
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep err: %v", err)
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected events: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected events: got %v want %v", got, want)
		}
	}
}
