package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/moodify-app/moodify/internal/client/catalog"
	"github.com/moodify-app/moodify/internal/model/chat"
	"github.com/moodify-app/moodify/internal/service/panel"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	botTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399"))

	typingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280"))

	trackStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1DB954")).
			Padding(0, 1).
			MarginLeft(2)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A78BFA")).
			Width(16)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

const (
	typingLine = "Moodify is typing…"
	clearLine  = "\r\033[K"
	clearTerm  = "\033[2J\033[H"
)

// View renders transcript, panel and quick replies to a terminal. It
// implements transcript.Observer.
type View struct {
	mu     sync.Mutex
	out    io.Writer
	typing bool
	ansi   bool
}

// NewView writes to out. ansi enables cursor control sequences.
func NewView(out io.Writer, ansi bool) *View {
	return &View{out: out, ansi: ansi}
}

// Banner prints the title line.
func (v *View) Banner(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, titleStyle.Render("🎧 Moodify")+typingStyle.Render(" session "+sessionID))
	fmt.Fprintln(v.out, typingStyle.Render("Type /reset to start over, /quit to leave."))
}

// MessageAppended prints one transcript line.
func (v *View) MessageAppended(msg chat.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.eraseTypingLocked()
	fmt.Fprintln(v.out, FormatMessage(msg))
	if msg.Track != nil {
		fmt.Fprintln(v.out, FormatTrack(*msg.Track))
	}
	v.drawTypingLocked()
}

// TypingChanged shows or removes the placeholder line.
func (v *View) TypingChanged(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if visible {
		v.typing = true
		v.drawTypingLocked()
		return
	}
	v.eraseTypingLocked()
	v.typing = false
}

// Cleared wipes the screen.
func (v *View) Cleared() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.typing = false
	if v.ansi {
		fmt.Fprint(v.out, clearTerm)
		return
	}
	fmt.Fprintln(v.out, typingStyle.Render("──── conversation reset ────"))
}

// Panel prints the preferences panel.
func (v *View) Panel(p panel.View) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.eraseTypingLocked()
	fmt.Fprintln(v.out, FormatPanel(p))
	v.drawTypingLocked()
}

// Options prints the quick replies, if any.
func (v *View) Options(options []string) {
	if len(options) == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.eraseTypingLocked()
	fmt.Fprintln(v.out, FormatOptions(options))
	v.drawTypingLocked()
}

// Songs prints catalog rows.
func (v *View) Songs(songs []catalog.Song) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, song := range songs {
		fmt.Fprintln(v.out, FormatSong(song))
	}
}

func (v *View) drawTypingLocked() {
	if !v.typing {
		return
	}
	if v.ansi {
		fmt.Fprint(v.out, typingStyle.Render(typingLine))
		return
	}
	fmt.Fprintln(v.out, typingStyle.Render(typingLine))
}

func (v *View) eraseTypingLocked() {
	if v.typing && v.ansi {
		fmt.Fprint(v.out, clearLine)
	}
}

// FormatMessage renders a transcript line with its speaker label.
func FormatMessage(msg chat.Message) string {
	if msg.Sender == chat.SenderUser {
		return userStyle.Render("You:") + " " + msg.Text
	}
	return botStyle.Render("Moodify:") + " " + botTextStyle.Render(PlainText(msg.Text))
}

// FormatTrack renders the recommendation card.
func FormatTrack(t chat.Track) string {
	var b strings.Builder
	title := strings.TrimSpace(t.Song)
	if t.Artist != "" {
		title = strings.TrimSpace(title + " · " + t.Artist)
	}
	b.WriteString("🎵 " + title)
	for _, link := range []struct{ label, url string }{
		{"Spotify", t.SpotifyURL},
		{"Preview", t.PreviewURL},
		{"Cover", t.CoverArt},
	} {
		if link.url != "" {
			b.WriteString("\n" + link.label + ": " + link.url)
		}
	}
	return trackStyle.Render(b.String())
}

// FormatPanel renders the four preference fields.
func FormatPanel(p panel.View) string {
	rows := []string{
		labelStyle.Render("Genre") + p.Genre,
		labelStyle.Render("Mood") + p.Mood,
		labelStyle.Render("Tempo") + p.Tempo,
		labelStyle.Render("Artist / Song") + p.ArtistOrSong,
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

// FormatOptions renders numbered quick replies on one line.
func FormatOptions(options []string) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		parts[i] = optionStyle.Render(fmt.Sprintf("[%d] %s", i+1, opt))
	}
	return strings.Join(parts, "  ")
}

// FormatSong prefers the Spotify dataset columns and falls back to key=value pairs.
func FormatSong(song catalog.Song) string {
	name, artist := song["track_name"], song["track_artist"]
	if name != "" {
		line := name
		if artist != "" {
			line += " · " + artist
		}
		if genre := song["playlist_genre"]; genre != "" {
			line += " " + typingStyle.Render("("+genre+")")
		}
		return line
	}

	keys := make([]string, 0, len(song))
	for k := range song {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + song[k]
	}
	return strings.Join(pairs, " ")
}
