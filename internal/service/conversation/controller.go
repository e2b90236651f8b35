package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moodify-app/moodify/internal/analysis/preference"
	"github.com/moodify-app/moodify/internal/client/moodify"
	"github.com/moodify-app/moodify/internal/model/chat"
	"github.com/moodify-app/moodify/internal/service/panel"
	"github.com/moodify-app/moodify/internal/service/transcript"
)

const (
	Greeting = "🟢 Hey! I'm Moodify 🎧, your AI-powered music buddy. " +
		"Tell me how you're feeling or what kind of vibe you're into."

	FallbackRecommend = "🚨 Error talking to Moodify. Try again."
	FallbackCommand   = "🚨 Command failed. Please try again."
	FallbackReset     = "🚨 Reset failed. Please try again."
)

// ErrNoSuchOption is returned by SelectOption for an index outside the
// currently offered quick replies.
var ErrNoSuchOption = errors.New("no such quick-reply option")

// API is the subset of the remote service the controller drives.
type API interface {
	Recommend(ctx context.Context, sessionID string, prefs chat.Preferences) (moodify.Reply, error)
	Command(ctx context.Context, sessionID, command string) (moodify.Reply, error)
	Reset(ctx context.Context, sessionID string) (moodify.Reply, error)
}

// Extractor derives a preference record from free text.
type Extractor interface {
	Extract(text string) chat.Preferences
}

// PanelSync keeps the preferences panel aligned with the server.
type PanelSync interface {
	Refresh(ctx context.Context) (panel.View, error)
	Clear()
}

// WaitFunc blocks for d unless ctx ends first.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Option customises a Controller.
type Option func(*Controller)

// WithTypingDelay overrides the per-word delay and its cap.
func WithTypingDelay(perWord, max time.Duration) Option {
	return func(c *Controller) {
		c.perWord = perWord
		c.maxDelay = max
	}
}

// WithWait replaces the timer used for the typing delay.
func WithWait(fn WaitFunc) Option {
	return func(c *Controller) {
		c.wait = fn
	}
}

// Controller runs the conversation turns of one session. Overlapping turns are
// allowed: user lines land in call order, bot replies in arrival order.
type Controller struct {
	session    chat.Session
	api        API
	extractor  Extractor
	transcript *transcript.Transcript
	panel      PanelSync
	log        logrus.FieldLogger

	perWord  time.Duration
	maxDelay time.Duration
	wait     WaitFunc

	mu        sync.Mutex
	input     string
	options   []string
	onOptions []func([]string)
}

// New assembles a controller for session.
func New(session chat.Session, api API, extractor Extractor, tr *transcript.Transcript, p PanelSync, log logrus.FieldLogger, opts ...Option) *Controller {
	c := &Controller{
		session:    session,
		api:        api,
		extractor:  extractor,
		transcript: tr,
		panel:      p,
		log:        log.WithField("session", session.ID),
		perWord:    transcript.DefaultPerWord,
		maxDelay:   transcript.DefaultMaxDelay,
		wait:       transcript.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the controller is bound to.
func (c *Controller) Session() chat.Session {
	return c.session
}

// Start greets the user and performs the first panel sync.
func (c *Controller) Start(ctx context.Context) {
	c.transcript.AppendBot(Greeting, nil)
	c.refreshPanel(ctx)
}

// SetInput replaces the pending input text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.mu.Unlock()
}

// Input returns the pending input text.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Send submits the pending input.
func (c *Controller) Send(ctx context.Context) error {
	return c.Submit(ctx, c.Input())
}

// Options returns the quick replies offered by the latest reply.
func (c *Controller) Options() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.options...)
}

// OnOptions registers a callback run whenever the quick replies change.
func (c *Controller) OnOptions(fn func([]string)) {
	c.mu.Lock()
	c.onOptions = append(c.onOptions, fn)
	c.mu.Unlock()
}

// SelectOption behaves like typing option i and pressing send.
func (c *Controller) SelectOption(ctx context.Context, i int) error {
	options := c.Options()
	if i < 0 || i >= len(options) {
		return ErrNoSuchOption
	}
	c.SetInput(options[i])
	return c.Send(ctx)
}

// Submit runs one turn. Blank input is ignored without any network call.
// Remote failures become a fallback bot line and are not returned; the only
// error is ctx ending while the reply is being "typed". Every non-blank turn
// ends with a panel refresh.
func (c *Controller) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.transcript.AppendUser(text)
	c.SetInput("")

	kind := preference.Classify(text)
	typing := c.transcript.BeginTyping(ctx)
	defer typing.Stop()

	reply, err := c.dispatch(ctx, kind, text)

	botText, track, options := c.fallback(kind), (*chat.Track)(nil), []string(nil)
	if err != nil {
		c.log.WithError(err).WithField("kind", kind.String()).Warn("[conversation] remote call failed")
	} else {
		botText, _ = reply.Text()
		track = reply.Track()
		options = reply.QuickReplies()
	}

	delay := transcript.TypingDelay(botText, c.perWord, c.maxDelay)
	if err := c.wait(typing.Context(), delay); err != nil {
		// the turn still ends with a sync; on a dead ctx it drops the panel to placeholders
		c.refreshPanel(ctx)
		return err
	}
	typing.Stop()

	c.transcript.AppendBot(botText, track)
	if err == nil {
		c.setOptions(options)
	}

	c.refreshPanel(ctx)
	return nil
}

// Reset clears the server-side session. Only a successful reset touches the
// transcript, options and panel.
func (c *Controller) Reset(ctx context.Context) {
	reply, err := c.api.Reset(ctx, c.session.ID)
	if err != nil {
		c.log.WithError(err).Warn("[conversation] reset failed")
		c.transcript.AppendBot(FallbackReset, nil)
		return
	}

	text, _ := reply.Text()
	c.transcript.Clear()
	c.setOptions(nil)
	c.panel.Clear()
	c.transcript.AppendBot(text, nil)
}

func (c *Controller) dispatch(ctx context.Context, kind preference.Kind, text string) (moodify.Reply, error) {
	if kind == preference.KindCommand {
		return c.api.Command(ctx, c.session.ID, text)
	}

	prefs := c.extractor.Extract(text)
	c.log.WithFields(logrus.Fields{
		"genre":          chat.Value(prefs.Genre),
		"mood":           chat.Value(prefs.Mood),
		"tempo":          chat.Value(prefs.Tempo),
		"artist_or_song": chat.Value(prefs.ArtistOrSong),
	}).Debug("[conversation] extracted preferences")
	return c.api.Recommend(ctx, c.session.ID, prefs)
}

func (c *Controller) fallback(kind preference.Kind) string {
	if kind == preference.KindCommand {
		return FallbackCommand
	}
	return FallbackRecommend
}

func (c *Controller) setOptions(options []string) {
	c.mu.Lock()
	c.options = append([]string(nil), options...)
	callbacks := make([]func([]string), len(c.onOptions))
	copy(callbacks, c.onOptions)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(append([]string(nil), options...))
	}
}

func (c *Controller) refreshPanel(ctx context.Context) {
	// Failures are already logged by the panel, which falls back to placeholders.
	_, _ = c.panel.Refresh(ctx)
}
