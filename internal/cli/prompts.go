package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const typeOwnLabel = "✍️  Type something else…"

// ErrQuit ends the interactive session.
var ErrQuit = errors.New("quit")

// Choice is one user action at the prompt. Option is the quick-reply index,
// or -1 when Text was typed.
type Choice struct {
	Text   string
	Option int
}

// Prompter reads the next user action.
type Prompter interface {
	Next(options []string) (Choice, error)
}

// SurveyPrompter asks through survey: a Select when quick replies exist,
// otherwise a free-text Input.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter forwards opts to every survey.AskOne call.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// Next implements Prompter.
func (p *SurveyPrompter) Next(options []string) (Choice, error) {
	if len(options) > 0 {
		choices := append(append([]string(nil), options...), typeOwnLabel)
		var idx int
		prompt := &survey.Select{
			Message: "Pick a quick reply:",
			Options: choices,
		}
		if err := survey.AskOne(prompt, &idx, p.opts...); err != nil {
			return Choice{}, translate(err)
		}
		if idx < len(options) {
			return Choice{Text: options[idx], Option: idx}, nil
		}
	}

	var text string
	prompt := &survey.Input{
		Message: "You:",
		Help:    "Describe a genre, mood, tempo or artist. /reset starts over, /quit leaves.",
	}
	if err := survey.AskOne(prompt, &text, p.opts...); err != nil {
		return Choice{}, translate(err)
	}
	return Choice{Text: text, Option: -1}, nil
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrQuit
	}
	return err
}
