package preference

import "strings"

// Kind tells whether an utterance is a control instruction or a preference update.
type Kind int

const (
	KindPreference Kind = iota
	KindCommand
)

func (k Kind) String() string {
	if k == KindCommand {
		return "command"
	}
	return "preference"
}

var commandKeywords = []string{"another", "change"}

// Classify treats any utterance mentioning "another" or "change" as a command.
func Classify(text string) Kind {
	normalized := strings.ToLower(text)
	for _, word := range commandKeywords {
		if strings.Contains(normalized, word) {
			return KindCommand
		}
	}
	return KindPreference
}
