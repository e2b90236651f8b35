package preference

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moodify-app/moodify/internal/model/chat"
)

// Policy selects how the artist-or-song field is derived from an utterance.
type Policy string

const (
	// PolicyKeywords takes the text after the last standalone lower-case "by".
	PolicyKeywords Policy = "keywords"
	// PolicyPassthrough forwards the whole utterance as artist-or-song.
	PolicyPassthrough Policy = "passthrough"
)

// ParsePolicy maps a configuration value onto a Policy.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyKeywords:
		return PolicyKeywords, nil
	case PolicyPassthrough:
		return PolicyPassthrough, nil
	default:
		return "", fmt.Errorf("unknown extraction policy %q", raw)
	}
}

var (
	genrePattern = regexp.MustCompile(`(?i)pop|rock|hip[- ]?hop|edm|latin`)
	moodPattern  = regexp.MustCompile(`(?i)happy|calm|energetic|sad`)
	tempoPattern = regexp.MustCompile(`(?i)slow|medium|fast`)
	byPattern    = regexp.MustCompile(`\bby\b`)
)

// Extractor turns free text into a preference record.
type Extractor struct {
	policy Policy
}

// NewExtractor returns an extractor bound to policy. Unknown values fall back
// to PolicyKeywords.
func NewExtractor(policy Policy) *Extractor {
	if policy != PolicyPassthrough {
		policy = PolicyKeywords
	}
	return &Extractor{policy: policy}
}

// Policy reports the active artist-or-song policy.
func (e *Extractor) Policy() Policy {
	return e.policy
}

// Extract never fails: unmatched fields stay nil and an all-nil record is valid.
func (e *Extractor) Extract(text string) chat.Preferences {
	prefs := chat.Preferences{
		Genre: chat.StringPtr(normalizeGenre(firstMatch(genrePattern, text))),
		Mood:  chat.StringPtr(firstMatch(moodPattern, text)),
		Tempo: chat.StringPtr(firstMatch(tempoPattern, text)),
	}

	switch e.policy {
	case PolicyPassthrough:
		prefs.ArtistOrSong = chat.StringPtr(strings.TrimSpace(text))
	default:
		prefs.ArtistOrSong = chat.StringPtr(afterLastBy(text))
	}
	return prefs
}

func firstMatch(pattern *regexp.Regexp, text string) string {
	return strings.ToLower(pattern.FindString(text))
}

// normalizeGenre folds "hip hop", "hiphop" and "hip-hop" into one value.
func normalizeGenre(genre string) string {
	if strings.HasPrefix(genre, "hip") {
		return "hip-hop"
	}
	return genre
}

func afterLastBy(text string) string {
	matches := byPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return ""
	}
	last := matches[len(matches)-1]
	return strings.TrimSpace(text[last[1]:])
}
