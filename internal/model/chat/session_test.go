package chat

import (
	"regexp"
	"testing"
)

var sessionPattern = regexp.MustCompile(`^sess-[a-z0-9]{8}$`)

func TestNewSessionIDFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := NewSessionID()
		if !sessionPattern.MatchString(id) {
			t.Fatalf("unexpected session id format: %q", id)
		}
	}
}

func TestNewSessionIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		s := NewSession()
		if s.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be set")
		}
		if _, dup := seen[s.ID]; dup {
			t.Fatalf("duplicate session id %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
}

func TestPreferencesIsEmpty(t *testing.T) {
	if !(Preferences{}).IsEmpty() {
		t.Fatal("zero preferences should be empty")
	}
	if (Preferences{Mood: StringPtr("calm")}).IsEmpty() {
		t.Fatal("preferences with mood should not be empty")
	}
	if StringPtr("") != nil {
		t.Fatal("StringPtr(\"\") should be nil")
	}
}
