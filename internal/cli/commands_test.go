package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	if !strings.Contains(out.String(), "moodify "+Version) {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestSongsCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"track_name":"Yellow","track_artist":"Coldplay"},{"track_name":"Fix You","track_artist":"Coldplay"}]`)
	}))
	defer srv.Close()

	t.Setenv("MOODIFY_CATALOG_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"songs", "--limit", "1"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Yellow · Coldplay") || strings.Contains(text, "Fix You") {
		t.Fatalf("unexpected songs output:\n%s", text)
	}
	if !strings.Contains(text, "1 of 2 songs") {
		t.Fatalf("missing summary line:\n%s", text)
	}
}

func TestRootRejectsUnknownExtraction(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"songs", "--extraction", "telepathy"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for unknown extraction policy")
	}
}
