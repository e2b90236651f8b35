package songs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/moodify-app/moodify/internal/logging"
	"github.com/moodify-app/moodify/internal/service/catalog"
)

type failingSource struct{}

func (failingSource) Songs(context.Context) ([]catalog.Row, error) {
	return nil, errors.New("disk on fire")
}

func setupRouter(source Source) *chi.Mux {
	r := chi.NewRouter()
	New(source, logging.Discard()).RegisterRoutes(r)
	return r
}

func TestListSongs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music_data.csv")
	if err := os.WriteFile(path, []byte("track_name,mood\nYellow,calm\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r := setupRouter(catalog.NewService(path))

	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `[{"track_name":"Yellow","mood":"calm"}]` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestListSongsReadFailure(t *testing.T) {
	r := setupRouter(failingSource{})

	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `{"error":"Failed to read CSV file"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
