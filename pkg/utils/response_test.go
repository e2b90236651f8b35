package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRespondError(t *testing.T) {
	log, _ := test.NewNullLogger()
	rec := httptest.NewRecorder()
	RespondError(rec, log, http.StatusInternalServerError, "Failed to read CSV file")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Failed to read CSV file"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRespondJSONLogsEncodeFailureToGivenLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := httptest.NewRecorder()

	RespondJSON(rec, log, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a warning on the injected logger")
	}
	if entry.Level != logrus.WarnLevel || entry.Message != "failed to encode response" {
		t.Fatalf("unexpected log entry: %s %q", entry.Level, entry.Message)
	}
	if entry.Data["status"] != http.StatusOK {
		t.Fatalf("unexpected status field: %v", entry.Data["status"])
	}
}
