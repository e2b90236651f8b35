package utils

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// RespondJSON writes payload as a JSON body with the given status. Encode
// failures go to log, since the status line is already sent.
func RespondJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).WithField("status", status).Warn("failed to encode response")
	}
}

// RespondError writes {"error": message}.
func RespondError(w http.ResponseWriter, log logrus.FieldLogger, status int, message string) {
	RespondJSON(w, log, status, map[string]string{"error": message})
}
