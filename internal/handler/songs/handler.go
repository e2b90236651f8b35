package songs

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/moodify-app/moodify/internal/service/catalog"
	"github.com/moodify-app/moodify/pkg/utils"
)

// Source yields the song rows to serve.
type Source interface {
	Songs(ctx context.Context) ([]catalog.Row, error)
}

// Handler exposes the CSV catalog over HTTP.
type Handler struct {
	source Source
	log    logrus.FieldLogger
}

// New creates the songs handler.
func New(source Source, log logrus.FieldLogger) *Handler {
	return &Handler{source: source, log: log}
}

// RegisterRoutes mounts the songs routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/songs", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.source.Songs(r.Context())
	if err != nil {
		h.log.WithError(err).Error("[songs] error reading CSV file")
		utils.RespondError(w, h.log, http.StatusInternalServerError, "Failed to read CSV file")
		return
	}

	utils.RespondJSON(w, h.log, http.StatusOK, rows)
}
