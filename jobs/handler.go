package jobs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// Handler exposes admin-triggered job endpoints. Mounted behind the
// admin gate so only an authenticated admin can schedule work.
type Handler struct {
	logger *slog.Logger
	client *Client
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, client *Client) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, client: client}
}

// MountRoutes registers job routes on the provided (gated) router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/jobs/content-reindex", h.triggerContentReindex)
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) triggerContentReindex(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httpx.Error(w, http.StatusServiceUnavailable, "Job queue unavailable")
		return
	}
	info, err := h.client.EnqueueContentReindex(r.Context())
	if err != nil {
		h.logger.Error("enqueue content reindex", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.logger.Info("content reindex queued", slog.String("task_id", info.ID))
	httpx.JSON(w, http.StatusAccepted, messageResponse{Message: "Content reindex scheduled"})
}
