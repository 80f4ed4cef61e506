package content

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// Handler exposes the public content read endpoints.
type Handler struct {
	logger *slog.Logger
	store  *Store
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, store *Store) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, store: store}
}

// MountRoutes registers content routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/class/{class:[0-9]+}/{subject}/content", h.getContent)
	r.Get("/class/{class:[0-9]+}/{subject}/quiz", h.getQuiz)
	r.Get("/image/{class}/{subject}", h.getImage)
}

type imageResponse struct {
	Class    string `json:"class"`
	Subject  string `json:"subject"`
	ImageURL string `json:"image_url"`
}

func (h *Handler) getContent(w http.ResponseWriter, r *http.Request) {
	classNumber, _ := strconv.Atoi(chi.URLParam(r, "class"))
	subject := chi.URLParam(r, "subject")

	doc, err := h.store.Content(r.Context(), classNumber, subject)
	if err != nil {
		h.respondLookupError(w, err, fmt.Sprintf("%s content for Class %d not found", displayName(subject), classNumber))
		return
	}
	writeRawJSON(w, doc)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	classNumber, _ := strconv.Atoi(chi.URLParam(r, "class"))
	subject := chi.URLParam(r, "subject")

	doc, err := h.store.Quiz(r.Context(), classNumber, subject)
	if err != nil {
		h.respondLookupError(w, err, fmt.Sprintf("%s quiz for Class %d not found", displayName(subject), classNumber))
		return
	}
	writeRawJSON(w, doc)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	className := chi.URLParam(r, "class")
	subject := chi.URLParam(r, "subject")

	url, err := h.store.ImageURL(r.Context(), className, subject)
	if err != nil {
		h.respondLookupError(w, err, fmt.Sprintf("No image found for %s - %s", className, subject))
		return
	}
	httpx.JSON(w, http.StatusOK, imageResponse{Class: className, Subject: subject, ImageURL: url})
}

func (h *Handler) respondLookupError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, notFoundMessage)
		return
	}
	h.logger.Error("content lookup", slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeRawJSON(w http.ResponseWriter, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func displayName(subject string) string {
	return cases.Title(language.English).String(subject)
}
