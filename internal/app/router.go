package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/studyhall/studyhall/internal/admin"
	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/catalog"
	"github.com/studyhall/studyhall/internal/content"
	"github.com/studyhall/studyhall/internal/observability"
	"github.com/studyhall/studyhall/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	AdminHandler   *admin.Handler
	AdminGate      func(http.Handler) http.Handler
	CatalogHandler *catalog.Handler
	ContentHandler *content.Handler
	JobsHandler    *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with StudyHall defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Welcome to the StudyHall API"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)
		api.Route("/admin", func(ar chi.Router) {
			params.AdminHandler.MountRoutes(ar)
			ar.Group(func(gr chi.Router) {
				gr.Use(params.AdminGate)
				params.CatalogHandler.MountRoutes(gr)
				if params.JobsHandler != nil {
					params.JobsHandler.MountRoutes(gr)
				}
			})
		})
		params.ContentHandler.MountRoutes(api)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
