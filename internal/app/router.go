package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/authors"
	"github.com/AhmedDR200/Library-API/internal/books"
	"github.com/AhmedDR200/Library-API/internal/observability"
	"github.com/AhmedDR200/Library-API/internal/uploads"
	"github.com/AhmedDR200/Library-API/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	UsersHandler   *users.Handler
	AuthorsHandler *authors.Handler
	BooksHandler   *books.Handler
	UploadsHandler *uploads.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with API defaults.
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
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.AuthHandler.MountRoutes(r)
	params.UsersHandler.MountRoutes(r)
	params.AuthorsHandler.MountRoutes(r)
	params.BooksHandler.MountRoutes(r)
	params.UploadsHandler.MountRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"fail","message":"not found"}`))
	})

	return r
}
