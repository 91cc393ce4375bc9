package serverhttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"steam-import-service/internal/config"
	impHnd "steam-import-service/internal/importer/handler"
	"steam-import-service/internal/middleware"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/import", impHnd.Import(cfg, logger))
	r.Post("/refresh", impHnd.Refresh(cfg, logger))
	r.Get("/library", impHnd.Library(cfg, logger))
	r.Get("/stats", impHnd.Stats(cfg, logger))

	return r
}
