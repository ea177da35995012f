package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomreserve/internal/api"
	"roomreserve/internal/audit"
	"roomreserve/internal/mirror"
	"roomreserve/internal/reservation"
	"roomreserve/internal/sheet"
	"roomreserve/pkg/config"
)

type Dependencies struct {
	Cfg  config.Config
	Grid sheet.Store
	DB   *pgxpool.Pool // optional; nil runs sheet-only
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	svc := &reservation.Service{Grid: deps.Grid}
	if deps.DB != nil {
		svc.Mirror = mirror.NewRepository(deps.DB)
		svc.Audit = audit.NewRepository(deps.DB)
	}
	handlers := reservation.Handlers{Svc: svc}

	r.Route("/v1", func(r chi.Router) {
		// Public endpoints, called from the school frontend on another origin.
		r.Group(func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
			}))

			r.Get("/reservations", handlers.List)
			r.Post("/reservations", handlers.Submit)
		})

		// Teacher-only endpoints.
		r.Route("/admin", func(r chi.Router) {
			r.Use(api.RequireTeacher(deps.Cfg))

			r.Get("/reservations", handlers.AdminList)
			r.Post("/reservations/{id}/decision", handlers.Decide)
		})
	})

	return r
}
