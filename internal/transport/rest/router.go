package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dcontreras/workshop-management/internal/attention"
	"github.com/dcontreras/workshop-management/internal/auth"
	"github.com/dcontreras/workshop-management/internal/client"
	"github.com/dcontreras/workshop-management/internal/transport/middleware"
	"github.com/dcontreras/workshop-management/internal/transport/swagger"
	"github.com/dcontreras/workshop-management/internal/user"
	"github.com/dcontreras/workshop-management/internal/worker"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Worker    *worker.Handler
	Client    *client.Handler
	Attention *attention.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	roles := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.User.Register)
			sr.Post("/login", h.Auth.Login)
		})

		// Everything below requires a valid token; per-resource groups
		// narrow access further with explicit role allow-lists.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(roles.RequireRoles(auth.RoleAdmin))
				ur.Get("/", h.User.GetAll)
				ur.Delete("/{id}", h.User.Delete)
			})

			pr.Route("/workers", func(wr chi.Router) {
				wr.Group(func(g chi.Router) {
					g.Use(roles.RequireRoles(auth.RoleAdmin, auth.RoleOperator))
					g.Get("/", h.Worker.GetAll)
					g.Get("/available", h.Worker.Available)
					g.Get("/salaries", h.Worker.Salaries)
					g.Post("/", h.Worker.Create)
				})
				wr.Group(func(g chi.Router) {
					g.Use(roles.RequireRoles(auth.RoleAdmin))
					g.Delete("/{id}", h.Worker.Delete)
				})
			})

			pr.Route("/clients", func(cr chi.Router) {
				cr.Group(func(g chi.Router) {
					g.Use(roles.RequireRoles(auth.RoleAdmin, auth.RoleOperator))
					g.Get("/", h.Client.GetAll)
					g.Get("/available", h.Client.Available)
					g.Get("/{id}/plates", h.Client.Plates)
					g.Post("/", h.Client.Create)
					g.Put("/{id}", h.Client.Update)
				})
				cr.Group(func(g chi.Router) {
					g.Use(roles.RequireRoles(auth.RoleAdmin))
					g.Delete("/{id}", h.Client.Delete)
				})
			})

			pr.Route("/attentions", func(ar chi.Router) {
				ar.Use(roles.RequireRoles(auth.RoleAdmin, auth.RoleOperator, auth.RoleWorker))
				ar.Get("/", h.Attention.GetAll)
				ar.Post("/", h.Attention.Register)
			})

			pr.Route("/certificates", func(cer chi.Router) {
				cer.Get("/", h.Attention.Certificates)
				cer.Get("/{attentionID}/download", h.Attention.DownloadCertificate)
			})
		})
	})
}
